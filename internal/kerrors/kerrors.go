// Package kerrors defines the error kinds the engine can raise, per the
// error-handling design: every failure is one of a small closed set of
// kinds, classified rather than ad-hoc.
package kerrors

import (
	goerrors "gopkg.in/src-d/go-errors.v1"
)

var (
	// TypeMismatch is raised at plan construction time: expression type
	// inference or schema assembly rejected an operand combination.
	TypeMismatch = goerrors.NewKind("type mismatch: %s")

	// ResourceMissing is raised when the catalog names a column, null,
	// or index path that does not exist on disk.
	ResourceMissing = goerrors.NewKind("resource missing: %s")

	// Corrupt is raised when a column or index file's header is
	// inconsistent with its length.
	Corrupt = goerrors.NewKind("corrupt file: %s")

	// UnsupportedLowering is raised at translate time when an operator
	// or expression cannot be lowered by the selected backend.
	UnsupportedLowering = goerrors.NewKind("unsupported lowering: %s")

	// RuntimeOverflow marks the one runtime error kind the engine
	// defines without raising it for ordinary arithmetic: see
	// BinaryArith's DIV-by-zero contract, which does not use this
	// kind. Reserved for hash-table heap exhaustion, which aborts the
	// process rather than returning an error value.
	RuntimeOverflow = goerrors.NewKind("runtime overflow: %s")
)
