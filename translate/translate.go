// Package translate declares the boundary to the native-code backend
// (spec.md §1): lowering a plan.Operator tree to machine code or LLVM
// IR is an external collaborator's job, not this module's. Only the
// interface is specified here; Compile has no in-tree implementation,
// matching spec.md's instruction that the translator is "external
// interface only".
package translate

import (
	"github.com/kushdb/kushdb-go/internal/config"
	"github.com/kushdb/kushdb-go/plan"
)

// Executable is a compiled query, ready to run against a FileManager.
// Its actual representation (a JIT'd function pointer, an LLVM
// module, ...) is entirely up to the backend named by
// config.EngineConfig.Backend.
type Executable interface {
	// Run executes the compiled query end to end. It takes no output
	// sink: where the formatted rows go, like the rest of the calling
	// convention, is up to the backend.
	Run() error
}

// Translator compiles one plan.Operator tree per spec.md §1's "two
// interchangeable backends": lowering the same operator tree through
// a Translator built with config.BackendASM or config.BackendLLVM must
// produce Executables with identical observable output, for every
// query rowexec can also run as a reference.
type Translator interface {
	// Compile lowers op into an Executable under cfg, or returns
	// kerrors.UnsupportedLowering if op (or one of its predicates)
	// uses a construct this backend cannot express — e.g. a
	// SIMDScanSelect predicate outside the SIMD-lowerable shape
	// (spec.md §4.3, §7).
	Compile(op plan.Operator, cfg config.EngineConfig) (Executable, error)
}
