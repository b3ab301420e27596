// Package rowexec is the engine's reference execution path: a
// tree-walking interpreter over package plan's operator tree that
// implements the §4 contracts precisely. The native-code backend
// (spec.md §1, "two interchangeable backends") is an external
// collaborator specified only as package translate's interface; this
// package is what makes every operator and expression in this module
// independently testable without one.
package rowexec

import (
	"io"

	"github.com/kushdb/kushdb-go/expr"
)

// RowIter is the producer/consumer contract every physical operator
// implements: repeated Next calls yield rows until io.EOF, after
// which Close releases any resources the operator opened (spec.md §5:
// "No operation suspends on I/O" — Close never blocks).
type RowIter interface {
	Next() (expr.Row, error)
	Close() error
}

// ErrDone is returned by Next to signal exhaustion; identical to
// io.EOF so callers can use the standard idiom.
var ErrDone = io.EOF

// drain pulls every row from it into a slice, closing it afterward.
// Used by operators that must fully materialize a child before
// producing their own first row (HashJoin's build side,
// CrossProduct's right side, GroupByAggregate, OrderBy). Package
// skinner materializes SkinnerJoin's relations with its own loop.
func drain(it RowIter) ([]expr.Row, error) {
	defer it.Close()
	var rows []expr.Row
	for {
		row, err := it.Next()
		if err == ErrDone {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}
