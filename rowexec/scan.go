package rowexec

import (
	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/plan"
	"github.com/kushdb/kushdb-go/runtime"
)

// scanIter drives tuple ids 0..N over a Scan's table, per spec.md
// §4.3.
type scanIter struct {
	opened []openedColumn
	n      uint32
	next   uint32
}

// NewScanIter builds the physical iterator for a Scan operator.
func NewScanIter(op *plan.Scan, fm *runtime.FileManager) (RowIter, error) {
	opened, err := openColumns(fm, op.Table.Columns())
	if err != nil {
		return nil, err
	}
	n := uint32(0)
	if len(opened) > 0 {
		n = opened[0].cardinality()
	}
	return &scanIter{opened: opened, n: n}, nil
}

func (s *scanIter) Next() (expr.Row, error) {
	if s.next >= s.n {
		return nil, ErrDone
	}
	row := make(expr.Row, len(s.opened))
	for i, o := range s.opened {
		row[i] = o.read(s.next)
	}
	s.next++
	return row, nil
}

func (s *scanIter) Close() error { return nil }
