package rowexec

import (
	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/plan"
)

// selectIter filters Child's rows by a conjunction of predicates,
// passing every column through unchanged (spec.md §4.3 Select).
type selectIter struct {
	child      RowIter
	predicates []expr.Expression
}

func NewSelectIter(child RowIter, op *plan.Select) RowIter {
	return &selectIter{child: child, predicates: op.Predicates}
}

func (s *selectIter) Next() (expr.Row, error) {
	for {
		row, err := s.child.Next()
		if err != nil {
			return nil, err
		}
		ok, err := evalConjunction(s.predicates, expr.Bindings{row})
		if err != nil {
			return nil, err
		}
		if ok {
			return row, nil
		}
	}
}

func (s *selectIter) Close() error { return s.child.Close() }

// evalConjunction evaluates predicates against bindings in order,
// short-circuiting on the first FALSE or UNKNOWN result (spec.md §4.3
// policy 1). An empty predicate list is vacuously true.
func evalConjunction(predicates []expr.Expression, bindings expr.Bindings) (bool, error) {
	for _, p := range predicates {
		v, err := p.Eval(bindings)
		if err != nil {
			return false, err
		}
		if v == nil || !v.(bool) {
			return false, nil
		}
	}
	return true, nil
}
