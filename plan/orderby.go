package plan

import (
	"fmt"

	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// OrderBy buffers Child's rows, sorts them by the lexicographic key
// tuple KeyExprs under per-key Ascending flags, and emits them
// stably (spec.md §4.8). KeyExprs are evaluated against ColumnRef(0,
// ...), i.e. Child's row; the output schema passes Child's columns
// through unchanged.
type OrderBy struct {
	Child     Operator
	KeyExprs  []expr.Expression
	Ascending []bool
	schema    *Schema
}

func NewOrderBy(child Operator, keyExprs []expr.Expression, ascending []bool) (*OrderBy, error) {
	if len(keyExprs) != len(ascending) {
		return nil, kerrors.TypeMismatch.New("OrderBy: keyExprs and ascending must be the same length")
	}
	if len(keyExprs) == 0 {
		return nil, kerrors.TypeMismatch.New("OrderBy requires at least one sort key")
	}
	s := NewSchema()
	if err := s.AddPassthroughColumns(0, child.Schema()); err != nil {
		return nil, err
	}
	return &OrderBy{Child: child, KeyExprs: keyExprs, Ascending: ascending, schema: s}, nil
}

func (o *OrderBy) Kind() Kind           { return KindOrderBy }
func (o *OrderBy) Schema() *Schema      { return o.schema }
func (o *OrderBy) Children() []Operator { return []Operator{o.Child} }
func (o *OrderBy) String() string       { return fmt.Sprintf("OrderBy(%d keys)", len(o.KeyExprs)) }
