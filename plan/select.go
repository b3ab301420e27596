package plan

import (
	"fmt"
	"strings"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// Select filters its child's rows by a conjunction of predicates over
// ColumnRef(0, ...) (the child is always producer index 0 from
// Select's point of view), passing through every column unchanged.
type Select struct {
	Child      Operator
	Predicates []expr.Expression
	schema     *Schema
}

func NewSelect(child Operator, predicates []expr.Expression) (*Select, error) {
	for _, p := range predicates {
		if p.Type().Kind != catalog.BOOLEAN {
			return nil, kerrors.TypeMismatch.New(fmt.Sprintf("Select predicate must be BOOLEAN, got %s", p.Type()))
		}
	}
	s := NewSchema()
	if err := s.AddPassthroughColumns(0, child.Schema()); err != nil {
		return nil, err
	}
	return &Select{Child: child, Predicates: predicates, schema: s}, nil
}

func (s *Select) Kind() Kind           { return KindSelect }
func (s *Select) Schema() *Schema      { return s.schema }
func (s *Select) Children() []Operator { return []Operator{s.Child} }
func (s *Select) String() string {
	parts := make([]string, len(s.Predicates))
	for i, p := range s.Predicates {
		parts[i] = p.String()
	}
	return fmt.Sprintf("Select([%s])", strings.Join(parts, " AND "))
}
