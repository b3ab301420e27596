package plan

import (
	"fmt"

	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// NamedAgg pairs an output column name with the aggregate expression
// that computes it.
type NamedAgg struct {
	Name string
	Agg  *expr.Aggregate
}

// GroupByAggregate hash-groups Child's rows by GroupExprs (evaluated
// against ColumnRef(0, ...), i.e. Child's row) and computes one
// Accumulator per AggExprs entry per group (spec.md §4.7). Its output
// schema is the group columns followed by the aggregate columns, each
// materialized fresh per group, so downstream operators read them as
// VirtualColumnRefs into that locally-built row.
type GroupByAggregate struct {
	Child      Operator
	GroupNames []string
	GroupExprs []expr.Expression
	Aggs       []NamedAgg
	schema     *Schema
}

func NewGroupByAggregate(child Operator, groupNames []string, groupExprs []expr.Expression, aggs []NamedAgg) (*GroupByAggregate, error) {
	if len(groupNames) != len(groupExprs) {
		return nil, kerrors.TypeMismatch.New("GroupByAggregate: groupNames and groupExprs must be the same length")
	}
	s := NewSchema()
	for i, name := range groupNames {
		if err := s.AddDerivedColumn(name, expr.NewVirtualColumnRef(i, groupExprs[i].Type(), name)); err != nil {
			return nil, err
		}
	}
	base := len(groupNames)
	for i, a := range aggs {
		if err := s.AddDerivedColumn(a.Name, expr.NewVirtualColumnRef(base+i, a.Agg.Type(), a.Name)); err != nil {
			return nil, err
		}
	}
	return &GroupByAggregate{Child: child, GroupNames: groupNames, GroupExprs: groupExprs, Aggs: aggs, schema: s}, nil
}

func (g *GroupByAggregate) Kind() Kind           { return KindGroupByAggregate }
func (g *GroupByAggregate) Schema() *Schema      { return g.schema }
func (g *GroupByAggregate) Children() []Operator { return []Operator{g.Child} }
func (g *GroupByAggregate) String() string {
	return fmt.Sprintf("GroupByAggregate(keys=%v)", g.GroupNames)
}

// Aggregate is GroupByAggregate with an empty key set, collapsing the
// whole child into a single output row (spec.md §4.7: "Empty
// group_exprs collapses to a single cell — this is what the distinct
// Aggregate operator expresses").
type Aggregate struct {
	Child  Operator
	Aggs   []NamedAgg
	schema *Schema
}

func NewAggregateOp(child Operator, aggs []NamedAgg) (*Aggregate, error) {
	s := NewSchema()
	for i, a := range aggs {
		if err := s.AddDerivedColumn(a.Name, expr.NewVirtualColumnRef(i, a.Agg.Type(), a.Name)); err != nil {
			return nil, err
		}
	}
	return &Aggregate{Child: child, Aggs: aggs, schema: s}, nil
}

func (a *Aggregate) Kind() Kind           { return KindAggregate }
func (a *Aggregate) Schema() *Schema      { return a.schema }
func (a *Aggregate) Children() []Operator { return []Operator{a.Child} }
func (a *Aggregate) String() string       { return "Aggregate" }
