package plan

import (
	"fmt"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// SkinnerJoin is the adaptive n-ary join executor of spec.md §4.6: k
// child relations and a conjunction of Predicates, each a general
// expression whose ColumnRefs name a child in [0, k). Predicates that
// reference only one relation are expected to already have been
// evaluated during that relation's own scan/select (spec.md §4.6
// "Edge cases"); SkinnerJoin itself only needs predicates that span
// two or more of its children, but accepts single-relation ones too
// for callers that haven't pushed them down.
//
// Join order and its UCT search tree are execution state, not plan
// state — see package skinner — so this operator carries only what
// the plan needs to remain immutable once built: its children and
// predicates.
type SkinnerJoin struct {
	Relations  []Operator
	Predicates []expr.Expression
	schema     *Schema
}

func NewSkinnerJoin(relations []Operator, predicates []expr.Expression) (*SkinnerJoin, error) {
	if len(relations) < 1 {
		return nil, kerrors.TypeMismatch.New("SkinnerJoin requires at least one relation")
	}
	for _, p := range predicates {
		if p.Type().Kind != catalog.BOOLEAN {
			return nil, kerrors.TypeMismatch.New(fmt.Sprintf("SkinnerJoin predicate must be BOOLEAN, got %s", p.Type()))
		}
	}
	s := NewSchema()
	for i, rel := range relations {
		if err := s.AddPassthroughColumns(i, rel.Schema()); err != nil {
			return nil, err
		}
	}
	return &SkinnerJoin{Relations: relations, Predicates: predicates, schema: s}, nil
}

func (j *SkinnerJoin) Kind() Kind           { return KindSkinnerJoin }
func (j *SkinnerJoin) Schema() *Schema      { return j.schema }
func (j *SkinnerJoin) Children() []Operator { return j.Relations }
func (j *SkinnerJoin) String() string       { return fmt.Sprintf("SkinnerJoin(k=%d)", len(j.Relations)) }
