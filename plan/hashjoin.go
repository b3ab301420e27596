package plan

import (
	"fmt"

	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// HashJoin is the equi-join operator of spec.md §4.4: build a hash
// table over Left keyed by LeftKeys, probe it with RightKeys for each
// Right row. LeftKeys/RightKeys are evaluated against ColumnRef(0,
// ...) — from each key expression's point of view its own side is
// producer index 0 — and paired positionally, forming a composite key
// when more than one pair is given. Output exposes every Left column
// followed by every Right column.
type HashJoin struct {
	Left, Right         Operator
	LeftKeys, RightKeys []expr.Expression
	schema              *Schema
}

func NewHashJoin(left, right Operator, leftKeys, rightKeys []expr.Expression) (*HashJoin, error) {
	if len(leftKeys) == 0 || len(leftKeys) != len(rightKeys) {
		return nil, kerrors.TypeMismatch.New("HashJoin requires a non-empty, equal-length leftKeys/rightKeys pairing")
	}
	for i := range leftKeys {
		if !leftKeys[i].Type().Equal(rightKeys[i].Type()) {
			return nil, kerrors.TypeMismatch.New(fmt.Sprintf("HashJoin key %d type mismatch: %s vs %s", i, leftKeys[i].Type(), rightKeys[i].Type()))
		}
	}
	s := NewSchema()
	if err := s.AddPassthroughColumns(0, left.Schema()); err != nil {
		return nil, err
	}
	if err := s.AddPassthroughColumns(1, right.Schema()); err != nil {
		return nil, err
	}
	return &HashJoin{Left: left, Right: right, LeftKeys: leftKeys, RightKeys: rightKeys, schema: s}, nil
}

func (h *HashJoin) Kind() Kind           { return KindHashJoin }
func (h *HashJoin) Schema() *Schema      { return h.schema }
func (h *HashJoin) Children() []Operator { return []Operator{h.Left, h.Right} }
func (h *HashJoin) String() string       { return "HashJoin" }
