package expr

import (
	"fmt"
	"strings"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// EnumResolver resolves a TEXT literal against an ENUM dictionary,
// satisfied structurally by *runtime.EnumManager (no import needed:
// its GetValue method already matches this shape).
type EnumResolver interface {
	GetValue(dictID int, s string) (int32, bool)
}

// NewEnumEqLiteral implements spec.md §4.2's ENUM-vs-TEXT-literal
// rewrite: "ENUM vs. TEXT literal is rewritten at plan-build time by
// resolving the TEXT against the ENUM's dictionary; unresolvable ->
// always-false without contacting data." The returned expression never
// touches a column's data to decide an unresolvable literal.
func NewEnumEqLiteral(enumCol Expression, literal string, resolver EnumResolver) (Expression, error) {
	et := enumCol.Type()
	if et.Kind != catalog.ENUM {
		return nil, kerrors.TypeMismatch.New(fmt.Sprintf("NewEnumEqLiteral requires an ENUM operand, got %s", et))
	}
	id, ok := resolver.GetValue(et.EnumID, literal)
	if !ok {
		return NewLiteral(false, catalog.Type{Kind: catalog.BOOLEAN}), nil
	}
	lit := NewLiteral(id, catalog.Type{Kind: catalog.ENUM, EnumID: et.EnumID})
	return NewBinaryArith(OpEq, enumCol, lit)
}

// EnumIn is "e IN (v1..vn)" over an ENUM column: true iff e's
// dictionary id matches one of the listed ids (spec.md §4.2). The
// literal set is pre-resolved to dictionary ids at construction, same
// rewrite discipline as NewEnumEqLiteral: an unresolvable literal is
// simply dropped from the candidate set rather than causing a lookup
// at evaluation time.
type EnumIn struct {
	E       Expression
	ids     map[int32]struct{}
	literal []string // retained for String()
	typ     catalog.Type
}

func NewEnumIn(e Expression, literals []string, resolver EnumResolver) (*EnumIn, error) {
	et := e.Type()
	if et.Kind != catalog.ENUM {
		return nil, kerrors.TypeMismatch.New(fmt.Sprintf("EnumIn requires an ENUM operand, got %s", et))
	}
	ids := make(map[int32]struct{}, len(literals))
	for _, lit := range literals {
		if id, ok := resolver.GetValue(et.EnumID, lit); ok {
			ids[id] = struct{}{}
		}
	}
	return &EnumIn{E: e, ids: ids, literal: literals, typ: catalog.Type{Kind: catalog.BOOLEAN, Nullable: et.Nullable}}, nil
}

func (n *EnumIn) Type() catalog.Type     { return n.typ }
func (n *EnumIn) Children() []Expression { return []Expression{n.E} }
func (n *EnumIn) String() string {
	return fmt.Sprintf("%s IN (%s)", n.E, strings.Join(n.literal, ", "))
}
func (n *EnumIn) Eval(b Bindings) (Value, error) {
	v, err := n.E.Eval(b)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	_, ok := n.ids[v.(int32)]
	return ok, nil
}
