package expr

import (
	"fmt"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// UnaryOp names NOT or IS_NULL (spec.md §4.2).
type UnaryOp uint8

const (
	OpNot UnaryOp = iota
	OpIsNull
)

func (o UnaryOp) String() string {
	if o == OpNot {
		return "NOT"
	}
	return "IS NULL"
}

// Unary implements NOT (three-valued) and IS NULL (always non-null
// BOOLEAN).
type Unary struct {
	Op  UnaryOp
	E   Expression
	typ catalog.Type
}

func NewUnary(op UnaryOp, e Expression) (*Unary, error) {
	switch op {
	case OpNot:
		if e.Type().Kind != catalog.BOOLEAN {
			return nil, kerrors.TypeMismatch.New(fmt.Sprintf("NOT requires a BOOLEAN operand, got %s", e.Type()))
		}
		return &Unary{Op: op, E: e, typ: catalog.Type{Kind: catalog.BOOLEAN, Nullable: e.Type().Nullable}}, nil
	case OpIsNull:
		return &Unary{Op: op, E: e, typ: catalog.Type{Kind: catalog.BOOLEAN}}, nil
	default:
		return nil, kerrors.TypeMismatch.New("unknown unary operator")
	}
}

func (u *Unary) Type() catalog.Type     { return u.typ }
func (u *Unary) Children() []Expression { return []Expression{u.E} }
func (u *Unary) String() string         { return fmt.Sprintf("%s(%s)", u.Op, u.E) }

func (u *Unary) Eval(b Bindings) (Value, error) {
	v, err := u.E.Eval(b)
	if err != nil {
		return nil, err
	}
	if u.Op == OpIsNull {
		return v == nil, nil
	}
	// NOT: three-valued.
	if v == nil {
		return nil, nil
	}
	return !v.(bool), nil
}
