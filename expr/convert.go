package expr

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// IntToFloat converts an integer-kinded expression to REAL. i16/i32
// conversions are exact; i64 uses cast's default round-to-nearest
// float64 conversion (spec.md §4.2).
type IntToFloat struct {
	E   Expression
	typ catalog.Type
}

func NewIntToFloat(e Expression) (*IntToFloat, error) {
	t := e.Type()
	switch t.Kind {
	case catalog.SMALLINT, catalog.INT, catalog.BIGINT:
	default:
		return nil, kerrors.TypeMismatch.New(fmt.Sprintf("IntToFloat requires an integer operand, got %s", t))
	}
	return &IntToFloat{E: e, typ: catalog.Type{Kind: catalog.REAL, Nullable: t.Nullable}}, nil
}

func (c *IntToFloat) Type() catalog.Type     { return c.typ }
func (c *IntToFloat) Children() []Expression { return []Expression{c.E} }
func (c *IntToFloat) String() string         { return fmt.Sprintf("CAST(%s AS REAL)", c.E) }

func (c *IntToFloat) Eval(b Bindings) (Value, error) {
	v, err := c.E.Eval(b)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return cast.ToFloat64(v), nil
}
