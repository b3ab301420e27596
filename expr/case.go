package expr

import (
	"fmt"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// Case implements the two-branch conditional of spec.md §4.2: a NULL
// condition selects the else-branch (NULL is not truthy), and both
// branches must share an identical element type.
type Case struct {
	Cond, Then, Else Expression
	typ              catalog.Type
}

func NewCase(cond, then, els Expression) (*Case, error) {
	if cond.Type().Kind != catalog.BOOLEAN {
		return nil, kerrors.TypeMismatch.New(fmt.Sprintf("CASE condition must be BOOLEAN, got %s", cond.Type()))
	}
	tt, et := then.Type(), els.Type()
	if !tt.Equal(et) {
		return nil, kerrors.TypeMismatch.New(fmt.Sprintf("CASE branches must share a type, got %s and %s", tt, et))
	}
	return &Case{Cond: cond, Then: then, Else: els, typ: tt.WithNullable(tt.Nullable || et.Nullable)}, nil
}

func (c *Case) Type() catalog.Type     { return c.typ }
func (c *Case) Children() []Expression { return []Expression{c.Cond, c.Then, c.Else} }
func (c *Case) String() string {
	return fmt.Sprintf("CASE WHEN %s THEN %s ELSE %s END", c.Cond, c.Then, c.Else)
}

func (c *Case) Eval(b Bindings) (Value, error) {
	cond, err := c.Cond.Eval(b)
	if err != nil {
		return nil, err
	}
	if cond == nil || !cond.(bool) {
		return c.Else.Eval(b)
	}
	return c.Then.Eval(b)
}
