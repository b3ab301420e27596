package expr

import (
	"fmt"

	"github.com/kushdb/kushdb-go/catalog"
)

// ColumnRef reads column Column of the row currently bound for child
// Child (spec.md §3/§4.2). Child and Column are resolved once, at
// plan-construction time, against the referenced child's schema; see
// plan.Schema.Resolve.
type ColumnRef struct {
	Child  int
	Column int
	typ    catalog.Type
	name   string // for String() only
}

// NewColumnRef builds a column reference whose type is taken directly
// from the naming child's schema, per spec.md §3 "column-ref ->
// schema of referenced child".
func NewColumnRef(child, column int, typ catalog.Type, name string) *ColumnRef {
	return &ColumnRef{Child: child, Column: column, typ: typ, name: name}
}

func (c *ColumnRef) Type() catalog.Type     { return c.typ }
func (c *ColumnRef) Children() []Expression { return nil }
func (c *ColumnRef) Eval(b Bindings) (Value, error) {
	return b[c.Child][c.Column], nil
}
func (c *ColumnRef) String() string {
	if c.name != "" {
		return fmt.Sprintf("$%d.%s", c.Child, c.name)
	}
	return fmt.Sprintf("$%d.col%d", c.Child, c.Column)
}

// VirtualColumnRef reads column Column of the local binding (binding
// index 0), used for aggregate outputs and scan-pushed predicates
// that operate on a locally-constructed tuple rather than a child's
// (spec.md §3/§4.2).
type VirtualColumnRef struct {
	Column int
	typ    catalog.Type
	name   string
}

func NewVirtualColumnRef(column int, typ catalog.Type, name string) *VirtualColumnRef {
	return &VirtualColumnRef{Column: column, typ: typ, name: name}
}

func (v *VirtualColumnRef) Type() catalog.Type     { return v.typ }
func (v *VirtualColumnRef) Children() []Expression { return nil }
func (v *VirtualColumnRef) Eval(b Bindings) (Value, error) {
	return b[0][v.Column], nil
}
func (v *VirtualColumnRef) String() string {
	if v.name != "" {
		return "#" + v.name
	}
	return fmt.Sprintf("#col%d", v.Column)
}
