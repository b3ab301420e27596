package plan

// CrossProduct produces the full Cartesian product of Left and Right
// rows under the union schema (spec.md §4.5); used for tiny
// singleton x any joins such as a scalar subquery against the main
// query.
type CrossProduct struct {
	Left, Right Operator
	schema      *Schema
}

func NewCrossProduct(left, right Operator) (*CrossProduct, error) {
	s := NewSchema()
	if err := s.AddPassthroughColumns(0, left.Schema()); err != nil {
		return nil, err
	}
	if err := s.AddPassthroughColumns(1, right.Schema()); err != nil {
		return nil, err
	}
	return &CrossProduct{Left: left, Right: right, schema: s}, nil
}

func (c *CrossProduct) Kind() Kind           { return KindCrossProduct }
func (c *CrossProduct) Schema() *Schema      { return c.schema }
func (c *CrossProduct) Children() []Operator { return []Operator{c.Left, c.Right} }
func (c *CrossProduct) String() string       { return "CrossProduct" }
