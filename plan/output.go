package plan

// Output is the root operator: it hands Child's rows on in
// schema-declared order; rowexec.FormatRow formats each value per
// type (spec.md §4.9). Its schema is Child's schema unchanged; Output
// itself adds no columns.
type Output struct {
	Child  Operator
	schema *Schema
}

func NewOutput(child Operator) *Output {
	return &Output{Child: child, schema: child.Schema()}
}

func (o *Output) Kind() Kind           { return KindOutput }
func (o *Output) Schema() *Schema      { return o.schema }
func (o *Output) Children() []Operator { return []Operator{o.Child} }
func (o *Output) String() string       { return "Output" }
