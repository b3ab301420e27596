package expr

import (
	"fmt"

	"github.com/kushdb/kushdb-go/catalog"
)

// Literal produces a constant value, non-null unless the value itself
// is nil (a typed NULL literal). TEXT literals are borrowed, i.e. no
// defensive copy is made (spec.md §4.2).
type Literal struct {
	val Value
	typ catalog.Type
}

// NewLiteral constructs a literal of the given element type. If val is
// nil the literal is a typed NULL and typ.Nullable is forced true.
func NewLiteral(val Value, typ catalog.Type) *Literal {
	if val == nil {
		typ.Nullable = true
	}
	return &Literal{val: val, typ: typ}
}

func (l *Literal) Type() catalog.Type      { return l.typ }
func (l *Literal) Children() []Expression  { return nil }
func (l *Literal) Eval(Bindings) (Value, error) { return l.val, nil }
func (l *Literal) String() string {
	if l.val == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", l.val)
}
