package expr

import (
	"fmt"
	"time"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// ExtractField names the field Extract derives from a DATE. Only YEAR
// is in spec.md's scope.
type ExtractField uint8

const ExtractYear ExtractField = 0

// Extract derives a Gregorian calendar field from a DATE value stored
// as i64 Unix-ms UTC (spec.md §4.2).
type Extract struct {
	Field ExtractField
	D     Expression
	typ   catalog.Type
}

func NewExtract(field ExtractField, d Expression) (*Extract, error) {
	if d.Type().Kind != catalog.DATE {
		return nil, kerrors.TypeMismatch.New(fmt.Sprintf("EXTRACT requires a DATE operand, got %s", d.Type()))
	}
	return &Extract{Field: field, D: d, typ: catalog.Type{Kind: catalog.INT, Nullable: d.Type().Nullable}}, nil
}

func (e *Extract) Type() catalog.Type     { return e.typ }
func (e *Extract) Children() []Expression { return []Expression{e.D} }
func (e *Extract) String() string         { return fmt.Sprintf("EXTRACT(YEAR FROM %s)", e.D) }

func (e *Extract) Eval(b Bindings) (Value, error) {
	v, err := e.D.Eval(b)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	ms := v.(int64)
	t := time.UnixMilli(ms).UTC()
	return int32(t.Year()), nil
}
