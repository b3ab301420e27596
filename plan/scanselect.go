package plan

import (
	"fmt"
	"strings"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// ScanSelect fuses a scan with predicates pushed all the way to the
// column buffers (spec.md §4.3). ScanSchema names the columns
// physically opened; Predicates are virtual-column expressions over
// ScanSchema, evaluated conjunctively in declared order; the output
// Schema only exposes the subset of ScanSchema that downstream
// operators actually need.
type ScanSelect struct {
	Table      *catalog.Table
	ScanSchema *Schema
	Predicates []expr.Expression
	schema     *Schema
}

// NewScanSelect builds a ScanSelect. scanColumns names every column
// the operator must physically open (enough to evaluate Predicates
// and to serve outputColumns); outputColumns is the subset exposed
// downstream, each named from scanColumns.
func NewScanSelect(tbl *catalog.Table, scanColumns []string, predicates []expr.Expression, outputColumns []string) (*ScanSelect, error) {
	scanSchema := NewSchema()
	for i, name := range scanColumns {
		col, ok := tbl.Column(name)
		if !ok {
			return nil, kerrors.TypeMismatch.New(fmt.Sprintf("ScanSelect: table %s has no column %q", tbl.Name(), name))
		}
		if err := scanSchema.AddDerivedColumn(name, expr.NewVirtualColumnRef(i, col.Type, name)); err != nil {
			return nil, err
		}
	}
	for _, p := range predicates {
		if p.Type().Kind != catalog.BOOLEAN {
			return nil, kerrors.TypeMismatch.New(fmt.Sprintf("ScanSelect predicate must be BOOLEAN, got %s", p.Type()))
		}
	}
	out := NewSchema()
	for _, name := range outputColumns {
		idx, typ, ok := scanSchema.Resolve(name)
		if !ok {
			return nil, kerrors.TypeMismatch.New(fmt.Sprintf("ScanSelect: output column %q not in scan schema", name))
		}
		if err := out.AddDerivedColumn(name, expr.NewVirtualColumnRef(idx, typ, name)); err != nil {
			return nil, err
		}
	}
	return &ScanSelect{Table: tbl, ScanSchema: scanSchema, Predicates: predicates, schema: out}, nil
}

func (s *ScanSelect) Kind() Kind           { return KindScanSelect }
func (s *ScanSelect) Schema() *Schema      { return s.schema }
func (s *ScanSelect) Children() []Operator { return nil }
func (s *ScanSelect) String() string {
	parts := make([]string, len(s.Predicates))
	for i, p := range s.Predicates {
		parts[i] = p.String()
	}
	return fmt.Sprintf("ScanSelect(%s, [%s])", s.Table.Name(), strings.Join(parts, " AND "))
}

// SIMDScanSelect is semantically identical to ScanSelect (spec.md
// §4.3) but declares that its predicates are restricted to the
// SIMD-lowerable forms (range checks, equalities, bitmask AND/OR over
// i32/i64/f64 columns); actually vectorizing them is the native-code
// backend's job (out of scope, spec.md §1), so this type carries
// exactly the fields of ScanSelect; only its Kind differs, and that
// is what a translator dispatches on before rejecting an unlowerable
// predicate with UnsupportedLowering.
type SIMDScanSelect struct {
	*ScanSelect
}

// NewSIMDScanSelect wraps a ScanSelect, asserting the SIMD-lowerable
// predicate shape. It does not re-validate predicate forms beyond
// BOOLEAN-ness; that judgment belongs to the translator (spec.md §4.3,
// §7 UnsupportedLowering "Reported at translate time, never at
// runtime").
func NewSIMDScanSelect(inner *ScanSelect) *SIMDScanSelect {
	return &SIMDScanSelect{ScanSelect: inner}
}

func (s *SIMDScanSelect) Kind() Kind { return KindSIMDScanSelect }
func (s *SIMDScanSelect) String() string {
	return "SIMD" + s.ScanSelect.String()
}
