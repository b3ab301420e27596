// Package plan implements the operator tree of spec.md §4: Scan,
// Select, the join family, GroupByAggregate/Aggregate, OrderBy, and
// Output, each owning its children and a Schema computed once at
// construction (spec.md §3 "Lifecycle").
package plan

import (
	"fmt"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// Column is one named, typed entry of a Schema: a name paired with
// the expression that produces it.
type Column struct {
	Name string
	Expr expr.Expression
}

func (c Column) Type() catalog.Type { return c.Expr.Type() }

// Schema is the named, ordered list of (name, expression) columns an
// operator produces, plus a name->position index (spec.md §3
// "Operator schema").
type Schema struct {
	columns []Column
	byName  map[string]int
}

// NewSchema builds an empty schema; columns are added with the
// builder methods below, mirroring the original's per-operator schema
// construction helpers.
func NewSchema() *Schema {
	return &Schema{byName: make(map[string]int)}
}

func (s *Schema) add(name string, e expr.Expression) error {
	return s.addKeyed(name, name, e)
}

// addKeyed appends a column displayed as name but indexed under key,
// letting callers that must disambiguate two same-named columns
// (AddPassthroughColumns joining two relations that share a column
// name) keep the display name while using a collision-free lookup
// key.
func (s *Schema) addKeyed(key, name string, e expr.Expression) error {
	if _, ok := s.byName[key]; ok {
		return kerrors.TypeMismatch.New(fmt.Sprintf("duplicate schema column name %q", key))
	}
	s.byName[key] = len(s.columns)
	s.columns = append(s.columns, Column{Name: name, Expr: e})
	return nil
}

// AddDerivedColumn appends a single named, arbitrary expression
// (e.g. a projection, an aggregate output, a computed predicate
// result).
func (s *Schema) AddDerivedColumn(name string, e expr.Expression) error {
	return s.add(name, e)
}

// AddGeneratedColumns appends one column per catalog.Column of tbl,
// each expressed as a VirtualColumnRef at its table ordinal — used by
// Scan, whose rows are locally constructed straight from column
// files rather than read through a child operator.
func (s *Schema) AddGeneratedColumns(tbl *catalog.Table) error {
	for i, col := range tbl.Columns() {
		ref := expr.NewVirtualColumnRef(i, col.Type, col.Name)
		if err := s.add(col.Name, ref); err != nil {
			return err
		}
	}
	return nil
}

// AddPassthroughColumns appends one column per entry of child's
// schema, each re-expressed as a ColumnRef(childIdx, i) against
// child — used when an operator (Select, OrderBy, the join family,
// ...) exposes all of one child's columns unchanged. A name already
// taken by an earlier child (the common case: two join sides sharing
// a key column's name) is disambiguated by qualifying the lookup key
// with childIdx; the column's display Name is left untouched, since
// positional evaluation already goes through ColumnRef(childIdx, i)
// rather than through this name.
func (s *Schema) AddPassthroughColumns(childIdx int, child *Schema) error {
	for i, col := range child.Columns() {
		ref := expr.NewColumnRef(childIdx, i, col.Type(), col.Name)
		key := col.Name
		if _, taken := s.byName[key]; taken {
			key = fmt.Sprintf("%d.%s", childIdx, col.Name)
		}
		if err := s.addKeyed(key, col.Name, ref); err != nil {
			return err
		}
	}
	return nil
}

// AddVirtualPassthroughColumns appends one column per entry of src,
// each re-expressed as a VirtualColumnRef at its same ordinal —
// used when an operator builds a new local tuple (e.g. a
// GroupByAggregate's output row) but wants to re-expose some of its
// own locally computed columns under new names/positions downstream.
func (s *Schema) AddVirtualPassthroughColumns(src *Schema) error {
	for i, col := range src.Columns() {
		ref := expr.NewVirtualColumnRef(i, col.Type(), col.Name)
		if err := s.add(col.Name, ref); err != nil {
			return err
		}
	}
	return nil
}

// Columns returns the schema's columns in declaration order. The
// returned slice must not be mutated.
func (s *Schema) Columns() []Column { return s.columns }

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.columns) }

// IndexOf returns the ordinal position of name, or -1 if absent.
func (s *Schema) IndexOf(name string) int {
	idx, ok := s.byName[name]
	if !ok {
		return -1
	}
	return idx
}

// Resolve looks up name and returns its (index, Type), used by plan
// builders to construct ColumnRef/VirtualColumnRef nodes against a
// known child schema.
func (s *Schema) Resolve(name string) (int, catalog.Type, bool) {
	idx, ok := s.byName[name]
	if !ok {
		return 0, catalog.Type{}, false
	}
	return idx, s.columns[idx].Type(), true
}
