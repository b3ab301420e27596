// Package expr implements the typed expression algebra of spec.md
// §4.2: arithmetic, comparison, logical, conditional, aggregate,
// regex, and conversion expressions over a row model shared by every
// operator in package plan/rowexec.
package expr

import "github.com/kushdb/kushdb-go/catalog"

// Value is a single cell. nil represents SQL NULL regardless of
// declared type; a non-nil Value holds one of int16, int32, int64,
// float64, bool, or string, matching catalog.Kind SMALLINT, INT/ENUM,
// BIGINT/DATE, REAL, BOOLEAN, TEXT respectively. ENUM values are
// carried as int32 dictionary ids.
type Value interface{}

// Row is one tuple's worth of column values, in schema order.
type Row []Value

// Bindings is the set of "current bindings" an expression reads from:
// index c is the c-th producing child's current row (spec.md §4.2
// ColumnRef), and index 0 doubles as the "local binding" for
// VirtualColumnRef when an operator constructs a row of its own
// (scan-pushed predicates, aggregate outputs). An operator with a
// single child, or no children at all (a plain local tuple), always
// populates index 0.
type Bindings []Row

// IsNull reports whether v represents SQL NULL.
func IsNull(v Value) bool { return v == nil }

// NullableBool is the three-valued logic result of a BOOLEAN
// expression: nil means UNKNOWN.
type NullableBool = Value // *bool stored as Value is avoided; nil/bool is enough.

func boolOrNull(v Value) (b bool, null bool) {
	if v == nil {
		return false, true
	}
	return v.(bool), false
}

// Expression is a node in the typed expression tree. Type is computed
// once at construction time (spec.md §3 schema invariants); Eval is
// the reference evaluation contract of spec.md §4.2 — a real backend
// lowers the same tree to native code instead of interpreting it, but
// observable results must match Eval exactly.
type Expression interface {
	// Type returns the expression's inferred (Kind, EnumID, Nullable).
	Type() catalog.Type
	// Children returns the expression's operands, for generic tree
	// walks (index/predicate pushdown analysis, column-ref collection).
	Children() []Expression
	// Eval computes the expression's value against the given
	// bindings.
	Eval(b Bindings) (Value, error)
	// String renders the expression for debugging/plan dumps.
	String() string
}
