package expr

import (
	"fmt"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// AggFunc names one of spec.md §4.2's five aggregate functions.
type AggFunc uint8

const (
	AggSum AggFunc = iota
	AggAvg
	AggMin
	AggMax
	AggCount
)

func (f AggFunc) String() string {
	switch f {
	case AggSum:
		return "SUM"
	case AggAvg:
		return "AVG"
	case AggMin:
		return "MIN"
	case AggMax:
		return "MAX"
	default:
		return "COUNT"
	}
}

// Aggregate is the Expression-algebra node for an aggregate call. It
// is never evaluated row-by-row like other expressions — package
// rowexec drives it through NewAccumulator during a GroupByAggregate
// or Aggregate operator's build phase — so Eval reports that
// misuse rather than silently returning a wrong per-row value.
type Aggregate struct {
	Func AggFunc
	E    Expression
	typ  catalog.Type
}

// NewAggregate performs the type inference of spec.md §3/§4.2:
//   - SUM/MIN/MAX: input type (SUM is numeric-only; MIN/MAX additionally
//     accept TEXT, compared lexicographically, and DATE).
//   - AVG: always REAL (confirmed against original_source's
//     aggregate_expression.cc, which computes AVG's SqlType as REAL
//     regardless of input; see DESIGN.md for the §3/§4.2 resolution).
//   - COUNT: always BIGINT, non-nullable (a count is never NULL).
func NewAggregate(fn AggFunc, e Expression) (*Aggregate, error) {
	it := e.Type()
	switch fn {
	case AggSum:
		if !it.IsNumeric() {
			return nil, kerrors.TypeMismatch.New(fmt.Sprintf("SUM requires a numeric operand, got %s", it))
		}
		return &Aggregate{Func: fn, E: e, typ: it.WithNullable(true)}, nil
	case AggAvg:
		if !it.IsNumeric() {
			return nil, kerrors.TypeMismatch.New(fmt.Sprintf("AVG requires a numeric operand, got %s", it))
		}
		return &Aggregate{Func: fn, E: e, typ: catalog.Type{Kind: catalog.REAL, Nullable: true}}, nil
	case AggMin, AggMax:
		if !it.IsNumeric() && it.Kind != catalog.TEXT && it.Kind != catalog.DATE {
			return nil, kerrors.TypeMismatch.New(fmt.Sprintf("%s requires a numeric, TEXT, or DATE operand, got %s", fn, it))
		}
		return &Aggregate{Func: fn, E: e, typ: it.WithNullable(true)}, nil
	case AggCount:
		return &Aggregate{Func: fn, E: e, typ: catalog.Type{Kind: catalog.BIGINT}}, nil
	default:
		return nil, kerrors.TypeMismatch.New("unknown aggregate function")
	}
}

func (a *Aggregate) Type() catalog.Type     { return a.typ }
func (a *Aggregate) Children() []Expression { return []Expression{a.E} }
func (a *Aggregate) String() string         { return fmt.Sprintf("%s(%s)", a.Func, a.E) }
func (a *Aggregate) Eval(Bindings) (Value, error) {
	return nil, kerrors.TypeMismatch.New("Aggregate must be evaluated through an Accumulator, not Eval")
}

// Accumulator is the running state behind one aggregate call over a
// group (or the whole table, for the groupless Aggregate operator).
// Null policy: NULL input values are skipped by every accumulator
// except COUNT(*) (spec.md §4.7).
type Accumulator interface {
	Add(v Value)
	Result() Value
}

// NewAccumulator builds the accumulator matching agg.Func.
func NewAccumulator(agg *Aggregate) Accumulator {
	switch agg.Func {
	case AggSum:
		return &sumAcc{typ: agg.E.Type()}
	case AggAvg:
		return &avgAcc{}
	case AggMin:
		return &minMaxAcc{typ: agg.E.Type(), wantMax: false}
	case AggMax:
		return &minMaxAcc{typ: agg.E.Type(), wantMax: true}
	default:
		return &countAcc{}
	}
}

type sumAcc struct {
	typ     catalog.Type
	hasVal  bool
	intSum  int64
	realSum float64
}

func (s *sumAcc) Add(v Value) {
	if v == nil {
		return
	}
	s.hasVal = true
	if s.typ.Kind == catalog.REAL {
		s.realSum += v.(float64)
	} else {
		s.intSum += toInt64(v)
	}
}

func (s *sumAcc) Result() Value {
	if !s.hasVal {
		return nil
	}
	if s.typ.Kind == catalog.REAL {
		return s.realSum
	}
	return fromInt64(s.typ, s.intSum)
}

type avgAcc struct {
	sum   float64
	count int64
}

func (a *avgAcc) Add(v Value) {
	if v == nil {
		return
	}
	switch x := v.(type) {
	case float64:
		a.sum += x
	default:
		a.sum += float64(toInt64(v))
	}
	a.count++
}

func (a *avgAcc) Result() Value {
	if a.count == 0 {
		return nil
	}
	return a.sum / float64(a.count)
}

type minMaxAcc struct {
	typ      catalog.Type
	wantMax  bool
	hasVal   bool
	cur      Value
}

func (m *minMaxAcc) Add(v Value) {
	if v == nil {
		return
	}
	if !m.hasVal {
		m.cur = v
		m.hasVal = true
		return
	}
	cmp, _ := compareValues(m.typ, v, m.cur)
	if (m.wantMax && cmp > 0) || (!m.wantMax && cmp < 0) {
		m.cur = v
	}
}

func (m *minMaxAcc) Result() Value {
	if !m.hasVal {
		return nil
	}
	return m.cur
}

// countAcc implements both COUNT(*) and COUNT(column): the caller
// decides which by always calling Add with a non-nil sentinel for
// COUNT(*) (spec.md: "COUNT(literal true) counts rows").
type countAcc struct {
	n int64
}

func (c *countAcc) Add(v Value) {
	if v != nil {
		c.n++
	}
}
func (c *countAcc) Result() Value { return c.n }
