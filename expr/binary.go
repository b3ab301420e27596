package expr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// BinaryArith is the single node type backing every binary operator
// of spec.md §4.2 except regex and CASE: arithmetic, logical,
// comparison, and string-match operators all share one evaluation
// shape (two operands, one opcode), matching the original's
// binary_arithmetic_expression.cc.
type BinaryArith struct {
	Op          BinaryOp
	Left, Right Expression
	typ         catalog.Type
}

// NewBinaryArith performs the type inference of spec.md §3 at
// construction time and fails fast with TypeMismatch on an illegal
// combination.
func NewBinaryArith(op BinaryOp, left, right Expression) (*BinaryArith, error) {
	lt, rt := left.Type(), right.Type()
	nullable := lt.Nullable || rt.Nullable

	switch {
	case op.isArithmetic():
		if !lt.IsNumeric() || !rt.IsNumeric() {
			return nil, kerrors.TypeMismatch.New(fmt.Sprintf("%s requires numeric operands, got %s and %s", op, lt, rt))
		}
		if !lt.Equal(rt) {
			return nil, kerrors.TypeMismatch.New(fmt.Sprintf("%s operand types must match exactly, got %s and %s", op, lt, rt))
		}
		return &BinaryArith{Op: op, Left: left, Right: right, typ: lt.WithNullable(nullable)}, nil

	case op.isLogical():
		if lt.Kind != catalog.BOOLEAN || rt.Kind != catalog.BOOLEAN {
			return nil, kerrors.TypeMismatch.New(fmt.Sprintf("%s requires BOOLEAN operands, got %s and %s", op, lt, rt))
		}
		return &BinaryArith{Op: op, Left: left, Right: right, typ: catalog.Type{Kind: catalog.BOOLEAN, Nullable: nullable}}, nil

	case op.isComparison():
		if !lt.Equal(rt) {
			return nil, kerrors.TypeMismatch.New(fmt.Sprintf("%s operand types must match exactly, got %s and %s", op, lt, rt))
		}
		return &BinaryArith{Op: op, Left: left, Right: right, typ: catalog.Type{Kind: catalog.BOOLEAN, Nullable: nullable}}, nil

	case op.isStringMatch():
		if lt.Kind != catalog.TEXT || rt.Kind != catalog.TEXT {
			return nil, kerrors.TypeMismatch.New(fmt.Sprintf("%s requires TEXT operands, got %s and %s", op, lt, rt))
		}
		return &BinaryArith{Op: op, Left: left, Right: right, typ: catalog.Type{Kind: catalog.BOOLEAN, Nullable: nullable}}, nil

	default:
		return nil, kerrors.TypeMismatch.New(fmt.Sprintf("unknown binary operator %s", op))
	}
}

func (e *BinaryArith) Type() catalog.Type     { return e.typ }
func (e *BinaryArith) Children() []Expression { return []Expression{e.Left, e.Right} }
func (e *BinaryArith) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

func (e *BinaryArith) Eval(b Bindings) (Value, error) {
	lv, err := e.Left.Eval(b)
	if err != nil {
		return nil, errors.Wrap(err, "evaluating left operand")
	}
	rv, err := e.Right.Eval(b)
	if err != nil {
		return nil, errors.Wrap(err, "evaluating right operand")
	}

	if e.Op.isLogical() {
		return evalKleene(e.Op, lv, rv), nil
	}

	// Every remaining operator propagates NULL: spec.md §9 "NULL
	// propagates (three-valued)" for string-match, and standard SQL
	// null-propagation for arithmetic/comparison.
	if lv == nil || rv == nil {
		return nil, nil
	}

	if e.Op.isArithmetic() {
		return evalArith(e.Op, e.Left.Type(), lv, rv)
	}
	if e.Op.isComparison() {
		return evalComparison(e.Op, e.Left.Type(), lv, rv)
	}
	return evalStringMatch(e.Op, lv.(string), rv.(string)), nil
}

// evalKleene implements three-valued AND/OR: nil stands for UNKNOWN.
func evalKleene(op BinaryOp, l, r Value) Value {
	lb, lNull := boolOrNull(l)
	rb, rNull := boolOrNull(r)
	if op == OpAnd {
		if !lNull && !lb {
			return false
		}
		if !rNull && !rb {
			return false
		}
		if lNull || rNull {
			return nil
		}
		return true
	}
	// OR
	if !lNull && lb {
		return true
	}
	if !rNull && rb {
		return true
	}
	if lNull || rNull {
		return nil
	}
	return false
}

func evalArith(op BinaryOp, typ catalog.Type, l, r Value) (Value, error) {
	if typ.Kind == catalog.REAL {
		lf, rf := l.(float64), r.(float64)
		switch op {
		case OpAdd:
			return lf + rf, nil
		case OpSub:
			return lf - rf, nil
		case OpMul:
			return lf * rf, nil
		case OpDiv:
			return lf / rf, nil // IEEE-754: x/0 -> +-Inf or NaN, per spec.md §4.2
		}
	}
	// Integer kinds: two's-complement wraparound semantics, DIV by
	// zero yields 0 rather than a raised error (spec.md §4.2, §7
	// RuntimeOverflow is NOT raised here).
	li, ri := toInt64(l), toInt64(r)
	var result int64
	switch op {
	case OpAdd:
		result = li + ri
	case OpSub:
		result = li - ri
	case OpMul:
		result = li * ri
	case OpDiv:
		if ri == 0 {
			result = 0
		} else {
			result = li / ri
		}
	}
	return fromInt64(typ, result), nil
}

func toInt64(v Value) int64 {
	switch x := v.(type) {
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	default:
		return cast.ToInt64(v)
	}
}

func fromInt64(typ catalog.Type, v int64) Value {
	switch typ.Kind {
	case catalog.SMALLINT:
		return int16(v)
	case catalog.INT:
		return int32(v)
	default: // BIGINT, DATE
		return v
	}
}

func evalComparison(op BinaryOp, typ catalog.Type, l, r Value) (Value, error) {
	cmp, err := compareValues(typ, l, r)
	if err != nil {
		return nil, err
	}
	switch op {
	case OpEq:
		return cmp == 0, nil
	case OpNeq:
		return cmp != 0, nil
	case OpLt:
		return cmp < 0, nil
	case OpLeq:
		return cmp <= 0, nil
	case OpGt:
		return cmp > 0, nil
	case OpGeq:
		return cmp >= 0, nil
	default:
		return nil, errors.Errorf("not a comparison operator: %s", op)
	}
}

// compareValues returns -1/0/1. TEXT compares lexicographically
// (spec.md §4.2); ENUM compares by dictionary id as a plain int32.
func compareValues(typ catalog.Type, l, r Value) (int, error) {
	switch typ.Kind {
	case catalog.TEXT:
		ls, rs := l.(string), r.(string)
		return strings.Compare(ls, rs), nil
	case catalog.REAL:
		lf, rf := l.(float64), r.(float64)
		switch {
		case lf < rf:
			return -1, nil
		case lf > rf:
			return 1, nil
		default:
			return 0, nil
		}
	case catalog.BOOLEAN:
		lb, rb := l.(bool), r.(bool)
		if lb == rb {
			return 0, nil
		}
		if !lb && rb {
			return -1, nil
		}
		return 1, nil
	default:
		li, ri := toInt64(l), toInt64(r)
		switch {
		case li < ri:
			return -1, nil
		case li > ri:
			return 1, nil
		default:
			return 0, nil
		}
	}
}

func evalStringMatch(op BinaryOp, l, r string) Value {
	switch op {
	case OpStartsWith:
		return strings.HasPrefix(l, r)
	case OpEndsWith:
		return strings.HasSuffix(l, r)
	default:
		return strings.Contains(l, r)
	}
}
