package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushdb/kushdb-go/catalog"
)

func lit(v Value, k catalog.Kind) Expression {
	return NewLiteral(v, catalog.Type{Kind: k})
}

func TestBinaryArithArithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   BinaryOp
		l, r Expression
		want Value
	}{
		{"real add", OpAdd, lit(1.5, catalog.REAL), lit(2.5, catalog.REAL), 4.0},
		{"int mul", OpMul, lit(int32(3), catalog.INT), lit(int32(4), catalog.INT), int32(12)},
		{"int div by zero", OpDiv, lit(int32(7), catalog.INT), lit(int32(0), catalog.INT), int32(0)},
		{"bigint sub below zero", OpSub, lit(int64(1), catalog.BIGINT), lit(int64(2), catalog.BIGINT), int64(-1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewBinaryArith(tc.op, tc.l, tc.r)
			require.NoError(t, err)
			got, err := e.Eval(nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBinaryArithmeticRejectsMismatch(t *testing.T) {
	_, err := NewBinaryArith(OpAdd, lit(int32(1), catalog.INT), lit(int64(1), catalog.BIGINT))
	assert.Error(t, err)
}

func TestBinaryArithNullPropagation(t *testing.T) {
	nullInt := NewLiteral(nil, catalog.Type{Kind: catalog.INT, Nullable: true})
	e, err := NewBinaryArith(OpAdd, nullInt, lit(int32(1), catalog.INT))
	require.NoError(t, err)
	got, err := e.Eval(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestKleeneAnd(t *testing.T) {
	trueLit := lit(true, catalog.BOOLEAN)
	falseLit := lit(false, catalog.BOOLEAN)
	nullBool := NewLiteral(nil, catalog.Type{Kind: catalog.BOOLEAN, Nullable: true})

	// false AND unknown = false
	e, err := NewBinaryArith(OpAnd, falseLit, nullBool)
	require.NoError(t, err)
	got, _ := e.Eval(nil)
	assert.Equal(t, false, got)

	// true AND unknown = unknown
	e, err = NewBinaryArith(OpAnd, trueLit, nullBool)
	require.NoError(t, err)
	got, _ = e.Eval(nil)
	assert.Nil(t, got)

	// true OR unknown = true
	e, err = NewBinaryArith(OpOr, trueLit, nullBool)
	require.NoError(t, err)
	got, _ = e.Eval(nil)
	assert.Equal(t, true, got)
}

func TestTextComparisonLexicographic(t *testing.T) {
	e, err := NewBinaryArith(OpLt, lit("apple", catalog.TEXT), lit("banana", catalog.TEXT))
	require.NoError(t, err)
	got, err := e.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, true, got)
}

func TestStringMatchOperators(t *testing.T) {
	col := lit("hello world", catalog.TEXT)
	sw, err := NewBinaryArith(OpStartsWith, col, lit("hello", catalog.TEXT))
	require.NoError(t, err)
	got, _ := sw.Eval(nil)
	assert.Equal(t, true, got)

	ew, err := NewBinaryArith(OpEndsWith, col, lit("world", catalog.TEXT))
	require.NoError(t, err)
	got, _ = ew.Eval(nil)
	assert.Equal(t, true, got)

	ct, err := NewBinaryArith(OpContains, col, lit("lo wo", catalog.TEXT))
	require.NoError(t, err)
	got, _ = ct.Eval(nil)
	assert.Equal(t, true, got)
}

func TestCaseNullConditionSelectsElse(t *testing.T) {
	nullCond := NewLiteral(nil, catalog.Type{Kind: catalog.BOOLEAN, Nullable: true})
	c, err := NewCase(nullCond, lit(int32(1), catalog.INT), lit(int32(2), catalog.INT))
	require.NoError(t, err)
	got, err := c.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), got)
}

func TestExtractYear(t *testing.T) {
	// 1993-05-28T00:00:00Z
	const ms = 738547200000
	e, err := NewExtract(ExtractYear, lit(int64(ms), catalog.DATE))
	require.NoError(t, err)
	got, err := e.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1993), got)
}

type fakeResolver map[string]int32

func (f fakeResolver) GetValue(dictID int, s string) (int32, bool) {
	v, ok := f[s]
	return v, ok
}

func TestEnumEqLiteralRewrite(t *testing.T) {
	resolver := fakeResolver{"A": 0, "B": 1}
	col := NewVirtualColumnRef(0, catalog.Type{Kind: catalog.ENUM, EnumID: 1}, "returnflag")

	e, err := NewEnumEqLiteral(col, "B", resolver)
	require.NoError(t, err)
	got, err := e.Eval(Bindings{{int32(1)}})
	require.NoError(t, err)
	assert.Equal(t, true, got)

	// Unresolvable literal -> always false, without touching data.
	e, err = NewEnumEqLiteral(col, "Z", resolver)
	require.NoError(t, err)
	got, err = e.Eval(Bindings{{int32(1)}})
	require.NoError(t, err)
	assert.Equal(t, false, got)
}
