package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushdb/kushdb-go/catalog"
)

func TestAggregateNullSkipping(t *testing.T) {
	col := NewVirtualColumnRef(0, catalog.Type{Kind: catalog.REAL, Nullable: true}, "zscore")
	values := []Value{nil, 1.0, nil, 3.0}

	sumAgg, err := NewAggregate(AggSum, col)
	require.NoError(t, err)
	avgAgg, err := NewAggregate(AggAvg, col)
	require.NoError(t, err)
	minAgg, err := NewAggregate(AggMin, col)
	require.NoError(t, err)
	maxAgg, err := NewAggregate(AggMax, col)
	require.NoError(t, err)
	countAgg, err := NewAggregate(AggCount, col)
	require.NoError(t, err)

	sumA := NewAccumulator(sumAgg)
	avgA := NewAccumulator(avgAgg)
	minA := NewAccumulator(minAgg)
	maxA := NewAccumulator(maxAgg)
	countA := NewAccumulator(countAgg)
	for _, v := range values {
		sumA.Add(v)
		avgA.Add(v)
		minA.Add(v)
		maxA.Add(v)
		countA.Add(v)
	}

	assert.Equal(t, 4.0, sumA.Result())
	assert.Equal(t, 2.0, avgA.Result())
	assert.Equal(t, 1.0, minA.Result())
	assert.Equal(t, 3.0, maxA.Result())
	assert.Equal(t, int64(2), countA.Result())
}

func TestCountStarCountsRowsIncludingNullGroups(t *testing.T) {
	// COUNT(*) is modeled as counting a non-null sentinel per row,
	// regardless of any column's nullness.
	star, err := NewAggregate(AggCount, NewLiteral(true, catalog.Type{Kind: catalog.BOOLEAN}))
	require.NoError(t, err)
	acc := NewAccumulator(star)
	for i := 0; i < 4; i++ {
		acc.Add(true)
	}
	assert.Equal(t, int64(4), acc.Result())
}

func TestAvgAlwaysReal(t *testing.T) {
	col := NewVirtualColumnRef(0, catalog.Type{Kind: catalog.INT}, "qty")
	avgAgg, err := NewAggregate(AggAvg, col)
	require.NoError(t, err)
	assert.Equal(t, catalog.REAL, avgAgg.Type().Kind)
}

func TestSumEmptyGroupIsNull(t *testing.T) {
	col := NewVirtualColumnRef(0, catalog.Type{Kind: catalog.REAL, Nullable: true}, "x")
	sumAgg, err := NewAggregate(AggSum, col)
	require.NoError(t, err)
	acc := NewAccumulator(sumAgg)
	assert.Nil(t, acc.Result())
}
