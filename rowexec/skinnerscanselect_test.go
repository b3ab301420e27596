package rowexec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHintedCostPenalizesEarlyExpensivePredicates(t *testing.T) {
	hint := map[int]bool{1: true}

	early := hintedCost([]int{1, 0}, hint)
	late := hintedCost([]int{0, 1}, hint)

	assert.Greater(t, early, late, "an order reaching the expensive predicate first should cost more")
}

func TestSeedFromHintBiasesArmSelectionTowardDeferringExpensivePredicate(t *testing.T) {
	it := &skinnerScanSelectIter{
		arms:  [][]int{{1, 0}, {0, 1}},
		stats: make([]armStats, 2),
	}
	it.seedFromHint(map[int]bool{1: true})

	require.EqualValues(t, 1, it.stats[0].pulls)
	require.EqualValues(t, 1, it.stats[1].pulls)
	assert.Equal(t, 1, it.selectArm(), "should favor the arm deferring the expensive predicate to the end")
}

func TestSeedFromHintNoopOnEmptyHint(t *testing.T) {
	it := &skinnerScanSelectIter{
		arms:  [][]int{{1, 0}, {0, 1}},
		stats: make([]armStats, 2),
	}
	it.seedFromHint(nil)

	for _, st := range it.stats {
		assert.Zero(t, st.pulls)
	}
	assert.Zero(t, it.totalPulls)
}
