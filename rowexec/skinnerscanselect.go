package rowexec

import (
	"math"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/plan"
	"github.com/kushdb/kushdb-go/runtime"
)

// maxLearnedPredicates bounds how many of ScanSelect's predicates the
// bandit reorders; beyond this the tail is always evaluated in
// declared order after the learned prefix. Keeps the arm count
// (factorial in the learned prefix) small regardless of how many
// predicates a query has.
const maxLearnedPredicates = 4

// skinnerScanSelectIter adaptively reorders SkinnerScanSelect's
// predicates, per chunk of ChunkSize tuples, to minimize the average
// number of predicate evaluations spent rejecting a tuple (spec.md
// §4.3). Every permutation evaluates the same conjunction, so the set
// of emitted rows is identical regardless of which arm the bandit is
// favoring at any moment — only the work done to get there varies.
type skinnerScanSelectIter struct {
	opened []openedColumn
	proj   []int
	n      uint32
	next   uint32

	predicates []expr.Expression
	arms       [][]int // each arm is a permutation of predicate indices
	stats      []armStats
	totalPulls int64
	chunkSize  int

	pending []expr.Row // buffered matches from the chunk currently being drained
}

type armStats struct {
	pulls int64
	cost  float64 // running mean of predicate evaluations per tuple
}

func NewSkinnerScanSelectIter(op *plan.SkinnerScanSelect, fm *runtime.FileManager) (RowIter, error) {
	scanCols := make([]catalog.Column, op.ScanSchema.Len())
	for i, c := range op.ScanSchema.Columns() {
		col, _ := op.Table.Column(c.Name)
		scanCols[i] = col
	}
	opened, err := openColumns(fm, scanCols)
	if err != nil {
		return nil, err
	}
	n := uint32(0)
	if len(opened) > 0 {
		n = opened[0].cardinality()
	}
	proj := make([]int, op.Schema().Len())
	for i, c := range op.Schema().Columns() {
		idx, _, _ := op.ScanSchema.Resolve(c.Name)
		proj[i] = idx
	}

	arms := buildPermutationArms(len(op.Predicates))
	it := &skinnerScanSelectIter{
		opened:     opened,
		proj:       proj,
		n:          n,
		predicates: op.Predicates,
		arms:       arms,
		stats:      make([]armStats, len(arms)),
		chunkSize:  op.ChunkSize,
	}
	it.seedFromHint(op.ExpensiveHint)
	return it, nil
}

// seedFromHint primes every arm's stats from the plan's cheap/expensive
// predicate partition (spec.md §4.3) instead of leaving the bandit to
// discover it cold: an order that reaches an expensive predicate early
// is charged a higher initial cost than one that defers it, so the
// first real episode already favors deferring expensive predicates.
// Each seed counts as one pull, so recordChunkCost's running mean
// blends it with (and lets it be overridden by) actually measured
// cost the same way it blends any other pull. A nil or empty hint
// leaves stats untouched, so the bandit falls back to the original
// blind, every-arm-once exploration.
func (s *skinnerScanSelectIter) seedFromHint(hint map[int]bool) {
	if len(hint) == 0 {
		return
	}
	for i, order := range s.arms {
		s.stats[i] = armStats{pulls: 1, cost: hintedCost(order, hint)}
		s.totalPulls++
	}
}

// hintedCost charges each expensive predicate in order a penalty
// proportional to how early it appears: reaching one at position i
// costs len(order)-i, so placing it last costs 1 and placing it first
// costs len(order).
func hintedCost(order []int, hint map[int]bool) float64 {
	var cost float64
	for i, predIdx := range order {
		if hint[predIdx] {
			cost += float64(len(order) - i)
		}
	}
	return cost
}

// buildPermutationArms enumerates every ordering of the first
// min(k, maxLearnedPredicates) predicate indices, each followed by
// the untouched remainder in declared order.
func buildPermutationArms(k int) [][]int {
	learned := k
	if learned > maxLearnedPredicates {
		learned = maxLearnedPredicates
	}
	base := make([]int, learned)
	for i := range base {
		base[i] = i
	}
	var perms [][]int
	permute(base, 0, &perms)
	tail := make([]int, 0, k-learned)
	for i := learned; i < k; i++ {
		tail = append(tail, i)
	}
	arms := make([][]int, len(perms))
	for i, p := range perms {
		arm := make([]int, 0, k)
		arm = append(arm, p...)
		arm = append(arm, tail...)
		arms[i] = arm
	}
	if len(arms) == 0 {
		arms = [][]int{tail}
	}
	return arms
}

func permute(a []int, k int, out *[][]int) {
	if k == len(a) {
		cp := make([]int, len(a))
		copy(cp, a)
		*out = append(*out, cp)
		return
	}
	for i := k; i < len(a); i++ {
		a[k], a[i] = a[i], a[k]
		permute(a, k+1, out)
		a[k], a[i] = a[i], a[k]
	}
}

// selectArm applies UCB1 (spec.md §4.6's selection rule, reused here
// at single-relation granularity): pull every arm once, then favor
// the arm maximizing mean-reward + sqrt(2 ln(totalPulls)/pulls). The
// reward the scan optimizes is the negative evaluation cost, so lower
// cost wins.
func (s *skinnerScanSelectIter) selectArm() int {
	for i, st := range s.stats {
		if st.pulls == 0 {
			return i
		}
	}
	best, bestScore := 0, math.Inf(-1)
	logTotal := math.Log(float64(s.totalPulls))
	for i, st := range s.stats {
		score := -st.cost + math.Sqrt(2*logTotal/float64(st.pulls))
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func (s *skinnerScanSelectIter) Next() (expr.Row, error) {
	for len(s.pending) == 0 {
		if s.next >= s.n {
			return nil, ErrDone
		}
		if err := s.runChunk(); err != nil {
			return nil, err
		}
	}
	row := s.pending[0]
	s.pending = s.pending[1:]
	return row, nil
}

// runChunk evaluates one ChunkSize-sized (or shorter, at the tail)
// window under the bandit's current best arm, buffering every
// matching row into s.pending and feeding the observed evaluation
// cost back into that arm's statistics.
func (s *skinnerScanSelectIter) runChunk() error {
	chunkEnd := s.next + uint32(s.chunkSize)
	if chunkEnd > s.n {
		chunkEnd = s.n
	}
	arm := s.selectArm()
	order := s.arms[arm]

	var totalEvals, tuplesInChunk int64
	for tupleID := s.next; tupleID < chunkEnd; tupleID++ {
		local := make(expr.Row, len(s.opened))
		for i, o := range s.opened {
			local[i] = o.read(tupleID)
		}
		bindings := expr.Bindings{local}
		evals, matched, err := s.evalOrder(order, bindings)
		if err != nil {
			return err
		}
		totalEvals += int64(evals)
		tuplesInChunk++
		if matched {
			out := make(expr.Row, len(s.proj))
			for i, p := range s.proj {
				out[i] = local[p]
			}
			s.pending = append(s.pending, out)
		}
	}
	s.recordChunkCost(arm, totalEvals, tuplesInChunk)
	s.next = chunkEnd
	return nil
}

func (s *skinnerScanSelectIter) recordChunkCost(arm int, totalEvals, tuples int64) {
	if tuples == 0 {
		return
	}
	st := &s.stats[arm]
	cost := float64(totalEvals) / float64(tuples)
	st.pulls++
	st.cost += (cost - st.cost) / float64(st.pulls)
	s.totalPulls++
}

// evalOrder evaluates predicates in the given order, short-circuiting
// on the first FALSE/UNKNOWN, returning the number of predicates
// evaluated and whether the full conjunction held.
func (s *skinnerScanSelectIter) evalOrder(order []int, bindings expr.Bindings) (int, bool, error) {
	for i, predIdx := range order {
		v, err := s.predicates[predIdx].Eval(bindings)
		if err != nil {
			return i + 1, false, err
		}
		if v == nil || !v.(bool) {
			return i + 1, false, nil
		}
	}
	return len(order), true, nil
}

func (s *skinnerScanSelectIter) Close() error { return nil }
