// Package skinner implements the adaptive n-ary join executor of
// spec.md §4.6: a UCB1 bandit search over relation join orders, with
// per-permutation progress checkpoints so switching orders between
// episodes never re-derives work already done and never misses a
// combination, and a dedup set so a combination reachable by more than
// one permutation is still emitted exactly once. Grounded on
// original_source/plan/skinner_join_operator.cc's UCT tree.
package skinner

import (
	"fmt"
	"math"
	"strings"
)

// bandit tracks UCB1 statistics over a fixed set of join-order
// permutations, each identified by its string signature (see
// permKey). Reward is negative mean tuples-examined-per-emitted-row:
// lower cost orders are favored, matching spec.md §4.6's "learn which
// join order minimizes wasted work" framing.
type bandit struct {
	perms [][]int
	stats map[string]*armStat
	pulls int64
}

type armStat struct {
	pulls int64
	cost  float64
}

func newBandit(perms [][]int) *bandit {
	stats := make(map[string]*armStat, len(perms))
	for _, p := range perms {
		stats[permKey(p)] = &armStat{}
	}
	return &bandit{perms: perms, stats: stats}
}

// permKey gives each permutation a stable map key.
func permKey(p []int) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ",")
}

// selectArm returns the next permutation to try: every arm is pulled
// once before UCB1 scoring kicks in.
func (b *bandit) selectArm() []int {
	for _, p := range b.perms {
		if b.stats[permKey(p)].pulls == 0 {
			return p
		}
	}
	logTotal := math.Log(float64(b.pulls))
	var best []int
	bestScore := math.Inf(-1)
	for _, p := range b.perms {
		st := b.stats[permKey(p)]
		score := -st.cost + math.Sqrt(2*logTotal/float64(st.pulls))
		if score > bestScore {
			best, bestScore = p, score
		}
	}
	return best
}

// record feeds an episode's outcome back into its arm: cost is the
// number of candidate tuples examined per row successfully emitted
// during the episode (higher is worse).
func (b *bandit) record(perm []int, examined int64, emitted int64) {
	st := b.stats[permKey(perm)]
	cost := float64(examined)
	if emitted > 0 {
		cost = float64(examined) / float64(emitted)
	}
	st.pulls++
	st.cost += (cost - st.cost) / float64(st.pulls)
	b.pulls++
}

// permutations enumerates every ordering of 0..k-1. Join arities in
// practice are small (spec.md §8's concrete scenario uses k=4, 24
// orders); nothing in this package assumes a specific bound, but
// callers of a very large k should expect the factorial blowup.
func permutations(k int) [][]int {
	base := make([]int, k)
	for i := range base {
		base[i] = i
	}
	var out [][]int
	var rec func(int)
	rec = func(pos int) {
		if pos == len(base) {
			cp := make([]int, len(base))
			copy(cp, base)
			out = append(out, cp)
			return
		}
		for i := pos; i < len(base); i++ {
			base[pos], base[i] = base[i], base[pos]
			rec(pos + 1)
			base[pos], base[i] = base[i], base[pos]
		}
	}
	rec(0)
	return out
}
