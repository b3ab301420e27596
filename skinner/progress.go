package skinner

// progress is the per-permutation checkpoint of a left-deep nested
// loop: cursor[d] is the row index (within that permutation's
// relation at depth d) the traversal should resume from when this
// permutation is next selected. (*joinIter).advance carries an
// overflowing cursor into depth d-1 at once and resets the deeper
// cursors to 0, so only cursor[0] is ever left at its relation's row
// count, and that marks the permutation as exhausted (see
// (*joinIter).runEpisode).
//
// Keeping one progress record per permutation (rather than one
// global cursor) is what lets the bandit switch orders freely between
// episodes without losing or duplicating work: each order's odometer
// is independent, and (*joinIter).dedup is what reconciles the
// overlap between them.
type progress struct {
	byPerm map[string][]int
}

func newProgress() *progress {
	return &progress{byPerm: make(map[string][]int)}
}

// cursorFor returns the mutable cursor slice for perm, allocating a
// fresh all-zero one (the odometer's start state) on first use.
func (p *progress) cursorFor(perm []int, k int) []int {
	key := permKey(perm)
	c, ok := p.byPerm[key]
	if !ok {
		c = make([]int, k)
		p.byPerm[key] = c
	}
	return c
}

// exhausted reports whether every known permutation's cursor has
// reached its depth-0 relation's row count, i.e. nothing further can
// be enumerated under any order.
func (p *progress) exhausted(relationSizes func(depth, relIdx int) int, perms [][]int) bool {
	for _, perm := range perms {
		c, ok := p.byPerm[permKey(perm)]
		if !ok {
			return false
		}
		if c[0] < relationSizes(0, perm[0]) {
			return false
		}
	}
	return true
}
