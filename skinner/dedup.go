package skinner

import (
	"github.com/mitchellh/hashstructure"
	"github.com/pilosa/pilosa/roaring"
)

// dedupSet remembers which full tuple-id combinations have already
// been emitted, independent of which permutation produced them. A
// combination is canonicalized as the vector of chosen row indices
// indexed by *relation id*, not by permutation position, so the same
// combination reached via two different orders hashes identically.
//
// Combinations are hashed down to a uint64 with hashstructure and
// kept in a pilosa roaring.Bitmap — the same compact tuple-id-set type
// runtime.ColumnIndex uses for its buckets (SPEC_FULL.md §11) — rather
// than a plain map, since a long-running adaptive join can accumulate
// millions of combinations and the bitmap's compression keeps that
// bounded. A 64-bit hash collision would make a distinct, legitimate
// combination look like a duplicate and skip it. runtime.ColumnIndex
// has no such case, since it keys its buckets by exact key bytes; here
// combinations are opaque integers, not looked up by exact key
// comparison.
type dedupSet struct {
	seen *roaring.Bitmap
}

func newDedupSet() *dedupSet {
	return &dedupSet{seen: roaring.NewBitmap()}
}

// observe returns true if combo was already recorded (a duplicate),
// and records it otherwise.
func (d *dedupSet) observe(combo []int) (bool, error) {
	h, err := hashstructure.Hash(combo, nil)
	if err != nil {
		return false, err
	}
	if d.seen.Contains(h) {
		return true, nil
	}
	d.seen.Add(h)
	return false, nil
}
