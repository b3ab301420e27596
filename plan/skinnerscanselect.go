package plan

import (
	"fmt"
)

// DefaultChunkSize is the episode granularity SkinnerScanSelect uses
// to learn a predicate evaluation order (spec.md §4.3).
const DefaultChunkSize = 4096

// SkinnerScanSelect is the adaptive variant of ScanSelect: it
// partitions Predicates into "cheap" and "expensive" groups and
// learns the best per-chunk evaluation order via a UCB1 bandit
// (spec.md §4.3; executed by rowexec, which has its own UCB1 arm
// selection at single-relation granularity, separate from package
// skinner's).
type SkinnerScanSelect struct {
	*ScanSelect
	ChunkSize int
	// ExpensiveHint marks, by index into Predicates, the predicates
	// the plan builder already knows are costlier to evaluate (e.g. a
	// regex or a cross-column comparison vs. a simple range check).
	// The bandit still learns the true order; this is only a seed.
	ExpensiveHint map[int]bool
}

// NewSkinnerScanSelect wraps a ScanSelect with adaptive-order
// execution, using DefaultChunkSize unless chunkSize > 0 overrides it.
func NewSkinnerScanSelect(inner *ScanSelect, chunkSize int, expensiveHint map[int]bool) *SkinnerScanSelect {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &SkinnerScanSelect{ScanSelect: inner, ChunkSize: chunkSize, ExpensiveHint: expensiveHint}
}

func (s *SkinnerScanSelect) Kind() Kind { return KindSkinnerScanSelect }
func (s *SkinnerScanSelect) String() string {
	return fmt.Sprintf("Skinner%s[chunk=%d]", s.ScanSelect.String(), s.ChunkSize)
}
