package rowexec

import (
	"github.com/kushdb/kushdb-go/plan"
	"github.com/kushdb/kushdb-go/runtime"
)

// NewSIMDScanSelectIter builds the reference executor for a
// SIMDScanSelect. Its observable results are identical to ScanSelect
// (spec.md §4.3): the restriction to SIMD-lowerable predicate forms
// only changes what the native-code backend may do with the same
// operator, which this tree-walking interpreter never attempts.
func NewSIMDScanSelectIter(op *plan.SIMDScanSelect, fm *runtime.FileManager) (RowIter, error) {
	return NewScanSelectIter(op.ScanSelect, fm)
}
