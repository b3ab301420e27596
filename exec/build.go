// Package exec wires package plan's operator tree to package
// rowexec's physical iterators, dispatching on plan.Kind. It is the
// one place in the module allowed to import both rowexec and skinner,
// breaking what would otherwise be a cycle (skinner needs to build
// arbitrary child operators; rowexec doesn't know about skinner).
package exec

import (
	"fmt"

	"github.com/kushdb/kushdb-go/internal/config"
	"github.com/kushdb/kushdb-go/internal/kerrors"
	"github.com/kushdb/kushdb-go/plan"
	"github.com/kushdb/kushdb-go/rowexec"
	"github.com/kushdb/kushdb-go/runtime"
	"github.com/kushdb/kushdb-go/skinner"
)

// Builder turns a plan.Operator tree into an executable rowexec.RowIter,
// against one shared FileManager and EngineConfig.
type Builder struct {
	FM  *runtime.FileManager
	Cfg config.EngineConfig
}

// NewBuilder constructs a Builder. cfg is validated; an invalid
// configuration is rejected here rather than surfacing mid-query.
func NewBuilder(fm *runtime.FileManager, cfg config.EngineConfig) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Builder{FM: fm, Cfg: cfg}, nil
}

// Build recursively lowers op and its children into a RowIter,
// exhaustively switching on plan.Kind (spec.md §4's closed operator
// set).
func (b *Builder) Build(op plan.Operator) (rowexec.RowIter, error) {
	switch o := op.(type) {
	case *plan.Scan:
		return rowexec.NewScanIter(o, b.FM)
	case *plan.SIMDScanSelect:
		return rowexec.NewSIMDScanSelectIter(o, b.FM)
	case *plan.SkinnerScanSelect:
		return rowexec.NewSkinnerScanSelectIter(o, b.FM)
	case *plan.ScanSelect:
		return rowexec.NewScanSelectIter(o, b.FM)
	case *plan.Select:
		child, err := b.Build(o.Child)
		if err != nil {
			return nil, err
		}
		return rowexec.NewSelectIter(child, o), nil
	case *plan.HashJoin:
		left, err := b.Build(o.Left)
		if err != nil {
			return nil, err
		}
		right, err := b.Build(o.Right)
		if err != nil {
			return nil, err
		}
		return rowexec.NewHashJoinIter(left, right, o)
	case *plan.CrossProduct:
		left, err := b.Build(o.Left)
		if err != nil {
			return nil, err
		}
		right, err := b.Build(o.Right)
		if err != nil {
			return nil, err
		}
		return rowexec.NewCrossProductIter(left, right)
	case *plan.SkinnerJoin:
		return skinner.NewJoinIter(o, b.Cfg, b.Build)
	case *plan.GroupByAggregate:
		child, err := b.Build(o.Child)
		if err != nil {
			return nil, err
		}
		return rowexec.NewGroupByAggregateIter(child, o)
	case *plan.Aggregate:
		child, err := b.Build(o.Child)
		if err != nil {
			return nil, err
		}
		return rowexec.NewAggregateIter(child, o)
	case *plan.OrderBy:
		child, err := b.Build(o.Child)
		if err != nil {
			return nil, err
		}
		return rowexec.NewOrderByIter(child, o)
	case *plan.Output:
		child, err := b.Build(o.Child)
		if err != nil {
			return nil, err
		}
		return rowexec.NewOutputIter(child, o), nil
	default:
		return nil, kerrors.TypeMismatch.New(fmt.Sprintf("exec: unhandled operator kind %s", op.Kind()))
	}
}
