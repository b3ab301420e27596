package rowexec

import (
	"github.com/mitchellh/hashstructure"

	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/plan"
)

// groupByAggregateIter hash-groups Child's rows by GroupExprs and
// drives one expr.Accumulator per Aggs entry per group (spec.md
// §4.7). Group iteration order is unspecified; this implementation
// emits groups in first-seen order, which is enough to satisfy that
// contract without claiming more than it does.
type groupByAggregateIter struct {
	rows   []groupRow
	pos    int
}

type groupRow struct {
	keyValues []expr.Value
	accs      []expr.Accumulator
}

func NewGroupByAggregateIter(child RowIter, op *plan.GroupByAggregate) (RowIter, error) {
	rows, err := drain(child)
	if err != nil {
		return nil, err
	}
	groups := make(map[uint64][]int) // hash -> indices into order
	var order []groupRow

	for _, row := range rows {
		bindings := expr.Bindings{row}
		keyValues := make([]expr.Value, len(op.GroupExprs))
		for i, ge := range op.GroupExprs {
			v, err := ge.Eval(bindings)
			if err != nil {
				return nil, err
			}
			keyValues[i] = v
		}
		h, err := hashstructure.Hash(keyValues, nil)
		if err != nil {
			return nil, err
		}
		groupIdx := -1
		for _, candidate := range groups[h] {
			if keysEqual(order[candidate].keyValues, keyValues) {
				groupIdx = candidate
				break
			}
		}
		if groupIdx == -1 {
			accs := make([]expr.Accumulator, len(op.Aggs))
			for i, a := range op.Aggs {
				accs[i] = expr.NewAccumulator(a.Agg)
			}
			order = append(order, groupRow{keyValues: keyValues, accs: accs})
			groupIdx = len(order) - 1
			groups[h] = append(groups[h], groupIdx)
		}
		for i, a := range op.Aggs {
			v, err := a.Agg.E.Eval(bindings)
			if err != nil {
				return nil, err
			}
			order[groupIdx].accs[i].Add(v)
		}
	}
	return &groupByAggregateIter{rows: order}, nil
}

func (g *groupByAggregateIter) Next() (expr.Row, error) {
	if g.pos >= len(g.rows) {
		return nil, ErrDone
	}
	gr := g.rows[g.pos]
	g.pos++
	out := make(expr.Row, 0, len(gr.keyValues)+len(gr.accs))
	out = append(out, gr.keyValues...)
	for _, acc := range gr.accs {
		out = append(out, acc.Result())
	}
	return out, nil
}

func (g *groupByAggregateIter) Close() error { return nil }

// aggregateIter is GroupByAggregate with no group keys: it collapses
// Child entirely into one row (spec.md §4.7 "Empty group_exprs
// collapses to a single cell").
type aggregateIter struct {
	row     expr.Row
	emitted bool
}

func NewAggregateIter(child RowIter, op *plan.Aggregate) (RowIter, error) {
	accs := make([]expr.Accumulator, len(op.Aggs))
	for i, a := range op.Aggs {
		accs[i] = expr.NewAccumulator(a.Agg)
	}
	for {
		row, err := child.Next()
		if err == ErrDone {
			break
		}
		if err != nil {
			return nil, err
		}
		bindings := expr.Bindings{row}
		for i, a := range op.Aggs {
			v, err := a.Agg.E.Eval(bindings)
			if err != nil {
				return nil, err
			}
			accs[i].Add(v)
		}
	}
	if err := child.Close(); err != nil {
		return nil, err
	}
	out := make(expr.Row, len(accs))
	for i, acc := range accs {
		out[i] = acc.Result()
	}
	return &aggregateIter{row: out}, nil
}

func (a *aggregateIter) Next() (expr.Row, error) {
	if a.emitted {
		return nil, ErrDone
	}
	a.emitted = true
	return a.row, nil
}

func (a *aggregateIter) Close() error { return nil }
