package rowexec

import (
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/plan"
)

// orderByIter buffers Child fully, sorts stably by the lexicographic
// key tuple, and replays (spec.md §4.8). NULLs sort last under
// ascending and first under descending, per key.
type orderByIter struct {
	rows []expr.Row
	pos  int
}

func NewOrderByIter(child RowIter, op *plan.OrderBy) (RowIter, error) {
	rows, err := drain(child)
	if err != nil {
		return nil, err
	}
	keys := make([][]expr.Value, len(rows))
	for i, row := range rows {
		bindings := expr.Bindings{row}
		kv := make([]expr.Value, len(op.KeyExprs))
		for j, ke := range op.KeyExprs {
			v, err := ke.Eval(bindings)
			if err != nil {
				return nil, err
			}
			kv[j] = v
		}
		keys[i] = kv
	}

	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return lessByKeys(keys[order[a]], keys[order[b]], op.KeyExprs, op.Ascending)
	})

	sorted := make([]expr.Row, len(rows))
	for i, idx := range order {
		sorted[i] = rows[idx]
	}
	return &orderByIter{rows: sorted}, nil
}

func lessByKeys(a, b []expr.Value, keyExprs []expr.Expression, ascending []bool) bool {
	for i := range a {
		av, bv := a[i], b[i]
		if av == nil && bv == nil {
			continue
		}
		if av == nil {
			return !ascending[i]
		}
		if bv == nil {
			return ascending[i]
		}
		cmp, _ := compareOrderKeys(keyExprs[i].Type(), av, bv)
		if cmp == 0 {
			continue
		}
		if ascending[i] {
			return cmp < 0
		}
		return cmp > 0
	}
	return false
}

// compareOrderKeys mirrors expr's unexported compareValues: -1/0/1,
// TEXT lexicographic, everything else numeric or boolean.
func compareOrderKeys(typ catalog.Type, l, r expr.Value) (int, error) {
	switch typ.Kind {
	case catalog.TEXT:
		return strings.Compare(l.(string), r.(string)), nil
	case catalog.REAL:
		lf, rf := l.(float64), r.(float64)
		switch {
		case lf < rf:
			return -1, nil
		case lf > rf:
			return 1, nil
		default:
			return 0, nil
		}
	case catalog.BOOLEAN:
		lb, rb := l.(bool), r.(bool)
		switch {
		case lb == rb:
			return 0, nil
		case !lb && rb:
			return -1, nil
		default:
			return 1, nil
		}
	default:
		li, ri := cast.ToInt64(l), cast.ToInt64(r)
		switch {
		case li < ri:
			return -1, nil
		case li > ri:
			return 1, nil
		default:
			return 0, nil
		}
	}
}

func (o *orderByIter) Next() (expr.Row, error) {
	if o.pos >= len(o.rows) {
		return nil, ErrDone
	}
	row := o.rows[o.pos]
	o.pos++
	return row, nil
}

func (o *orderByIter) Close() error { return nil }
