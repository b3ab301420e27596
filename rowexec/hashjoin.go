package rowexec

import (
	"github.com/mitchellh/hashstructure"

	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/plan"
)

// hashJoinIter builds a hash table over Left keyed by LeftKeys, then
// probes it once per Right row (spec.md §4.4). A NULL key component
// never matches anything, on either side, matching standard equi-join
// null semantics.
type hashJoinIter struct {
	rightKeys []expr.Expression
	table     map[uint64][]hashJoinEntry
	right     RowIter
	matches   []expr.Row
}

type hashJoinEntry struct {
	keyValues []expr.Value
	row       expr.Row
}

func NewHashJoinIter(left, right RowIter, op *plan.HashJoin) (RowIter, error) {
	leftRows, err := drain(left)
	if err != nil {
		return nil, err
	}
	table := make(map[uint64][]hashJoinEntry, len(leftRows))
	for _, row := range leftRows {
		keyValues, anyNull, err := evalKeys(op.LeftKeys, expr.Bindings{row})
		if err != nil {
			return nil, err
		}
		if anyNull {
			continue
		}
		h, err := hashstructure.Hash(keyValues, nil)
		if err != nil {
			return nil, err
		}
		table[h] = append(table[h], hashJoinEntry{keyValues: keyValues, row: row})
	}
	return &hashJoinIter{rightKeys: op.RightKeys, table: table, right: right}, nil
}

func evalKeys(keys []expr.Expression, bindings expr.Bindings) ([]expr.Value, bool, error) {
	values := make([]expr.Value, len(keys))
	anyNull := false
	for i, k := range keys {
		v, err := k.Eval(bindings)
		if err != nil {
			return nil, false, err
		}
		if v == nil {
			anyNull = true
		}
		values[i] = v
	}
	return values, anyNull, nil
}

func keysEqual(a, b []expr.Value) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (h *hashJoinIter) Next() (expr.Row, error) {
	for {
		if len(h.matches) > 0 {
			row := h.matches[0]
			h.matches = h.matches[1:]
			return row, nil
		}
		rightRow, err := h.right.Next()
		if err != nil {
			return nil, err
		}
		keyValues, anyNull, err := evalKeys(h.rightKeys, expr.Bindings{rightRow})
		if err != nil {
			return nil, err
		}
		if anyNull {
			continue
		}
		hv, err := hashstructure.Hash(keyValues, nil)
		if err != nil {
			return nil, err
		}
		for _, entry := range h.table[hv] {
			if !keysEqual(entry.keyValues, keyValues) {
				continue
			}
			out := make(expr.Row, 0, len(entry.row)+len(rightRow))
			out = append(out, entry.row...)
			out = append(out, rightRow...)
			h.matches = append(h.matches, out)
		}
	}
}

func (h *hashJoinIter) Close() error { return h.right.Close() }
