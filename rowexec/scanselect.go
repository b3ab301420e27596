package rowexec

import (
	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/plan"
	"github.com/kushdb/kushdb-go/runtime"
)

// scanSelectIter evaluates ScanSelect's predicates in declared order,
// short-circuiting to the next tuple on the first FALSE (spec.md
// §4.3 policy 1). If some predicate is an equality on an indexed
// column against a constant, the iterator instead drives its
// candidate stream from the index (policy 2), evaluating the
// remaining predicates only against tuples the index already
// confirmed match.
type scanSelectIter struct {
	opened     []openedColumn
	predicates []expr.Expression
	proj       []int // projection: output column i reads local-row[proj[i]]

	n       uint32
	next    uint32
	useIdx  bool
	idxProbe func(prev int32) int32 // returns next candidate > prev, or n if exhausted
	idxPrev  int32
	skipPred int // index of the predicate already satisfied by the index probe, or -1
}

// NewScanSelectIter builds the physical iterator for a ScanSelect
// operator. tbl is consulted for index metadata on top of the scan
// schema's virtual-column layout.
func NewScanSelectIter(op *plan.ScanSelect, fm *runtime.FileManager) (RowIter, error) {
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

	it := &scanSelectIter{opened: opened, predicates: op.Predicates, proj: proj, n: n, skipPred: -1}

	if idx, predIdx, probe, ok := buildIndexProbe(op, opened, fm, n); ok {
		it.useIdx = true
		it.idxProbe = probe
		it.idxPrev = -1
		it.skipPred = predIdx
		_ = idx
	}
	return it, nil
}

// buildIndexProbe finds the first predicate of the shape
// VirtualColumnRef(c) = Literal(v) where column c carries a hash
// index, and returns a closure driving GetNextTuple over it (spec.md
// §4.3 policy 2).
func buildIndexProbe(op *plan.ScanSelect, opened []openedColumn, fm *runtime.FileManager, n uint32) (*runtime.ColumnIndex, int, func(int32) int32, bool) {
	for predIdx, p := range op.Predicates {
		bin, ok := p.(*expr.BinaryArith)
		if !ok || bin.Op != expr.OpEq {
			continue
		}
		vref, lit, flipped := asColumnEqLiteral(bin)
		if vref == nil {
			continue
		}
		if vref.Column < 0 || vref.Column >= len(opened) {
			continue
		}
		col := opened[vref.Column].col
		if !col.HasIndex() {
			continue
		}
		codec := keyCodecFor(col.Type.Kind)
		idx, err := fm.Index(col.IndexPath, codec, n)
		if err != nil {
			continue
		}
		key, ok := encodeKey(col.Type.Kind, lit)
		if !ok {
			continue
		}
		_ = flipped
		probe := func(prev int32) int32 { return idx.GetNextTuple(key, prev) }
		return idx, predIdx, probe, true
	}
	return nil, -1, nil, false
}

func asColumnEqLiteral(bin *expr.BinaryArith) (*expr.VirtualColumnRef, expr.Value, bool) {
	if v, ok := bin.Left.(*expr.VirtualColumnRef); ok {
		if l, ok := bin.Right.(*expr.Literal); ok {
			val, _ := l.Eval(nil)
			return v, val, false
		}
	}
	if v, ok := bin.Right.(*expr.VirtualColumnRef); ok {
		if l, ok := bin.Left.(*expr.Literal); ok {
			val, _ := l.Eval(nil)
			return v, val, true
		}
	}
	return nil, nil, false
}

func keyCodecFor(kind catalog.Kind) runtime.KeyCodec {
	t := catalog.Type{Kind: kind}
	if kind == catalog.TEXT {
		return runtime.KeyCodec{FixedWidth: 0}
	}
	return runtime.KeyCodec{FixedWidth: t.ElementSize()}
}

func encodeKey(kind catalog.Kind, v expr.Value) ([]byte, bool) {
	if v == nil {
		return nil, false
	}
	switch kind {
	case catalog.SMALLINT:
		return runtime.EncodeInt16Key(v.(int16)), true
	case catalog.INT, catalog.ENUM:
		return runtime.EncodeInt32Key(v.(int32)), true
	case catalog.BIGINT, catalog.DATE:
		return runtime.EncodeInt64Key(v.(int64)), true
	case catalog.TEXT:
		return runtime.EncodeTextKey(v.(string)), true
	default:
		return nil, false
	}
}

func (s *scanSelectIter) Next() (expr.Row, error) {
	for {
		var tupleID uint32
		if s.useIdx {
			cand := s.idxProbe(s.idxPrev)
			if uint32(cand) >= s.n {
				return nil, ErrDone
			}
			s.idxPrev = cand
			tupleID = uint32(cand)
		} else {
			if s.next >= s.n {
				return nil, ErrDone
			}
			tupleID = s.next
			s.next++
		}

		local := make(expr.Row, len(s.opened))
		for i, o := range s.opened {
			local[i] = o.read(tupleID)
		}

		ok, err := s.evalPredicates(local)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		out := make(expr.Row, len(s.proj))
		for i, p := range s.proj {
			out[i] = local[p]
		}
		return out, nil
	}
}

func (s *scanSelectIter) evalPredicates(local expr.Row) (bool, error) {
	bindings := expr.Bindings{local}
	for i, p := range s.predicates {
		if i == s.skipPred {
			continue
		}
		v, err := p.Eval(bindings)
		if err != nil {
			return false, err
		}
		if v == nil || !v.(bool) {
			return false, nil
		}
	}
	return true, nil
}

func (s *scanSelectIter) Close() error { return nil }
