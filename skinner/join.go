package skinner

import (
	"github.com/opentracing/opentracing-go"

	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/internal/config"
	"github.com/kushdb/kushdb-go/internal/klog"
	"github.com/kushdb/kushdb-go/plan"
	"github.com/kushdb/kushdb-go/rowexec"
)

var joinLog = klog.For("skinner")

// BuildChild builds a RowIter for an arbitrary child operator. The
// top-level dispatcher supplies this so skinner can materialize each
// of SkinnerJoin's relations without importing the dispatcher itself
// (which in turn imports skinner).
type BuildChild func(plan.Operator) (rowexec.RowIter, error)

// relation is one SkinnerJoin child, fully materialized: the adaptive
// executor needs random access into every relation to run a nested
// loop under an arbitrary order, so each is drained up front, per
// original_source/plan/skinner_join_operator.cc's per-relation buffer.
type relation struct {
	rows []expr.Row
}

// joinIter drives episodes of a left-deep nested loop under a
// bandit-selected permutation until the progress map reports every
// order exhausted (spec.md §4.6: "adaptive join completeness
// regardless of budget_per_episode").
type joinIter struct {
	relations []relation
	k         int
	allPreds  []expr.Expression

	budget int
	bandit *bandit
	prog   *progress
	dedup  *dedupSet
	perms  [][]int

	pending []expr.Row
	done    bool
}

// NewJoinIter builds the adaptive executor for op. cfg.Skinner
// selects between "recompile" and "permute" modes in name only here:
// both execute the identical odometer/bandit loop, since this
// tree-walking interpreter has no native code to recompile — the
// distinction only matters to the external translator (spec.md §1).
func NewJoinIter(op *plan.SkinnerJoin, cfg config.EngineConfig, build BuildChild) (rowexec.RowIter, error) {
	relations := make([]relation, len(op.Relations))
	for i, childOp := range op.Relations {
		it, err := build(childOp)
		if err != nil {
			return nil, err
		}
		rows := make([]expr.Row, 0)
		for {
			row, err := it.Next()
			if err == rowexec.ErrDone {
				break
			}
			if err != nil {
				it.Close()
				return nil, err
			}
			rows = append(rows, row)
		}
		it.Close()
		relations[i] = relation{rows: rows}
	}

	for _, r := range relations {
		if len(r.rows) == 0 {
			// An empty relation makes the whole conjunctive join empty;
			// short-circuit rather than let the odometer index into it.
			return &joinIter{done: true}, nil
		}
	}

	budget := cfg.BudgetPerEpisode
	if budget <= 0 {
		budget = 10_000
	}
	perms := permutations(len(relations))
	joinLog.WithField("relations", len(relations)).WithField("orders", len(perms)).Debug("starting adaptive join")

	return &joinIter{
		relations: relations,
		k:         len(relations),
		allPreds:  op.Predicates,
		budget:    budget,
		bandit:    newBandit(perms),
		prog:      newProgress(),
		dedup:     newDedupSet(),
		perms:     perms,
	}, nil
}

func (j *joinIter) Next() (expr.Row, error) {
	for len(j.pending) == 0 {
		if j.done {
			return nil, rowexec.ErrDone
		}
		if j.isExhausted() {
			j.done = true
			return nil, rowexec.ErrDone
		}
		if err := j.runEpisode(); err != nil {
			return nil, err
		}
	}
	row := j.pending[0]
	j.pending = j.pending[1:]
	return row, nil
}

func (j *joinIter) Close() error { return nil }

func (j *joinIter) isExhausted() bool {
	return j.prog.exhausted(func(depth, relIdx int) int { return len(j.relations[relIdx].rows) }, j.perms)
}

// readyPredicates partitions allPreds by the permutation position at
// which every relation they reference is bound, so runEpisode can
// check each predicate exactly once, as early as possible (spec.md
// §4.6's join-order pruning).
func (j *joinIter) readyPredicates(perm []int) [][]expr.Expression {
	posOf := make([]int, j.k)
	for pos, rel := range perm {
		posOf[rel] = pos
	}
	ready := make([][]expr.Expression, j.k)
	for _, p := range j.allPreds {
		maxPos := 0
		for rel := range collectRelations(p) {
			if posOf[rel] > maxPos {
				maxPos = posOf[rel]
			}
		}
		ready[maxPos] = append(ready[maxPos], p)
	}
	return ready
}

// collectRelations walks e's tree collecting every relation index a
// ColumnRef names.
func collectRelations(e expr.Expression) map[int]bool {
	out := make(map[int]bool)
	var walk func(expr.Expression)
	walk = func(e expr.Expression) {
		if cr, ok := e.(*expr.ColumnRef); ok {
			out[cr.Child] = true
		}
		for _, c := range e.Children() {
			walk(c)
		}
	}
	walk(e)
	return out
}

// runEpisode advances the bandit-selected permutation's odometer by up
// to j.budget candidate combinations, buffering every fresh (not
// previously emitted), fully-matching combination into j.pending, then
// reports the episode's cost back to the bandit.
func (j *joinIter) runEpisode() error {
	perm := j.bandit.selectArm()
	span := opentracing.StartSpan("skinner.episode")
	defer span.Finish()
	span.SetTag("perm", permKey(perm))

	ready := j.readyPredicates(perm)
	cursor := j.prog.cursorFor(perm, j.k)
	sizes := make([]int, j.k)
	for pos, rel := range perm {
		sizes[pos] = len(j.relations[rel].rows)
	}

	var examined, emitted int64

	for examined < int64(j.budget) {
		if cursor[0] >= sizes[0] {
			break // this permutation's odometer has fully cycled
		}

		bindings := make(expr.Bindings, j.k)
		for d := 0; d < j.k; d++ {
			bindings[perm[d]] = j.relations[perm[d]].rows[cursor[d]]
		}
		examined++

		matched, matchDepth := j.checkPrefix(ready, bindings, perm)
		if !matched {
			j.advance(cursor, sizes, matchDepth)
			continue
		}

		combo := make([]int, j.k)
		for pos, rel := range perm {
			combo[rel] = cursor[pos]
		}
		dup, err := j.dedup.observe(combo)
		if err != nil {
			return err
		}
		if !dup {
			out := make(expr.Row, 0)
			for rel := 0; rel < j.k; rel++ {
				out = append(out, j.relations[rel].rows[combo[rel]]...)
			}
			j.pending = append(j.pending, out)
			emitted++
		}
		j.advance(cursor, sizes, j.k-1)
	}

	j.bandit.record(perm, examined, emitted)
	return nil
}

// checkPrefix evaluates, at every depth from 0 to k-1, the predicates
// that became ready at that depth. It returns (true, k-1) if the full
// combination satisfies every predicate, or (false, d) for the
// shallowest depth whose ready predicates failed — the caller carries
// the odometer from there, skipping the unevaluated deeper predicates
// entirely (spec.md §4.6 join-order pruning: a failing prefix never
// pays for extending into deeper relations).
func (j *joinIter) checkPrefix(ready [][]expr.Expression, bindings expr.Bindings, perm []int) (bool, int) {
	for d := 0; d < j.k; d++ {
		for _, p := range ready[d] {
			v, err := p.Eval(bindings)
			if err != nil || v == nil || !v.(bool) {
				return false, d
			}
		}
	}
	return true, j.k - 1
}

// advance carries the odometer starting at the deepest position that
// still needs to move forward after a combination at failDepth was
// rejected (or fully matched, in which case failDepth is k-1):
// positions deeper than failDepth never had a binding and stay at
// their current value; failDepth's own cursor increments, carrying
// into shallower positions on overflow.
func (j *joinIter) advance(cursor, sizes []int, failDepth int) {
	d := failDepth
	for d >= 0 {
		cursor[d]++
		if cursor[d] < sizes[d] {
			for dd := d + 1; dd < len(cursor); dd++ {
				cursor[dd] = 0
			}
			return
		}
		if d == 0 {
			return // outermost overflowed: this permutation is exhausted
		}
		d--
	}
}
