package skinner

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/internal/config"
	"github.com/kushdb/kushdb-go/plan"
	"github.com/kushdb/kushdb-go/rowexec"
	"github.com/kushdb/kushdb-go/runtime"
)

func writeBigInt(t *testing.T, dir, name string, vals []int64) string {
	t.Helper()
	b := runtime.NewFixedColumnBuilder()
	for _, v := range vals {
		b.AppendInt64(v)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, b.Write(path))
	return path
}

// TestJoinCompletenessAcrossBudgets mirrors spec.md §8's four-way
// join scenario: three copies of a one-row relation joined against a
// fourth sharing the same id, expecting exactly one output row
// regardless of budget_per_episode.
func TestJoinCompletenessAcrossBudgets(t *testing.T) {
	dir := t.TempDir()
	idPath := writeBigInt(t, dir, "id.col", []int64{7})

	newRelation := func(name string) plan.Operator {
		tbl := catalog.NewTable(name)
		tbl.AddColumn(catalog.Column{Name: "id", Type: catalog.New(catalog.BIGINT), DataPath: idPath})
		scan, err := plan.NewScan(tbl)
		require.NoError(t, err)
		return scan
	}

	build := func(op plan.Operator) (rowexec.RowIter, error) {
		return rowexec.NewScanIter(op.(*plan.Scan), runtime.NewFileManager())
	}

	relations := []plan.Operator{newRelation("r0"), newRelation("r1"), newRelation("r2"), newRelation("r3")}

	var predicates []expr.Expression
	for i := 1; i < len(relations); i++ {
		left := expr.NewColumnRef(0, 0, catalog.New(catalog.BIGINT), "id")
		right := expr.NewColumnRef(i, 0, catalog.New(catalog.BIGINT), "id")
		pred, err := expr.NewBinaryArith(expr.OpEq, left, right)
		require.NoError(t, err)
		predicates = append(predicates, pred)
	}

	op, err := plan.NewSkinnerJoin(relations, predicates)
	require.NoError(t, err)

	for _, budget := range []int{1, 10_000} {
		cfg := config.Default()
		cfg.BudgetPerEpisode = budget
		it, err := NewJoinIter(op, cfg, build)
		require.NoError(t, err)

		var rows [][]expr.Value
		for {
			row, err := it.Next()
			if err == rowexec.ErrDone {
				break
			}
			require.NoError(t, err)
			rows = append(rows, row)
		}
		require.Len(t, rows, 1, "budget=%d", budget)
		require.Equal(t, expr.Row{int64(7), int64(7), int64(7), int64(7)}, rows[0])
	}
}
