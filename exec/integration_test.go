package exec

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

// writeRealColumn and the helpers below wrap runtime's builders: tests
// exercise the same file format runtime.ColumnData.Open reads,
// without needing a C++ loader.
func writeRealColumn(t *testing.T, dir, name string, vals []float64) string {
	t.Helper()
	b := runtime.NewFixedColumnBuilder()
	for _, v := range vals {
		b.AppendFloat64(v)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, b.Write(path))
	return path
}

func writeTextColumn(t *testing.T, dir, name string, vals []string) string {
	t.Helper()
	b := runtime.NewTextColumnBuilder()
	for _, v := range vals {
		b.AppendText(v)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, b.Write(path))
	return path
}

func writeBigIntColumn(t *testing.T, dir, name string, vals []int64) string {
	t.Helper()
	b := runtime.NewFixedColumnBuilder()
	for _, v := range vals {
		b.AppendInt64(v)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, b.Write(path))
	return path
}

func writeNulls(t *testing.T, dir, name string, isNull []bool) string {
	t.Helper()
	b := runtime.NewNullBitmapBuilder()
	for _, n := range isNull {
		b.Append(n)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, b.Write(path))
	return path
}

func runToLines(t *testing.T, root plan.Operator, cfg config.EngineConfig, fm *runtime.FileManager) []string {
	t.Helper()
	b, err := NewBuilder(fm, cfg)
	require.NoError(t, err)
	it, err := b.Build(root)
	require.NoError(t, err)
	defer it.Close()

	outTypes := make([]catalog.Type, root.Schema().Len())
	for i, c := range root.Schema().Columns() {
		outTypes[i] = c.Type()
	}
	var lines []string
	for {
		row, err := it.Next()
		if err == rowexec.ErrDone {
			break
		}
		require.NoError(t, err)
		lines = append(lines, rowexec.FormatRow(outTypes, row))
	}
	return lines
}

// TestGroupByOrderByEndToEnd exercises Scan -> GroupByAggregate ->
// OrderBy -> Output: three "A" rows of 10 and two "B" rows of 20,
// summed and counted per region, emitted region-ascending.
func TestGroupByOrderByEndToEnd(t *testing.T) {
	dir := t.TempDir()
	regionPath := writeTextColumn(t, dir, "region.col", []string{"A", "A", "A", "B", "B"})
	amountPath := writeRealColumn(t, dir, "amount.col", []float64{10, 10, 10, 20, 20})

	tbl := catalog.NewTable("orders")
	tbl.AddColumn(catalog.Column{Name: "region", Type: catalog.New(catalog.TEXT), DataPath: regionPath})
	tbl.AddColumn(catalog.Column{Name: "amount", Type: catalog.New(catalog.REAL), DataPath: amountPath})

	scan, err := plan.NewScan(tbl)
	require.NoError(t, err)

	regionRef := expr.NewColumnRef(0, 0, catalog.New(catalog.TEXT), "region")
	amountRef := expr.NewColumnRef(0, 1, catalog.New(catalog.REAL), "amount")

	sumAgg, err := expr.NewAggregate(expr.AggSum, amountRef)
	require.NoError(t, err)
	countAgg, err := expr.NewAggregate(expr.AggCount, regionRef)
	require.NoError(t, err)

	gb, err := plan.NewGroupByAggregate(scan, []string{"region"}, []expr.Expression{regionRef},
		[]plan.NamedAgg{{Name: "total", Agg: sumAgg}, {Name: "cnt", Agg: countAgg}})
	require.NoError(t, err)

	sortKey := expr.NewColumnRef(0, 0, catalog.New(catalog.TEXT), "region")
	ob, err := plan.NewOrderBy(gb, []expr.Expression{sortKey}, []bool{true})
	require.NoError(t, err)

	out := plan.NewOutput(ob)

	fm := runtime.NewFileManager()
	lines := runToLines(t, out, config.Default(), fm)

	require.Equal(t, []string{"A|30.000|3", "B|40.000|2"}, lines)
}

// TestScalarAggregateNullSkipping mirrors spec.md §8's null-skipping
// scenario end to end: values nil, 1.0, nil, 3.0 collapse to
// SUM=4.0, AVG=2.0, MIN=1.0, MAX=3.0, COUNT=2.
func TestScalarAggregateNullSkipping(t *testing.T) {
	dir := t.TempDir()
	valPath := writeRealColumn(t, dir, "val.col", []float64{0, 1, 0, 3})
	nullPath := writeNulls(t, dir, "val.null", []bool{true, false, true, false})

	tbl := catalog.NewTable("measurements")
	tbl.AddColumn(catalog.Column{Name: "val", Type: catalog.NewNullable(catalog.REAL), DataPath: valPath, NullPath: nullPath})

	scan, err := plan.NewScan(tbl)
	require.NoError(t, err)

	valRef := expr.NewColumnRef(0, 0, catalog.NewNullable(catalog.REAL), "val")
	sumAgg, err := expr.NewAggregate(expr.AggSum, valRef)
	require.NoError(t, err)
	avgAgg, err := expr.NewAggregate(expr.AggAvg, valRef)
	require.NoError(t, err)
	minAgg, err := expr.NewAggregate(expr.AggMin, valRef)
	require.NoError(t, err)
	maxAgg, err := expr.NewAggregate(expr.AggMax, valRef)
	require.NoError(t, err)
	countAgg, err := expr.NewAggregate(expr.AggCount, valRef)
	require.NoError(t, err)

	agg, err := plan.NewAggregateOp(scan, []plan.NamedAgg{
		{Name: "s", Agg: sumAgg},
		{Name: "a", Agg: avgAgg},
		{Name: "mn", Agg: minAgg},
		{Name: "mx", Agg: maxAgg},
		{Name: "c", Agg: countAgg},
	})
	require.NoError(t, err)
	out := plan.NewOutput(agg)

	fm := runtime.NewFileManager()
	lines := runToLines(t, out, config.Default(), fm)

	require.Equal(t, []string{"4.000|2.000|1.000|3.000|2"}, lines)
}

// TestHashJoinEndToEnd joins a 3-row left relation against a 2-row
// right relation on a shared BIGINT key, keeping only matching pairs.
func TestHashJoinEndToEnd(t *testing.T) {
	dir := t.TempDir()
	leftKeyPath := writeBigIntColumn(t, dir, "left.key.col", []int64{1, 2, 3})
	rightKeyPath := writeBigIntColumn(t, dir, "right.key.col", []int64{2, 3})
	rightValPath := writeTextColumn(t, dir, "right.val.col", []string{"two", "three"})

	leftTbl := catalog.NewTable("left")
	leftTbl.AddColumn(catalog.Column{Name: "k", Type: catalog.New(catalog.BIGINT), DataPath: leftKeyPath})
	rightTbl := catalog.NewTable("right")
	rightTbl.AddColumn(catalog.Column{Name: "k", Type: catalog.New(catalog.BIGINT), DataPath: rightKeyPath})
	rightTbl.AddColumn(catalog.Column{Name: "v", Type: catalog.New(catalog.TEXT), DataPath: rightValPath})

	leftScan, err := plan.NewScan(leftTbl)
	require.NoError(t, err)
	rightScan, err := plan.NewScan(rightTbl)
	require.NoError(t, err)

	leftKey := expr.NewColumnRef(0, 0, catalog.New(catalog.BIGINT), "k")
	rightKey := expr.NewColumnRef(0, 0, catalog.New(catalog.BIGINT), "k")

	hj, err := plan.NewHashJoin(leftScan, rightScan, []expr.Expression{leftKey}, []expr.Expression{rightKey})
	require.NoError(t, err)
	out := plan.NewOutput(hj)

	fm := runtime.NewFileManager()
	lines := runToLines(t, out, config.Default(), fm)

	require.ElementsMatch(t, []string{"2|2|two", "3|3|three"}, lines)
}
