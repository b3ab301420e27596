package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/expr"
)

func lineitemTable() *catalog.Table {
	t := catalog.NewTable("lineitem")
	t.AddColumn(catalog.Column{Name: "l_quantity", Type: catalog.New(catalog.REAL)})
	t.AddColumn(catalog.Column{Name: "l_extendedprice", Type: catalog.New(catalog.REAL)})
	t.AddColumn(catalog.Column{Name: "l_discount", Type: catalog.New(catalog.REAL)})
	return t
}

func TestScanSchemaStability(t *testing.T) {
	tbl := lineitemTable()
	s1, err := NewScan(tbl)
	require.NoError(t, err)
	s2, err := NewScan(tbl)
	require.NoError(t, err)

	require.Equal(t, s1.Schema().Len(), s2.Schema().Len())
	for i, col := range s1.Schema().Columns() {
		assert.Equal(t, col.Name, s2.Schema().Columns()[i].Name)
		assert.Equal(t, col.Type(), s2.Schema().Columns()[i].Type())
	}
}

func TestSchemaDuplicateNameRejected(t *testing.T) {
	s := NewSchema()
	require.NoError(t, s.AddDerivedColumn("x", nil))
	err := s.AddDerivedColumn("x", nil)
	assert.Error(t, err)
}

func TestSchemaResolve(t *testing.T) {
	tbl := lineitemTable()
	scan, err := NewScan(tbl)
	require.NoError(t, err)

	idx, typ, ok := scan.Schema().Resolve("l_discount")
	require.True(t, ok)
	assert.Equal(t, 2, idx)
	assert.Equal(t, catalog.REAL, typ.Kind)

	_, _, ok = scan.Schema().Resolve("nope")
	assert.False(t, ok)
}

func TestPassthroughColumnsDisambiguateSharedNames(t *testing.T) {
	left := NewSchema()
	require.NoError(t, left.AddDerivedColumn("k", expr.NewVirtualColumnRef(0, catalog.New(catalog.BIGINT), "k")))
	right := NewSchema()
	require.NoError(t, right.AddDerivedColumn("k", expr.NewVirtualColumnRef(0, catalog.New(catalog.BIGINT), "k")))
	require.NoError(t, right.AddDerivedColumn("v", expr.NewVirtualColumnRef(1, catalog.New(catalog.TEXT), "v")))

	s := NewSchema()
	require.NoError(t, s.AddPassthroughColumns(0, left))
	require.NoError(t, s.AddPassthroughColumns(1, right))

	require.Equal(t, 3, s.Len())
	for _, col := range s.Columns() {
		if col.Name != "k" && col.Name != "v" {
			t.Fatalf("unexpected disambiguated display name %q", col.Name)
		}
	}
}

func TestPassthroughColumnsPreserveNamesAndTypes(t *testing.T) {
	tbl := lineitemTable()
	scan, err := NewScan(tbl)
	require.NoError(t, err)

	sel, err := NewSelect(scan, nil)
	require.NoError(t, err)

	require.Equal(t, scan.Schema().Len(), sel.Schema().Len())
	for i, col := range scan.Schema().Columns() {
		assert.Equal(t, col.Name, sel.Schema().Columns()[i].Name)
		assert.Equal(t, col.Type(), sel.Schema().Columns()[i].Type())
	}
}
