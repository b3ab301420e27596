package runtime

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

func TestColumnDataFixedWidth(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "l_quantity.col")

	b := NewFixedColumnBuilder()
	b.AppendFloat64(10)
	b.AppendFloat64(20)
	b.AppendFloat64(30)
	require.NoError(t, b.Write(path))

	cd, err := Open(path, catalog.REAL)
	require.NoError(t, err)
	defer cd.Close()

	require.Equal(t, uint32(3), cd.Size())
	require.Equal(t, 10.0, cd.GetReal(0))
	require.Equal(t, 20.0, cd.GetReal(1))
	require.Equal(t, 30.0, cd.GetReal(2))
}

func TestColumnDataText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "name.col")

	b := NewTextColumnBuilder()
	b.AppendText("alice")
	b.AppendText("bob")
	require.NoError(t, b.Write(path))

	cd, err := Open(path, catalog.TEXT)
	require.NoError(t, err)
	defer cd.Close()

	require.Equal(t, uint32(2), cd.Size())
	require.Equal(t, "alice", cd.GetText(0))
	require.Equal(t, "bob", cd.GetText(1))
}

func TestColumnDataMissingIsResourceMissing(t *testing.T) {
	_, err := Open("/nonexistent/path.col", catalog.INT)
	require.Error(t, err)
	require.True(t, kerrors.ResourceMissing.Is(err))
}

func TestColumnDataCorruptFixedWidth(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.col")
	b := NewFixedColumnBuilder()
	b.AppendInt16(1)
	require.NoError(t, b.Write(path))

	// INT elements are 4 bytes; a 2-byte file is an inconsistent
	// length for that kind.
	_, err := Open(path, catalog.INT)
	require.Error(t, err)
}
