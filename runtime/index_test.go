package runtime

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexMonotonicGetNextTuple(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "idx_id.idx")

	b := NewIndexBuilder(4)
	b.Observe(EncodeInt32Key(7), 5)
	b.Observe(EncodeInt32Key(7), 1)
	b.Observe(EncodeInt32Key(7), 9)
	b.Observe(EncodeInt32Key(3), 0)
	require.NoError(t, b.Write(path))

	idx, err := OpenIndex(path, KeyCodec{FixedWidth: 4}, 10)
	require.NoError(t, err)
	defer idx.Close()

	key7 := EncodeInt32Key(7)
	require.Equal(t, int32(1), idx.GetNextTuple(key7, -1))
	require.Equal(t, int32(5), idx.GetNextTuple(key7, 1))
	require.Equal(t, int32(9), idx.GetNextTuple(key7, 5))
	require.Equal(t, int32(10), idx.GetNextTuple(key7, 9)) // sentinel = cardinality

	missing := EncodeInt32Key(999)
	require.Equal(t, int32(10), idx.GetNextTuple(missing, -1))
}

func TestIndexMonotonicityIsStrict(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "idx.idx")
	b := NewIndexBuilder(4)
	for i := int32(0); i < 100; i++ {
		b.Observe(EncodeInt32Key(i % 3), i)
	}
	require.NoError(t, b.Write(path))

	idx, err := OpenIndex(path, KeyCodec{FixedWidth: 4}, 100)
	require.NoError(t, err)

	key := EncodeInt32Key(1)
	prev := int32(-1)
	for i := 0; i < 50; i++ {
		next := idx.GetNextTuple(key, prev)
		if next == 100 {
			break
		}
		require.Greater(t, next, prev)
		prev = next
	}
}
