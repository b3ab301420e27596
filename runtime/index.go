package runtime

import (
	"encoding/binary"
	"os"
	"sort"

	"github.com/pilosa/pilosa/roaring"
	"github.com/pkg/errors"

	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// indexBucket holds the tuple ids observed for one key value. The ids
// are kept in a pilosa roaring.Bitmap (the engine's standard
// compressed tuple-id-set type, see SPEC_FULL.md §11) and mirrored
// into a sorted slice so GetNextTuple can binary-search for a
// successor in O(log n), per spec.md §4.1's monotonicity requirement.
type indexBucket struct {
	bitmap *roaring.Bitmap
	sorted []int32
}

func newIndexBucket() *indexBucket {
	return &indexBucket{bitmap: roaring.NewBitmap()}
}

func (b *indexBucket) add(tupleID int32) {
	b.bitmap.Add(uint64(tupleID))
}

func (b *indexBucket) freeze() {
	ids := b.bitmap.Slice()
	b.sorted = make([]int32, len(ids))
	for i, v := range ids {
		b.sorted[i] = int32(v)
	}
}

// next returns the smallest tuple id strictly greater than prev, or
// sentinel if none exists.
func (b *indexBucket) next(prev int32, sentinel int32) int32 {
	i := sort.Search(len(b.sorted), func(i int) bool { return b.sorted[i] > prev })
	if i == len(b.sorted) {
		return sentinel
	}
	return b.sorted[i]
}

// ColumnIndex is an opened hash-index file: bucket_count followed by
// bucket_count {key, tuple_count, tuple_ids} records, per spec.md §6.
// Keys are stored as raw byte strings so the same structure serves
// any fixed-width or TEXT key type without generics duplicating the
// bucket logic.
type ColumnIndex struct {
	buckets   map[string]*indexBucket
	cardinality int32 // sentinel value for GetNextTuple
}

// KeyCodec tells OpenIndex how keys are laid out on disk; callers pass
// the key's element width rather than a catalog.Kind.
type KeyCodec struct {
	// FixedWidth is the key's encoded width in bytes, or 0 for a
	// variable-width (TEXT) key.
	FixedWidth int
}

// OpenIndex reads the hash-index file at path. cardinality is the
// owning column's Size(), used as the GetNextTuple sentinel.
func OpenIndex(path string, codec KeyCodec, cardinality uint32) (*ColumnIndex, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kerrors.ResourceMissing.New(path)
		}
		return nil, errors.Wrapf(err, "opening index file %s", path)
	}
	idx := &ColumnIndex{buckets: make(map[string]*indexBucket), cardinality: int32(cardinality)}
	pos := 0
	readU32 := func() (uint32, error) {
		if pos+4 > len(buf) {
			return 0, kerrors.Corrupt.New(path)
		}
		v := binary.LittleEndian.Uint32(buf[pos : pos+4])
		pos += 4
		return v, nil
	}
	bucketCount, err := readU32()
	if err != nil {
		return nil, err
	}
	for b := uint32(0); b < bucketCount; b++ {
		var key []byte
		if codec.FixedWidth > 0 {
			if pos+codec.FixedWidth > len(buf) {
				return nil, kerrors.Corrupt.New(path)
			}
			key = buf[pos : pos+codec.FixedWidth]
			pos += codec.FixedWidth
		} else {
			keyLen, err := readU32()
			if err != nil {
				return nil, err
			}
			if pos+int(keyLen) > len(buf) {
				return nil, kerrors.Corrupt.New(path)
			}
			key = buf[pos : pos+int(keyLen)]
			pos += int(keyLen)
		}
		tupleCount, err := readU32()
		if err != nil {
			return nil, err
		}
		bucket := newIndexBucket()
		for t := uint32(0); t < tupleCount; t++ {
			if pos+4 > len(buf) {
				return nil, kerrors.Corrupt.New(path)
			}
			bucket.add(int32(binary.LittleEndian.Uint32(buf[pos : pos+4])))
			pos += 4
		}
		bucket.freeze()
		idx.buckets[string(key)] = bucket
	}
	return idx, nil
}

func (i *ColumnIndex) Close() error {
	i.buckets = nil
	return nil
}

// GetNextTuple returns the smallest tuple id greater than prev within
// key's bucket, or the column's cardinality if none exists (including
// when key has no bucket at all).
func (i *ColumnIndex) GetNextTuple(key []byte, prev int32) int32 {
	b, ok := i.buckets[string(key)]
	if !ok {
		return i.cardinality
	}
	return b.next(prev, i.cardinality)
}

// Contains reports whether key has any matching tuple at all.
func (i *ColumnIndex) Contains(key []byte) bool {
	_, ok := i.buckets[string(key)]
	return ok
}

// encoding helpers shared by callers building index-probe keys.

func EncodeInt16Key(v int16) []byte {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, uint16(v))
	return buf
}

func EncodeInt32Key(v int32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(v))
	return buf
}

func EncodeInt64Key(v int64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(v))
	return buf
}

func EncodeTextKey(v string) []byte { return []byte(v) }
