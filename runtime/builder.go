package runtime

import (
	"encoding/binary"
	"math"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// ColumnBuilder serializes a column file from a loader program, one
// value at a time, mirroring original_source/util/builder.h. It is
// the write side of the contract ColumnData.Open reads; the core
// itself never loads TPC-H/JCC-H data (that loader is out of scope
// per spec.md §1), but tests and the bundled demo table both need a
// way to materialize fixture files without a C++ toolchain.
type ColumnBuilder struct {
	fixed []byte
	texts []string // non-nil only for a TEXT builder
}

func NewFixedColumnBuilder() *ColumnBuilder { return &ColumnBuilder{} }
func NewTextColumnBuilder() *ColumnBuilder  { return &ColumnBuilder{texts: []string{}} }

func (b *ColumnBuilder) AppendInt16(v int16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(v))
	b.fixed = append(b.fixed, buf[:]...)
}

func (b *ColumnBuilder) AppendInt32(v int32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	b.fixed = append(b.fixed, buf[:]...)
}

func (b *ColumnBuilder) AppendInt64(v int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	b.fixed = append(b.fixed, buf[:]...)
}

func (b *ColumnBuilder) AppendFloat64(v float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	b.fixed = append(b.fixed, buf[:]...)
}

func (b *ColumnBuilder) AppendBool(v bool) {
	if v {
		b.fixed = append(b.fixed, 1)
	} else {
		b.fixed = append(b.fixed, 0)
	}
}

func (b *ColumnBuilder) AppendText(v string) {
	b.texts = append(b.texts, v)
}

// Write serializes the builder's contents to path, using the layouts
// of spec.md §6.
func (b *ColumnBuilder) Write(path string) error {
	var out []byte
	if b.texts != nil {
		cardinality := uint32(len(b.texts))
		header := make([]byte, 4+8*int(cardinality))
		binary.LittleEndian.PutUint32(header[0:4], cardinality)
		var blob []byte
		offset := uint32(4 + 8*int(cardinality))
		for i, s := range b.texts {
			base := 4 + i*8
			binary.LittleEndian.PutUint32(header[base:base+4], uint32(len(s)))
			binary.LittleEndian.PutUint32(header[base+4:base+8], offset)
			blob = append(blob, s...)
			blob = append(blob, 0)
			offset += uint32(len(s)) + 1
		}
		out = append(header, blob...)
	} else {
		out = b.fixed
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.Wrapf(err, "writing column file %s", path)
	}
	return nil
}

// NullBitmapBuilder serializes a null-bitmap file.
type NullBitmapBuilder struct {
	bytes []byte
}

func NewNullBitmapBuilder() *NullBitmapBuilder { return &NullBitmapBuilder{} }

func (b *NullBitmapBuilder) Append(isNull bool) {
	if isNull {
		b.bytes = append(b.bytes, 1)
	} else {
		b.bytes = append(b.bytes, 0)
	}
}

func (b *NullBitmapBuilder) Write(path string) error {
	if err := os.WriteFile(path, b.bytes, 0o644); err != nil {
		return errors.Wrapf(err, "writing null bitmap %s", path)
	}
	return nil
}

// IndexBuilder accumulates (key, tupleID) observations and serializes
// them as a hash-index file per spec.md §6, with each bucket's
// tuple-id list written in strictly increasing order.
type IndexBuilder struct {
	fixedWidth int // 0 for TEXT keys
	buckets    map[string][]int32
	order      []string
}

func NewIndexBuilder(fixedWidth int) *IndexBuilder {
	return &IndexBuilder{fixedWidth: fixedWidth, buckets: make(map[string][]int32)}
}

func (b *IndexBuilder) Observe(key []byte, tupleID int32) {
	k := string(key)
	if _, ok := b.buckets[k]; !ok {
		b.order = append(b.order, k)
	}
	b.buckets[k] = append(b.buckets[k], tupleID)
}

func (b *IndexBuilder) Write(path string) error {
	var out []byte
	var head [4]byte
	binary.LittleEndian.PutUint32(head[:], uint32(len(b.order)))
	out = append(out, head[:]...)
	for _, k := range b.order {
		ids := append([]int32(nil), b.buckets[k]...)
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		if b.fixedWidth > 0 {
			out = append(out, []byte(k)...)
		} else {
			var klen [4]byte
			binary.LittleEndian.PutUint32(klen[:], uint32(len(k)))
			out = append(out, klen[:]...)
			out = append(out, []byte(k)...)
		}
		var cnt [4]byte
		binary.LittleEndian.PutUint32(cnt[:], uint32(len(ids)))
		out = append(out, cnt[:]...)
		for _, id := range ids {
			var idb [4]byte
			binary.LittleEndian.PutUint32(idb[:], uint32(id))
			out = append(out, idb[:]...)
		}
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.Wrapf(err, "writing index file %s", path)
	}
	return nil
}
