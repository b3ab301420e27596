// Package runtime implements the column-data and hash-index contract
// of spec.md §4.1/§6: opening a column file, exposing O(1) typed
// access, and probing a hash index. It is the one place the engine
// touches raw bytes.
package runtime

import (
	"encoding/binary"
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// textHeader is one entry of a TEXT column's header, per spec.md §6.
type textHeader struct {
	length uint32
	offset uint32
}

// ColumnData is an opened column file. For fixed-width kinds it is a
// flat little-endian array; for TEXT it additionally carries the
// length+offset header described in spec.md §6.
//
// Open reads the whole file into memory up front (spec.md §4.1 allows
// mmap but requires behavior indistinguishable from a full read); a
// real deployment may prefer to mmap buf's backing store, but nothing
// above this package observes the difference.
type ColumnData struct {
	kind catalog.Kind
	buf  []byte

	// TEXT only.
	textHeaders []textHeader
}

// Open reads the column file at path for a column of the given kind.
// Fixed-width element counts are derived from file length; TEXT
// cardinality comes from the file's own header.
func Open(path string, kind catalog.Kind) (*ColumnData, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kerrors.ResourceMissing.New(path)
		}
		return nil, errors.Wrapf(err, "opening column file %s", path)
	}
	cd := &ColumnData{kind: kind, buf: buf}
	if kind == catalog.TEXT {
		if err := cd.parseTextHeader(path); err != nil {
			return nil, err
		}
		return cd, nil
	}
	elemSize := catalog.Type{Kind: kind}.ElementSize()
	if len(buf)%elemSize != 0 {
		return nil, kerrors.Corrupt.New(path)
	}
	return cd, nil
}

func (c *ColumnData) parseTextHeader(path string) error {
	if len(c.buf) < 4 {
		return kerrors.Corrupt.New(path)
	}
	cardinality := binary.LittleEndian.Uint32(c.buf[0:4])
	headerEnd := 4 + int(cardinality)*8
	if headerEnd > len(c.buf) {
		return kerrors.Corrupt.New(path)
	}
	headers := make([]textHeader, cardinality)
	for i := uint32(0); i < cardinality; i++ {
		base := 4 + int(i)*8
		headers[i] = textHeader{
			length: binary.LittleEndian.Uint32(c.buf[base : base+4]),
			offset: binary.LittleEndian.Uint32(c.buf[base+4 : base+8]),
		}
	}
	for _, h := range headers {
		if int(h.offset)+int(h.length)+1 > len(c.buf) {
			return kerrors.Corrupt.New(path)
		}
	}
	c.textHeaders = headers
	return nil
}

// Close releases the column's buffer. ColumnData holds no OS handle
// (Open already read the file fully), so Close only drops the
// reference for the garbage collector.
func (c *ColumnData) Close() error {
	c.buf = nil
	c.textHeaders = nil
	return nil
}

// Size returns the number of logical elements: bytes/element-size for
// fixed-width kinds, header cardinality for TEXT.
func (c *ColumnData) Size() uint32 {
	if c.kind == catalog.TEXT {
		return uint32(len(c.textHeaders))
	}
	elemSize := catalog.Type{Kind: c.kind}.ElementSize()
	return uint32(len(c.buf) / elemSize)
}

func (c *ColumnData) GetSmallInt(i uint32) int16 {
	off := int(i) * 2
	return int16(binary.LittleEndian.Uint16(c.buf[off : off+2]))
}

func (c *ColumnData) GetInt(i uint32) int32 {
	off := int(i) * 4
	return int32(binary.LittleEndian.Uint32(c.buf[off : off+4]))
}

func (c *ColumnData) GetBigInt(i uint32) int64 {
	off := int(i) * 8
	return int64(binary.LittleEndian.Uint64(c.buf[off : off+8]))
}

// GetDate returns the column's raw i64 Unix-ms value at i.
func (c *ColumnData) GetDate(i uint32) int64 { return c.GetBigInt(i) }

func (c *ColumnData) GetReal(i uint32) float64 {
	off := int(i) * 8
	bits := binary.LittleEndian.Uint64(c.buf[off : off+8])
	return math.Float64frombits(bits)
}

func (c *ColumnData) GetBool(i uint32) bool {
	return c.buf[i] != 0
}

// GetEnum returns the dictionary id stored at i.
func (c *ColumnData) GetEnum(i uint32) int32 { return c.GetInt(i) }

// GetText returns the string stored at i. The conversion to a Go
// string copies the bytes, so the result does not alias c's buffer
// and stays valid after Close.
func (c *ColumnData) GetText(i uint32) string {
	h := c.textHeaders[i]
	start := h.offset
	return string(c.buf[start : start+h.length])
}
