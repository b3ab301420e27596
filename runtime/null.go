package runtime

import (
	"os"

	"github.com/pkg/errors"

	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// NullBitmap is an opened null-bitmap file: one byte per row, 0 =
// not null, 1 = null.
type NullBitmap struct {
	buf []byte
}

// OpenNullBitmap reads the null-bitmap file at path.
func OpenNullBitmap(path string) (*NullBitmap, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kerrors.ResourceMissing.New(path)
		}
		return nil, errors.Wrapf(err, "opening null bitmap %s", path)
	}
	return &NullBitmap{buf: buf}, nil
}

// IsNull reports whether row i is null.
func (n *NullBitmap) IsNull(i uint32) bool { return n.buf[i] != 0 }

// Size returns the number of rows the bitmap covers.
func (n *NullBitmap) Size() uint32 { return uint32(len(n.buf)) }

func (n *NullBitmap) Close() error {
	n.buf = nil
	return nil
}
