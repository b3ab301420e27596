package runtime

import (
	"sync"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/internal/klog"
)

var fmLog = klog.For("filemanager")

// FileManager is the process-wide cache of opened column and index
// handles, keyed by path (spec.md §5: "Column handles are cached in
// the FileManager by path and reused; a query never mutates them.").
// It is safe for concurrent use, though the single-threaded executor
// never actually contends on it.
type FileManager struct {
	mu       sync.Mutex
	columns  map[string]*ColumnData
	nulls    map[string]*NullBitmap
	indices  map[string]*ColumnIndex
}

// NewFileManager constructs an empty cache. One instance is typically
// constructed at process start and shared by every query, per spec.md
// §5.
func NewFileManager() *FileManager {
	return &FileManager{
		columns: make(map[string]*ColumnData),
		nulls:   make(map[string]*NullBitmap),
		indices: make(map[string]*ColumnIndex),
	}
}

// Column opens (or returns the cached) ColumnData for path.
func (fm *FileManager) Column(path string, kind catalog.Kind) (*ColumnData, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	if cd, ok := fm.columns[path]; ok {
		return cd, nil
	}
	cd, err := Open(path, kind)
	if err != nil {
		fmLog.WithField("path", path).WithError(err).Warn("failed to open column")
		return nil, err
	}
	fm.columns[path] = cd
	return cd, nil
}

// Null opens (or returns the cached) NullBitmap for path.
func (fm *FileManager) Null(path string) (*NullBitmap, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	if nb, ok := fm.nulls[path]; ok {
		return nb, nil
	}
	nb, err := OpenNullBitmap(path)
	if err != nil {
		fmLog.WithField("path", path).WithError(err).Warn("failed to open null bitmap")
		return nil, err
	}
	fm.nulls[path] = nb
	return nb, nil
}

// Index opens (or returns the cached) ColumnIndex for path. Opening
// is lazy: it only happens on first indexed probe, per spec.md §3
// "Lifecycle".
func (fm *FileManager) Index(path string, codec KeyCodec, cardinality uint32) (*ColumnIndex, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	if ci, ok := fm.indices[path]; ok {
		return ci, nil
	}
	ci, err := OpenIndex(path, codec, cardinality)
	if err != nil {
		fmLog.WithField("path", path).WithError(err).Warn("failed to open index")
		return nil, err
	}
	fm.indices[path] = ci
	return ci, nil
}
