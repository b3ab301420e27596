package catalog

// Column is (name, Type, data_path, optional null_path, optional
// index_path) per spec.md §3. It carries enough metadata that
// runtime.ColumnData/ColumnIndex can open it independently of the
// Table that holds it.
type Column struct {
	Name      string
	Type      Type
	DataPath  string
	NullPath  string // empty if the column has no null bitmap
	IndexPath string // empty if the column has no hash index
}

// HasNullBitmap reports whether this column was declared with a null
// bitmap file.
func (c Column) HasNullBitmap() bool { return c.NullPath != "" }

// HasIndex reports whether this column was declared with a hash-index
// file.
func (c Column) HasIndex() bool { return c.IndexPath != "" }
