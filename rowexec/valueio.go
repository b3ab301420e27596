package rowexec

import (
	"fmt"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/runtime"
)

// openedColumn bundles the opened ColumnData alongside its optional
// null bitmap, for one catalog.Column.
type openedColumn struct {
	col  catalog.Column
	data *runtime.ColumnData
	null *runtime.NullBitmap
}

// openColumns opens every column of cols through fm, lazily (spec.md
// §3 "column data files are opened lazily on first scan").
func openColumns(fm *runtime.FileManager, cols []catalog.Column) ([]openedColumn, error) {
	opened := make([]openedColumn, len(cols))
	for i, c := range cols {
		data, err := fm.Column(c.DataPath, c.Type.Kind)
		if err != nil {
			return nil, err
		}
		var nb *runtime.NullBitmap
		if c.HasNullBitmap() {
			nb, err = fm.Null(c.NullPath)
			if err != nil {
				return nil, err
			}
		}
		opened[i] = openedColumn{col: c, data: data, null: nb}
	}
	return opened, nil
}

// read returns the value at tuple id i, honoring the column's null
// bitmap if it has one.
func (o openedColumn) read(i uint32) expr.Value {
	if o.null != nil && o.null.IsNull(i) {
		return nil
	}
	switch o.col.Type.Kind {
	case catalog.SMALLINT:
		return o.data.GetSmallInt(i)
	case catalog.INT:
		return o.data.GetInt(i)
	case catalog.BIGINT:
		return o.data.GetBigInt(i)
	case catalog.DATE:
		return o.data.GetDate(i)
	case catalog.REAL:
		return o.data.GetReal(i)
	case catalog.BOOLEAN:
		return o.data.GetBool(i)
	case catalog.ENUM:
		return o.data.GetEnum(i)
	case catalog.TEXT:
		return o.data.GetText(i)
	default:
		panic(fmt.Sprintf("rowexec: unsupported column kind %s", o.col.Type.Kind))
	}
}

// cardinality returns the owning column's row count, used as the
// scan's tuple id upper bound.
func (o openedColumn) cardinality() uint32 { return o.data.Size() }
