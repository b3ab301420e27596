package rowexec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/expr"
	"github.com/kushdb/kushdb-go/plan"
)

// outputIter passes Child's rows through unchanged. Formatting per
// spec.md §4.9 is done by FormatRow/FormatValue below: integers
// decimal, REAL fixed to three decimal places, DATE as YYYY-MM-DD UTC,
// TEXT verbatim, BOOLEAN as t/f, NULL the empty string, fields joined
// by "|"; the caller writes the newline.
type outputIter struct {
	child RowIter
	types []catalog.Type
}

func NewOutputIter(child RowIter, op *plan.Output) RowIter {
	types := make([]catalog.Type, op.Schema().Len())
	for i, c := range op.Schema().Columns() {
		types[i] = c.Type()
	}
	return &outputIter{child: child, types: types}
}

func (o *outputIter) Next() (expr.Row, error) {
	return o.child.Next()
}

func (o *outputIter) Close() error { return o.child.Close() }

// FormatRow renders row as one output line per spec.md §4.9, without
// the trailing newline.
func FormatRow(types []catalog.Type, row expr.Row) string {
	fields := make([]string, len(row))
	for i, v := range row {
		fields[i] = FormatValue(types[i], v)
	}
	return strings.Join(fields, "|")
}

// FormatValue renders a single cell per its declared type.
func FormatValue(typ catalog.Type, v expr.Value) string {
	if v == nil {
		return ""
	}
	switch typ.Kind {
	case catalog.SMALLINT:
		return strconv.FormatInt(int64(v.(int16)), 10)
	case catalog.INT, catalog.ENUM:
		return strconv.FormatInt(int64(v.(int32)), 10)
	case catalog.BIGINT:
		return strconv.FormatInt(v.(int64), 10)
	case catalog.DATE:
		ms := v.(int64)
		return time.UnixMilli(ms).UTC().Format("2006-01-02")
	case catalog.REAL:
		return strconv.FormatFloat(v.(float64), 'f', 3, 64)
	case catalog.BOOLEAN:
		if v.(bool) {
			return "t"
		}
		return "f"
	case catalog.TEXT:
		return v.(string)
	default:
		return fmt.Sprintf("%v", v)
	}
}
