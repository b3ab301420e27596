package rowexec

import "github.com/kushdb/kushdb-go/expr"

// crossProductIter materializes Right once and replays it against
// every Left row (spec.md §4.5).
type crossProductIter struct {
	left      RowIter
	rightRows []expr.Row

	curLeft  expr.Row
	leftDone bool
	pos      int
}

func NewCrossProductIter(left, right RowIter) (RowIter, error) {
	rightRows, err := drain(right)
	if err != nil {
		return nil, err
	}
	return &crossProductIter{left: left, rightRows: rightRows}, nil
}

func (c *crossProductIter) Next() (expr.Row, error) {
	for {
		if c.curLeft == nil {
			row, err := c.left.Next()
			if err != nil {
				return nil, err
			}
			c.curLeft = row
			c.pos = 0
		}
		if c.pos >= len(c.rightRows) {
			c.curLeft = nil
			continue
		}
		rightRow := c.rightRows[c.pos]
		c.pos++
		out := make(expr.Row, 0, len(c.curLeft)+len(rightRow))
		out = append(out, c.curLeft...)
		out = append(out, rightRow...)
		return out, nil
	}
}

func (c *crossProductIter) Close() error { return c.left.Close() }
