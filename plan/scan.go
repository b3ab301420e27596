package plan

import (
	"fmt"

	"github.com/kushdb/kushdb-go/catalog"
)

// Scan opens the columns named by its output schema and produces the
// tuple id stream 0..N (spec.md §4.3).
type Scan struct {
	Table  *catalog.Table
	schema *Schema
}

// NewScan builds a Scan over every column of tbl, in declaration
// order.
func NewScan(tbl *catalog.Table) (*Scan, error) {
	s := NewSchema()
	if err := s.AddGeneratedColumns(tbl); err != nil {
		return nil, err
	}
	return &Scan{Table: tbl, schema: s}, nil
}

func (s *Scan) Kind() Kind           { return KindScan }
func (s *Scan) Schema() *Schema      { return s.schema }
func (s *Scan) Children() []Operator { return nil }
func (s *Scan) String() string       { return fmt.Sprintf("Scan(%s)", s.Table.Name()) }
