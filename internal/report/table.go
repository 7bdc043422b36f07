// Package report renders ledger exports as tables.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Table is a rendered export: a header, one row per record and a trailing total row.
type Table struct {
	Header []string
	Rows   [][]string
	Total  []string
}

// Len returns the number of data rows, excluding the header and total.
func (t *Table) Len() int {
	return len(t.Rows)
}

// WriteCSV writes the header, rows and total row as CSV.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	if len(t.Total) > 0 {
		if err := cw.Write(t.Total); err != nil {
			return fmt.Errorf("failed to write total: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
