// =============================================================================
// csvtree - Shared Types
// =============================================================================
//
// This package contains the table and record types shared by the table
// readers (csvparser, xlsxparser) and the converter. Keeping them here avoids
// an import cycle between the readers and the converter.
//
// =============================================================================

package types

import (
	"errors"
	"fmt"
)

// ErrMissingField is returned when a record has no value for a requested
// column, either because the header never named it or because the row was
// shorter than the header.
var ErrMissingField = errors.New("missing field")

// =============================================================================
// RECORD
// =============================================================================

// Record is one data row of the input table.
type Record struct {
	// Row is the 1-based line (or sheet row) where the record starts in the
	// source table. The header is row 1.
	Row int

	// Fields maps column name to the raw cell value. Values are kept
	// verbatim; nothing is trimmed.
	Fields map[string]string
}

// Get returns the value of column, or ErrMissingField when the record has
// no such column.
func (r Record) Get(column string) (string, error) {
	value, ok := r.Fields[column]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingField, column)
	}
	return value, nil
}

// =============================================================================
// TABLE
// =============================================================================

// Table is a fully materialized header-driven table.
type Table struct {
	// Headers holds the column names from the first row, in file order.
	Headers []string

	// Records holds every data row, in file order.
	Records []Record

	// SourceFile is the path the table was read from.
	SourceFile string
}

// NewRecord builds a Record from a raw row. Cells beyond the header are
// dropped; columns the row is too short to reach are left absent. A column
// name repeated in the header takes the value of its last occurrence.
func NewRecord(row int, headers []string, cells []string) Record {
	fields := make(map[string]string, len(headers))
	for i, header := range headers {
		if i >= len(cells) {
			break
		}
		fields[header] = cells[i]
	}
	return Record{Row: row, Fields: fields}
}

// IsBlank reports whether every cell in the row is empty.
func IsBlank(cells []string) bool {
	for _, cell := range cells {
		if cell != "" {
			return false
		}
	}
	return true
}
