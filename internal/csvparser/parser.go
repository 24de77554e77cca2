// =============================================================================
// csvtree - CSV Parser Module
// =============================================================================
//
// This module reads a header-driven CSV file into a types.Table. The first
// non-empty line is the header; every following non-empty line is a record.
// A line of bare delimiters is a record of empty values, not a blank line.
//
// FEATURES:
//   - Standard quoting: quoted fields may contain the delimiter and newlines
//   - Rows may be shorter or longer than the header
//   - Cell values are kept verbatim (no trimming)
//   - The whole file is read before any record is returned
//
// =============================================================================

package csvparser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/csvtree/internal/config"
	"github.com/ginjaninja78/csvtree/internal/types"
)

// utf8BOM is stripped from the start of the input when present, so the first
// header name matches what a user sees in a spreadsheet.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - A pointer to the Table containing the header and all records.
//   - An error if the file cannot be opened or is not valid CSV.
//
// An empty file yields a table with no headers and no records.
func Parse(filePath string, settings config.CSVSettings) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	table, err := Read(file, settings)
	if err != nil {
		return nil, err
	}

	table.SourceFile = filePath
	return table, nil
}

// Read parses CSV data from r. See Parse.
func Read(r io.Reader, settings config.CSVSettings) (*types.Table, error) {
	reader := bufio.NewReader(r)
	if head, err := reader.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		reader.Discard(len(utf8BOM))
	}

	csvReader := csv.NewReader(reader)
	if err := configureReader(csvReader, settings); err != nil {
		return nil, err
	}

	table := &types.Table{}

	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		if table.Headers == nil {
			table.Headers = row
			continue
		}

		line, _ := csvReader.FieldPos(0)
		table.Records = append(table.Records, types.NewRecord(line, table.Headers, row))
	}

	return table, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return err
	}
	reader.Comma = comma

	// Rows shorter or longer than the header are allowed; missing columns
	// surface later as lookup errors.
	reader.FieldsPerRecord = -1

	return nil
}
