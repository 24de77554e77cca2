// =============================================================================
// csvtree - XLSX Parser Module
// =============================================================================
//
// This module reads a workbook sheet into a types.Table, so a spreadsheet can
// be converted without exporting it to CSV first.
//
// SHEET LAYOUT:
//   - The first non-empty row is the header.
//   - Every following non-empty row is a record.
//   - Empty cells are empty strings, including trailing ones.
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/ginjaninja78/csvtree/internal/types"
	"github.com/xuri/excelize/v2"
)

// Extensions lists the file extensions read through this parser.
var Extensions = []string{".xlsx", ".xlsm"}

// Parse reads the first sheet of an XLSX workbook.
func Parse(filePath string) (*types.Table, error) {
	return ParseSheet(filePath, "")
}

// ParseSheet reads the named sheet of an XLSX workbook. An empty sheet name
// selects the first sheet.
//
// RETURNS:
//   - A pointer to the Table containing the header and all records.
//   - An error if the workbook or sheet cannot be read.
func ParseSheet(filePath, sheetName string) (*types.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %q: %w", sheetName, err)
	}

	table := &types.Table{SourceFile: filePath}

	for i, row := range rows {
		// GetRows returns gaps between populated rows as empty slices.
		if types.IsBlank(row) {
			continue
		}

		if table.Headers == nil {
			table.Headers = row
			continue
		}

		table.Records = append(table.Records, types.NewRecord(i+1, table.Headers, padRow(row, len(table.Headers))))
	}

	return table, nil
}

// padRow extends row with empty cells up to width. excelize drops trailing
// empty cells, but in a sheet those cells exist and are simply empty.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
