package survey

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseWorkbook reads an xlsx survey export. The first row of the first
// sheet is the header row (question names); every following row is one
// response. Cells beyond the header width are ignored; short rows are
// treated as missing answers for the remaining columns.
func ParseWorkbook(r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	header := rows[0]
	columns := make([]string, 0, len(header))
	for _, h := range header {
		columns = append(columns, strings.TrimSpace(h))
	}
	if len(columns) == 0 || allEmpty(columns) {
		return nil, fmt.Errorf("sheet %q has no header row", sheets[0])
	}

	dataset := &Dataset{Columns: columns}
	for _, raw := range rows[1:] {
		row := make(Row, len(columns))
		for i, col := range columns {
			if col == "" {
				continue
			}
			if i < len(raw) {
				if v := strings.TrimSpace(raw[i]); v != "" {
					row[col] = v
				}
			}
		}
		dataset.Rows = append(dataset.Rows, row)
	}

	return dataset, nil
}

func allEmpty(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}
