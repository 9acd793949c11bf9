// Package survey loads retrospective survey exports into in-memory
// datasets keyed by the reporting period extracted from each filename.
package survey

import "strings"

// Row is a single survey response: question name to answer value.
// A missing answer is an absent key or a value that trims to empty.
type Row map[string]string

// Dataset holds the responses of one reporting period. It is created
// by the loader and read-only afterwards.
type Dataset struct {
	// Columns preserves the header order of the source sheet.
	Columns []string
	// Rows preserves the response order of the source sheet.
	Rows []Row
}

// HasColumn reports whether the dataset contains the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Values returns the non-missing answers for one column, in row order.
func (d *Dataset) Values(column string) []string {
	var values []string
	for _, row := range d.Rows {
		v, ok := row[column]
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		values = append(values, v)
	}
	return values
}

// ResponseCount returns the number of responses (rows) in the dataset.
func (d *Dataset) ResponseCount() int {
	return len(d.Rows)
}

// PeriodLabel derives the reporting period from a filename: its first
// whitespace-delimited token, e.g. "January Retrospective.xlsx" → "January".
func PeriodLabel(filename string) string {
	fields := strings.Fields(filename)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
