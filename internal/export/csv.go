// Package export flattens question trends into the detail table and
// its downloadable CSV form.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"retropulse/internal/trend"
)

// DetailRow is one line of the flattened detail table: the percentage
// of one answer in one period.
type DetailRow struct {
	Month      string  `json:"month"`
	Answer     string  `json:"answer"`
	Percentage float64 `json:"percentage"`
}

// Flatten turns a trend map into detail rows ordered chronologically
// by period and alphabetically by answer within each period.
func Flatten(trends trend.Map) []DetailRow {
	var rows []DetailRow
	for _, period := range trends.Periods() {
		distribution := trends[period]
		answers := make([]string, 0, len(distribution))
		for answer := range distribution {
			answers = append(answers, answer)
		}
		sort.Strings(answers)
		for _, answer := range answers {
			rows = append(rows, DetailRow{
				Month:      period,
				Answer:     answer,
				Percentage: distribution[answer],
			})
		}
	}
	return rows
}

// WriteCSV writes the detail table as CSV with a Month,Answer,Percentage
// header.
func WriteCSV(w io.Writer, rows []DetailRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Month", "Answer", "Percentage"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{row.Month, row.Answer, formatPercentage(row.Percentage)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename derives the CSV download name from the question: the first
// 30 characters with spaces replaced by underscores.
func Filename(question string) string {
	truncated := question
	// Cut on runes so a multibyte question never yields invalid UTF-8
	if runes := []rune(truncated); len(runes) > 30 {
		truncated = string(runes[:30])
	}
	return fmt.Sprintf("trend_analysis_%s.csv", strings.ReplaceAll(truncated, " ", "_"))
}

func formatPercentage(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
