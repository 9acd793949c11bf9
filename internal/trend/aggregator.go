// Package trend computes per-question answer distributions across
// reporting periods and the ordering/grouping used to present them.
package trend

import (
	"math"
	"sort"

	"retropulse/internal/survey"
)

// Map is the trend of one question: period label → answer value →
// percentage of that period's non-missing responses, rounded to two
// decimals.
type Map map[string]map[string]float64

// Analyze computes the answer distribution of one question for every
// period whose dataset contains that column. Rows with a missing value
// for the column are discarded; a period whose non-missing count is
// zero is omitted entirely, so no entry ever maps to an empty
// distribution and division by zero cannot occur.
func Analyze(datasets map[string]*survey.Dataset, question string) Map {
	trends := make(Map)

	for period, dataset := range datasets {
		if !dataset.HasColumn(question) {
			continue
		}

		values := dataset.Values(question)
		if len(values) == 0 {
			continue
		}

		counts := make(map[string]int, len(values))
		for _, v := range values {
			counts[v]++
		}

		percentages := make(map[string]float64, len(counts))
		for answer, count := range counts {
			percentages[answer] = round2(float64(count) / float64(len(values)) * 100)
		}
		trends[period] = percentages
	}

	return trends
}

// Answers returns the union of answer values across all periods of a
// trend, sorted ascending so chart series are stable.
func (m Map) Answers() []string {
	seen := make(map[string]bool)
	var answers []string
	for _, distribution := range m {
		for answer := range distribution {
			if !seen[answer] {
				seen[answer] = true
				answers = append(answers, answer)
			}
		}
	}
	sort.Strings(answers)
	return answers
}

// Periods returns the trend's period labels in chronological order.
// Labels sharing the unknown-month sentinel tie-break alphabetically
// so the result is deterministic regardless of map iteration order.
func (m Map) Periods() []string {
	periods := make([]string, 0, len(m))
	for period := range m {
		periods = append(periods, period)
	}
	sort.Strings(periods)
	SortChronologically(periods)
	return periods
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
