package trend

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retropulse/internal/survey"
)

// dataset builds a single-question dataset from answer values, where
// an empty string stands for a missing answer.
func dataset(question string, answers ...string) *survey.Dataset {
	d := &survey.Dataset{Columns: []string{question}}
	for _, a := range answers {
		row := survey.Row{}
		if a != "" {
			row[question] = a
		}
		d.Rows = append(d.Rows, row)
	}
	return d
}

func TestAnalyze(t *testing.T) {
	datasets := map[string]*survey.Dataset{
		"January": dataset("Q", "Yes", "Yes", "No"),
		"March":   dataset("Q", "No", ""),
	}

	trends := Analyze(datasets, "Q")

	expected := Map{
		"January": {"Yes": 66.67, "No": 33.33},
		"March":   {"No": 100.0},
	}
	assert.Equal(t, expected, trends)
}

func TestAnalyzeSkipsPeriodWithoutColumn(t *testing.T) {
	datasets := map[string]*survey.Dataset{
		"January": dataset("Q", "Yes"),
		"April":   dataset("Other question", "Maybe"),
	}

	trends := Analyze(datasets, "Q")

	assert.Contains(t, trends, "January")
	assert.NotContains(t, trends, "April")
}

func TestAnalyzeSkipsPeriodWithNoResponses(t *testing.T) {
	datasets := map[string]*survey.Dataset{
		"January": dataset("Q", "", "", ""),
		"May":     dataset("Q"),
	}

	trends := Analyze(datasets, "Q")

	assert.Empty(t, trends)
	_, present := trends["January"]
	assert.False(t, present, "zero-count period must be absent, not empty")
}

func TestAnalyzeUnknownQuestion(t *testing.T) {
	datasets := map[string]*survey.Dataset{
		"January": dataset("Q", "Yes"),
	}
	assert.Empty(t, Analyze(datasets, "missing"))
}

func TestAnalyzePercentagesSumTo100(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
	}{
		{"two values", []string{"Yes", "Yes", "No"}},
		{"three way split", []string{"a", "b", "c"}},
		{"uneven split", []string{"a", "a", "a", "b", "b", "c", "d"}},
		{"single value", []string{"only"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			datasets := map[string]*survey.Dataset{"January": dataset("Q", tt.answers...)}
			trends := Analyze(datasets, "Q")

			sum := 0.0
			for _, pct := range trends["January"] {
				sum += pct
			}
			assert.InDelta(t, 100.0, sum, 0.02)
		})
	}
}

func TestAnalyzeManyDistinctValues(t *testing.T) {
	answers := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		answers = append(answers, fmt.Sprintf("answer-%02d", i))
	}
	datasets := map[string]*survey.Dataset{"June": dataset("Q", answers...)}

	trends := Analyze(datasets, "Q")
	require.Len(t, trends["June"], 50)

	sum := 0.0
	for _, pct := range trends["June"] {
		sum += pct
	}
	assert.InDelta(t, 100.0, sum, 0.02)
}

func TestMapAnswers(t *testing.T) {
	m := Map{
		"January": {"Yes": 60.0, "No": 40.0},
		"March":   {"Maybe": 100.0},
	}
	assert.Equal(t, []string{"Maybe", "No", "Yes"}, m.Answers())
}

func TestMapPeriodsChronological(t *testing.T) {
	m := Map{
		"November": {"x": 100.0},
		"March":    {"x": 100.0},
		"Unlabeled": {
			"x": 100.0,
		},
		"January": {"x": 100.0},
	}
	assert.Equal(t, []string{"January", "March", "November", "Unlabeled"}, m.Periods())
}
