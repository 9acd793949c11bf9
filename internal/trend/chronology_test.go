package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthOrdinal(t *testing.T) {
	tests := []struct {
		label    string
		expected int
	}{
		{"January", 1},
		{"February", 2},
		{"March", 3},
		{"April", 4},
		{"May", 5},
		{"June", 6},
		{"July", 7},
		{"August", 8},
		{"September", 9},
		{"October", 10},
		{"November", 11},
		{"December", 12},
		{"Unlabeled", 13},
		{"january", 13},
		{"Jan", 13},
		{"", 13},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthOrdinal(tt.label))
		})
	}
}

func TestMonthOrdinalOrdering(t *testing.T) {
	assert.Less(t, MonthOrdinal("March"), MonthOrdinal("November"))
	assert.Less(t, MonthOrdinal("November"), MonthOrdinal("Unlabeled"))
	assert.Equal(t, MonthOrdinal("Unlabeled1"), MonthOrdinal("Unlabeled2"))
	assert.Equal(t, 13, MonthOrdinal("Unlabeled1"))
}

func TestSortChronologically(t *testing.T) {
	labels := []string{"December", "Sprint-9", "January", "Sprint-1", "July"}
	SortChronologically(labels)
	// Stable sort keeps the unrecognized labels in their incoming order
	assert.Equal(t, []string{"January", "July", "December", "Sprint-9", "Sprint-1"}, labels)
}

func TestMostRecent(t *testing.T) {
	assert.Equal(t, "November", MostRecent([]string{"January", "November", "March"}))
	assert.Equal(t, "Mystery", MostRecent([]string{"January", "Mystery", "December"}))
	assert.Equal(t, "", MostRecent(nil))
	// Ties keep the first label
	assert.Equal(t, "A", MostRecent([]string{"A", "B"}))
}
