package trend

import "sort"

// UnknownOrdinal is the sentinel for labels that are not calendar month
// names. It sorts after every recognized month; labels sharing it keep
// their relative order under a stable sort.
const UnknownOrdinal = 13

var monthOrdinals = map[string]int{
	"January":   1,
	"February":  2,
	"March":     3,
	"April":     4,
	"May":       5,
	"June":      6,
	"July":      7,
	"August":    8,
	"September": 9,
	"October":   10,
	"November":  11,
	"December":  12,
}

// MonthOrdinal maps a period label to its sortable ordinal: 1..12 for
// the full English month names, UnknownOrdinal for anything else.
func MonthOrdinal(label string) int {
	if ordinal, ok := monthOrdinals[label]; ok {
		return ordinal
	}
	return UnknownOrdinal
}

// SortChronologically orders period labels in place by month ordinal.
// The sort is stable, so unrecognized labels stay in their incoming
// relative order, after all recognized months.
func SortChronologically(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		return MonthOrdinal(labels[i]) < MonthOrdinal(labels[j])
	})
}

// MostRecent returns the label with the highest month ordinal, the way
// the dashboard picks its "most recent" summary card. Empty input
// returns the empty string.
func MostRecent(labels []string) string {
	best := ""
	bestOrdinal := 0
	for _, label := range labels {
		if ordinal := MonthOrdinal(label); ordinal > bestOrdinal {
			best = label
			bestOrdinal = ordinal
		}
	}
	return best
}
