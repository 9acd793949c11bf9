package trend

import (
	"github.com/montanaflynn/stats"

	"retropulse/internal/survey"
)

// PeriodCount pairs a period label with its response count.
type PeriodCount struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// ResponseCounts returns per-period response counts in chronological
// order, the data behind the volume trend chart.
func ResponseCounts(snap survey.Snapshot) []PeriodCount {
	periods := make([]string, len(snap.Periods))
	copy(periods, snap.Periods)
	SortChronologically(periods)

	counts := make([]PeriodCount, 0, len(periods))
	for _, period := range periods {
		counts = append(counts, PeriodCount{
			Period: period,
			Count:  snap.Datasets[period].ResponseCount(),
		})
	}
	return counts
}

// Summary aggregates the headline numbers shown on the dashboard.
type Summary struct {
	TotalFiles          int     `json:"total_files"`
	TotalResponses      int     `json:"total_responses"`
	MostRecent          string  `json:"most_recent"`
	MostRecentResponses int     `json:"most_recent_responses"`
	MeanResponses       float64 `json:"mean_responses"`
	MedianResponses     float64 `json:"median_responses"`
	StdDevResponses     float64 `json:"stddev_responses"`
}

// Summarize computes the dashboard summary over a snapshot. The
// volume statistics come from the per-period response counts; with no
// loaded periods everything is zero.
func Summarize(snap survey.Snapshot) Summary {
	summary := Summary{
		TotalFiles:     len(snap.Periods),
		TotalResponses: snap.TotalResponses(),
	}
	if len(snap.Periods) == 0 {
		return summary
	}

	summary.MostRecent = MostRecent(snap.Periods)
	summary.MostRecentResponses = snap.Datasets[summary.MostRecent].ResponseCount()

	samples := make(stats.Float64Data, 0, len(snap.Periods))
	for _, period := range snap.Periods {
		samples = append(samples, float64(snap.Datasets[period].ResponseCount()))
	}

	// These cannot fail on a non-empty sample
	summary.MeanResponses, _ = stats.Mean(samples)
	summary.MedianResponses, _ = stats.Median(samples)
	summary.StdDevResponses, _ = stats.StandardDeviation(samples)

	summary.MeanResponses = round2(summary.MeanResponses)
	summary.MedianResponses = round2(summary.MedianResponses)
	summary.StdDevResponses = round2(summary.StdDevResponses)

	return summary
}
