package services

import (
	"bytes"
	"context"
	"log/slog"

	"retropulse/internal/export"
	"retropulse/internal/survey"
	"retropulse/internal/trend"
)

// TrendService is the orchestration surface consumed by the HTTP
// transport and the demo walkthrough: it owns the dataset store and
// answers every question the presentation layer asks.
type TrendService struct {
	loader          *survey.Loader
	store           *survey.Store
	timestampColumn string
	logger          *slog.Logger
}

// NewTrendService creates a trend service over the given loader and store.
func NewTrendService(loader *survey.Loader, store *survey.Store, timestampColumn string, logger *slog.Logger) *TrendService {
	return &TrendService{
		loader:          loader,
		store:           store,
		timestampColumn: timestampColumn,
		logger:          logger.With(slog.String("component", "trend_service")),
	}
}

// Load populates the store from the source. Called once at startup and
// again only through Reload; between those the store never changes.
func (s *TrendService) Load(ctx context.Context) (survey.Snapshot, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return survey.Snapshot{}, err
	}
	s.store.Replace(snap)

	s.logger.InfoContext(ctx, "datasets loaded",
		"files", len(snap.Files),
		"periods", len(snap.Periods),
		"failures", len(snap.Failures),
		"responses", snap.TotalResponses(),
	)
	return snap, nil
}

// Reload drops the cached datasets and loads fresh ones.
func (s *TrendService) Reload(ctx context.Context) (survey.Snapshot, error) {
	return s.Load(ctx)
}

// Snapshot returns the currently cached datasets.
func (s *TrendService) Snapshot() survey.Snapshot {
	return s.store.Snapshot()
}

// Questions returns the available questions grouped into categories.
func (s *TrendService) Questions() ([]trend.Category, error) {
	snap := s.store.Snapshot()
	if snap.Empty() {
		return nil, ErrNoData
	}
	return trend.Categorize(snap.Questions(s.timestampColumn)), nil
}

// Series is one chart line: an answer's percentage per period, aligned
// with the result's period order. A nil point means the answer did not
// occur in that period.
type Series struct {
	Answer string     `json:"answer"`
	Points []*float64 `json:"points"`
}

// TrendResult is everything the presentation layer needs for one
// question: chronologically ordered periods, one series per answer and
// the flattened detail table.
type TrendResult struct {
	Question string             `json:"question"`
	Periods  []string           `json:"periods"`
	Series   []Series           `json:"series"`
	Detail   []export.DetailRow `json:"detail"`
}

// Trend computes the trend of one question across all loaded periods.
func (s *TrendService) Trend(question string) (*TrendResult, error) {
	snap := s.store.Snapshot()
	if snap.Empty() {
		return nil, ErrNoData
	}

	trends := trend.Analyze(snap.Datasets, question)
	if len(trends) == 0 {
		if !s.questionExists(snap, question) {
			return nil, ErrQuestionNotFound
		}
		return nil, ErrNoTrendData
	}

	periods := trends.Periods()
	result := &TrendResult{
		Question: question,
		Periods:  periods,
		Detail:   export.Flatten(trends),
	}

	for _, answer := range trends.Answers() {
		series := Series{Answer: answer, Points: make([]*float64, len(periods))}
		for i, period := range periods {
			if pct, ok := trends[period][answer]; ok {
				v := pct
				series.Points[i] = &v
			}
		}
		result.Series = append(result.Series, series)
	}

	return result, nil
}

// ExportCSV renders the detail table of one question as a CSV download.
func (s *TrendService) ExportCSV(question string) (filename string, data []byte, err error) {
	result, err := s.Trend(question)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, result.Detail); err != nil {
		return "", nil, err
	}
	return export.Filename(question), buf.Bytes(), nil
}

// Counts returns the per-period response counts in chronological order.
func (s *TrendService) Counts() ([]trend.PeriodCount, error) {
	snap := s.store.Snapshot()
	if snap.Empty() {
		return nil, ErrNoData
	}
	return trend.ResponseCounts(snap), nil
}

// Summary returns the dashboard's headline numbers.
func (s *TrendService) Summary() (trend.Summary, error) {
	snap := s.store.Snapshot()
	if snap.Empty() {
		return trend.Summary{}, ErrNoData
	}
	return trend.Summarize(snap), nil
}

func (s *TrendService) questionExists(snap survey.Snapshot, question string) bool {
	for _, dataset := range snap.Datasets {
		if dataset.HasColumn(question) {
			return true
		}
	}
	return false
}
