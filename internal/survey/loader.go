package survey

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// LoadFailure records one file that could not be parsed.
type LoadFailure struct {
	File  string
	Error string
}

// Snapshot is the immutable result of one load pass over the source.
type Snapshot struct {
	// Datasets maps period label → dataset.
	Datasets map[string]*Dataset
	// Periods lists period labels in load order.
	Periods []string
	// Files lists the discovered filenames, loaded or not.
	Files []string
	// Failures lists files that were skipped due to parse errors.
	Failures []LoadFailure
	// LoadedAt is when this snapshot was produced.
	LoadedAt time.Time
}

// Empty reports whether the snapshot holds no datasets.
func (s Snapshot) Empty() bool {
	return len(s.Datasets) == 0
}

// TotalResponses sums the response counts of all periods.
func (s Snapshot) TotalResponses() int {
	total := 0
	for _, d := range s.Datasets {
		total += d.ResponseCount()
	}
	return total
}

// Questions returns the union of all periods' columns minus the
// timestamp column, ordered by first appearance across load order.
func (s Snapshot) Questions(timestampColumn string) []string {
	var questions []string
	seen := make(map[string]bool)
	for _, period := range s.Periods {
		for _, col := range s.Datasets[period].Columns {
			if col == "" || col == timestampColumn || seen[col] {
				continue
			}
			seen[col] = true
			questions = append(questions, col)
		}
	}
	return questions
}

// Loader discovers and parses exports from a Source.
type Loader struct {
	source Source
	logger *slog.Logger
}

// NewLoader creates a loader over the given source.
func NewLoader(source Source, logger *slog.Logger) *Loader {
	return &Loader{
		source: source,
		logger: logger.With(slog.String("component", "loader")),
	}
}

// Load reads every discoverable export into a fresh snapshot. A file
// that fails to parse is logged, recorded as a failure and skipped;
// loading continues with the remaining files. Two files sharing a
// period label silently overwrite, last one wins.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	files, err := l.source.List()
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Datasets: make(map[string]*Dataset),
		LoadedAt: time.Now(),
	}

	for _, file := range files {
		snap.Files = append(snap.Files, file.Name)

		dataset, err := l.loadFile(file.Name)
		if err != nil {
			l.logger.ErrorContext(ctx, "failed to load export",
				"file", file.Name,
				"error", err.Error(),
			)
			snap.Failures = append(snap.Failures, LoadFailure{File: file.Name, Error: err.Error()})
			continue
		}

		label := PeriodLabel(file.Name)
		if _, exists := snap.Datasets[label]; exists {
			l.logger.WarnContext(ctx, "period label collision, overwriting",
				"period", label,
				"file", file.Name,
			)
		} else {
			snap.Periods = append(snap.Periods, label)
		}
		snap.Datasets[label] = dataset

		l.logger.InfoContext(ctx, "loaded export",
			"file", file.Name,
			"period", label,
			"responses", dataset.ResponseCount(),
			"questions", len(dataset.Columns),
		)
	}

	return snap, nil
}

func (l *Loader) loadFile(name string) (*Dataset, error) {
	rc, err := l.source.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ParseWorkbook(rc)
}

// Store is the process-lifetime cache of loaded datasets. It is
// populated once at startup and replaced wholesale on explicit reload;
// there is no other invalidation.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{snap: Snapshot{Datasets: make(map[string]*Dataset)}}
}

// Replace swaps in a new snapshot.
func (s *Store) Replace(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
