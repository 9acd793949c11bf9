package survey

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"retropulse/internal/shared/testutil"
)

// buildWorkbook creates an in-memory xlsx with the given rows.
func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// memSource is an in-memory Source fixture.
type memSource struct {
	files map[string][]byte
	order []string
}

func newMemSource() *memSource {
	return &memSource{files: make(map[string][]byte)}
}

func (m *memSource) add(name string, content []byte) {
	m.files[name] = content
	m.order = append(m.order, name)
}

func (m *memSource) List() ([]SourceFile, error) {
	var files []SourceFile
	for _, name := range m.order {
		files = append(files, SourceFile{Name: name})
	}
	return files, nil
}

func (m *memSource) Open(name string) (io.ReadCloser, error) {
	content, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", name)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPeriodLabel(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"January Release Retrospective.xlsx", "January"},
		{"March Retrospective.xlsx", "March"},
		{"single.xlsx", "single.xlsx"},
		{"  padded name.xlsx", "padded"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, PeriodLabel(tt.filename))
		})
	}
}

func TestParseWorkbook(t *testing.T) {
	content := buildWorkbook(t, [][]interface{}{
		{"Timestamp", "How was the sprint?", "Did AI help?"},
		{"2025-01-03", "Good", "Yes"},
		{"2025-01-04", "", "No"},
		{"2025-01-05", "Bad"},
	})

	dataset, err := ParseWorkbook(bytes.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, []string{"Timestamp", "How was the sprint?", "Did AI help?"}, dataset.Columns)
	assert.Equal(t, 3, dataset.ResponseCount())

	// Empty cell and short row both count as missing
	assert.Equal(t, []string{"Good", "Bad"}, dataset.Values("How was the sprint?"))
	assert.Equal(t, []string{"Yes", "No"}, dataset.Values("Did AI help?"))
	assert.True(t, dataset.HasColumn("Timestamp"))
	assert.False(t, dataset.HasColumn("nope"))
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	_, err := ParseWorkbook(bytes.NewReader([]byte("this is not a workbook")))
	assert.Error(t, err)
}

func TestParseWorkbookRejectsEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, parseErr := ParseWorkbook(bytes.NewReader(buf.Bytes()))
	assert.Error(t, parseErr)
}

func TestDirSourceList(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"January Retrospective.xlsx",
		"February Retrospective.XLSX",
		"March Retrospective.csv",
		"notes.xlsx",
		"README.md",
	}
	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Retrospective archive.xlsx"), 0o755))

	source := NewDirSource(dir, "Retrospective")
	found, err := source.List()
	require.NoError(t, err)

	var names []string
	for _, f := range found {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"January Retrospective.xlsx", "February Retrospective.XLSX"}, names)
}

func TestDirSourceListMissingDir(t *testing.T) {
	source := NewDirSource(filepath.Join(t.TempDir(), "absent"), "Retrospective")
	_, err := source.List()
	assert.Error(t, err)
}

func TestLoaderSkipsMalformedFile(t *testing.T) {
	source := newMemSource()
	source.add("January Retrospective.xlsx", buildWorkbook(t, [][]interface{}{
		{"Q"},
		{"Yes"},
	}))
	source.add("February Retrospective.xlsx", []byte("corrupted"))

	logger, logs := testutil.NewBufferedLogger()
	loader := NewLoader(source, logger)
	snap, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, logs.HasMessage(slog.LevelError, "failed to load export"))
	assert.Len(t, snap.Datasets, 1)
	assert.Contains(t, snap.Datasets, "January")
	require.Len(t, snap.Failures, 1)
	assert.Equal(t, "February Retrospective.xlsx", snap.Failures[0].File)
	assert.Equal(t, []string{"January"}, snap.Periods)
	assert.Len(t, snap.Files, 2)
}

func TestLoaderEmptySource(t *testing.T) {
	loader := NewLoader(newMemSource(), discardLogger())
	snap, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Empty())
}

func TestLoaderPeriodCollisionLastWins(t *testing.T) {
	source := newMemSource()
	source.add("March Retrospective.xlsx", buildWorkbook(t, [][]interface{}{
		{"Q"}, {"old"},
	}))
	source.add("March Release Retrospective.xlsx", buildWorkbook(t, [][]interface{}{
		{"Q"}, {"new"}, {"new"},
	}))

	logger, logs := testutil.NewBufferedLogger()
	loader := NewLoader(source, logger)
	snap, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Datasets, 1)
	assert.Equal(t, []string{"March"}, snap.Periods)
	assert.Equal(t, 2, snap.Datasets["March"].ResponseCount())
	assert.True(t, logs.HasMessage(slog.LevelWarn, "period label collision, overwriting"))
}

func TestSnapshotQuestionsUnion(t *testing.T) {
	source := newMemSource()
	source.add("January Retrospective.xlsx", buildWorkbook(t, [][]interface{}{
		{"Timestamp", "Q1", "Q2"},
		{"x", "a", "b"},
	}))
	source.add("February Retrospective.xlsx", buildWorkbook(t, [][]interface{}{
		{"Timestamp", "Q2", "Q3"},
		{"x", "a", "b"},
	}))

	loader := NewLoader(source, discardLogger())
	snap, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, snap.Questions("Timestamp"))
	assert.Equal(t, 2, snap.TotalResponses())
}

func TestStoreReplace(t *testing.T) {
	store := NewStore()
	assert.True(t, store.Snapshot().Empty())

	store.Replace(Snapshot{
		Datasets: map[string]*Dataset{"January": {Columns: []string{"Q"}}},
		Periods:  []string{"January"},
	})

	snap := store.Snapshot()
	assert.False(t, snap.Empty())
	assert.Equal(t, []string{"January"}, snap.Periods)
}
