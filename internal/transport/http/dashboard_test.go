package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "retropulse/internal/errors"
	"retropulse/internal/services"
	"retropulse/internal/survey"
)

func newDashboard(t *testing.T, source survey.Source) *DashboardHandler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := survey.NewLoader(source, logger)
	svc := services.NewTrendService(loader, survey.NewStore(), "Timestamp", logger)
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	handler, err := NewDashboardHandler(svc, logger, apierrors.NewErrorHandler(logger))
	require.NoError(t, err)
	return handler
}

func TestDashboardNoData(t *testing.T) {
	handler := newDashboard(t, &memSource{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No retrospective files found")
}

func TestDashboardWithData(t *testing.T) {
	source := &memSource{}
	source.add("January Retrospective.xlsx", workbook(t, [][]interface{}{
		{"Timestamp", "Q"},
		{"x", "Yes"},
		{"x", "No"},
	}))
	handler := newDashboard(t, source)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Total Files")
	assert.Contains(t, body, "Response Count Trends")
	assert.Contains(t, body, "<option value=\"Q\"")
}

func TestDashboardSelectedQuestion(t *testing.T) {
	source := &memSource{}
	source.add("January Retrospective.xlsx", workbook(t, [][]interface{}{
		{"Timestamp", "Q"},
		{"x", "Yes"},
		{"x", "No"},
	}))
	handler := newDashboard(t, source)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?question=Q", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Detailed Data")
	assert.Contains(t, body, "Download trend data (CSV)")
	assert.Contains(t, body, "50.00%")
}

func TestDashboardUnknownQuestion(t *testing.T) {
	source := &memSource{}
	source.add("January Retrospective.xlsx", workbook(t, [][]interface{}{
		{"Q"}, {"Yes"},
	}))
	handler := newDashboard(t, source)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?question=missing", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "not present in any loaded period")
}

func TestDashboardReportsFailures(t *testing.T) {
	source := &memSource{}
	source.add("January Retrospective.xlsx", workbook(t, [][]interface{}{
		{"Q"}, {"Yes"},
	}))
	source.add("February Retrospective.xlsx", []byte("garbage"))
	handler := newDashboard(t, source)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load February Retrospective.xlsx")
}
