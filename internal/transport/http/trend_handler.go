// Package http contains the chi handlers behind the dashboard: the
// JSON API, the CSV download and the rendered dashboard page.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "retropulse/internal/errors"
	"retropulse/internal/services"
)

// TrendHandler handles trend-related HTTP requests
type TrendHandler struct {
	service      *services.TrendService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewTrendHandler creates a new trend handler
func NewTrendHandler(service *services.TrendService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *TrendHandler {
	return &TrendHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "trend_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the API routes
func (h *TrendHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/questions", h.GetQuestions)
	r.Get("/counts", h.GetCounts)
	r.Get("/summary", h.GetSummary)
	r.Post("/reload", h.Reload)

	r.Route("/trend", func(r chi.Router) {
		r.Use(h.QuestionCtx)
		r.Get("/", h.GetTrend)
		r.Get("/export", h.ExportTrend)
	})

	return r
}

// QuestionCtx middleware validates the question query parameter
func (h *TrendHandler) QuestionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("question") == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("question", "Question is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetQuestions handles GET /api/questions
func (h *TrendHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Questions()
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"categories": categories,
	})
}

// GetTrend handles GET /api/trend?question=...
func (h *TrendHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	question := r.URL.Query().Get("question")

	result, err := h.service.Trend(question)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, result)
}

// ExportTrend handles GET /api/trend/export?question=...
func (h *TrendHandler) ExportTrend(w http.ResponseWriter, r *http.Request) {
	question := r.URL.Query().Get("question")

	filename, data, err := h.service.ExportCSV(question)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// GetCounts handles GET /api/counts
func (h *TrendHandler) GetCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Counts()
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"counts": counts,
	})
}

// GetSummary handles GET /api/summary
func (h *TrendHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary()
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, summary)
}

// Reload handles POST /api/reload: drops the cached datasets and loads
// fresh ones from the source directory.
func (h *TrendHandler) Reload(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Reload(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"files":    len(snap.Files),
		"periods":  len(snap.Periods),
		"failures": snap.Failures,
	})
}

// mapServiceError translates service sentinel errors to API errors
func (h *TrendHandler) mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrNoData):
		return apierrors.ErrNoData
	case errors.Is(err, services.ErrQuestionNotFound):
		return apierrors.ErrQuestionNotFound
	case errors.Is(err, services.ErrNoTrendData):
		return apierrors.New(http.StatusNotFound, "NO_TREND_DATA", "No trend data available for the selected question")
	default:
		return err
	}
}
