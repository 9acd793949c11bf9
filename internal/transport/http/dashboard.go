package http

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	apierrors "retropulse/internal/errors"
	"retropulse/internal/services"
	"retropulse/internal/survey"
	"retropulse/internal/trend"
)

//go:embed templates/*.html.tmpl
var templateFiles embed.FS

// DashboardHandler renders the interactive dashboard page
type DashboardHandler struct {
	service      *services.TrendService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	tmpl         *template.Template
}

// NewDashboardHandler creates the dashboard handler with its embedded template
func NewDashboardHandler(service *services.TrendService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) (*DashboardHandler, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/dashboard.html.tmpl")
	if err != nil {
		return nil, err
	}

	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		tmpl:         tmpl,
	}, nil
}

// dashboardData is what the dashboard template renders
type dashboardData struct {
	HasData          bool
	Summary          trend.Summary
	Categories       []trend.Category
	Failures         []survey.LoadFailure
	SelectedQuestion string
	Trend            *services.TrendResult
	TrendJSON        template.JS
	CountsJSON       template.JS
	ExportURL        string
	TrendError       string
}

// ServeHTTP handles GET /?question=...
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{TrendJSON: "null", CountsJSON: "null"}

	summary, err := h.service.Summary()
	if err == nil {
		data.HasData = true
		data.Summary = summary
		data.Failures = h.service.Snapshot().Failures

		if categories, err := h.service.Questions(); err == nil {
			data.Categories = categories
		}

		if counts, err := h.service.Counts(); err == nil {
			if encoded, err := json.Marshal(counts); err == nil {
				data.CountsJSON = template.JS(encoded)
			}
		}

		question := r.URL.Query().Get("question")
		if question != "" {
			data.SelectedQuestion = question
			result, err := h.service.Trend(question)
			switch {
			case err == nil:
				data.Trend = result
				data.ExportURL = "/api/trend/export?question=" + url.QueryEscape(question)
				if encoded, err := json.Marshal(result); err == nil {
					data.TrendJSON = template.JS(encoded)
				}
			case errors.Is(err, services.ErrQuestionNotFound):
				data.TrendError = "That question is not present in any loaded period."
			case errors.Is(err, services.ErrNoTrendData):
				data.TrendError = "No trend data available for the selected question."
			default:
				h.errorHandler.HandleError(w, r, err)
				return
			}
		}
	} else if !errors.Is(err, services.ErrNoData) {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render dashboard", "error", err.Error())
	}
}
