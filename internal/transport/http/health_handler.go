package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"retropulse/internal/services"
)

// HealthHandler reports process liveness and basic load state
type HealthHandler struct {
	service *services.TrendService
	started time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service *services.TrendService) *HealthHandler {
	return &HealthHandler{service: service, started: time.Now()}
}

// ServeHTTP handles GET /healthz
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Snapshot()

	render.JSON(w, r, map[string]interface{}{
		"status":  "ok",
		"uptime":  time.Since(h.started).String(),
		"periods": len(snap.Periods),
		"loaded":  !snap.Empty(),
	})
}
