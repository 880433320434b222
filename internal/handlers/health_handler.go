package handlers

import (
	"net/http"

	"github.com/qflow/qflow-api/internal/api"
)

// Health reports service liveness plus database reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "up"
	code := http.StatusOK
	if h.HealthCheck == nil {
		dbStatus = "unconfigured"
		code = http.StatusServiceUnavailable
	} else if err := h.HealthCheck(r.Context()); err != nil {
		logH.Error("health probe failed", "error", err)
		dbStatus = "down"
		code = http.StatusServiceUnavailable
	}

	status := "ok"
	if code != http.StatusOK {
		status = "degraded"
	}
	writeJSON(w, code, api.HealthResponse{Status: status, Database: dbStatus})
}
