package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qflow/qflow-api/internal/adapter"
)

// GetJobStatus returns the stored state of a background job.
func (h *Handler) GetJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	if jobID == "" {
		writeError(w, http.StatusBadRequest, "job id is required")
		return
	}

	result, found := h.Jobs.GetJob(r.Context(), jobID)
	if !found {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, adapter.ToJobResponse(result))
}
