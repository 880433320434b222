package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/qflow/qflow-api/internal/api"
	"github.com/qflow/qflow-api/internal/auth"
	"github.com/qflow/qflow-api/internal/domain/qna"
)

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logH.Error("error encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, api.ErrorResponse{Code: statusCode, Message: message})
}

// writeDomainError maps the error taxonomy onto HTTP status codes. The
// wrapped message is surfaced as-is; services phrase them for clients.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, qna.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, qna.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, qna.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, qna.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrUsernameExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredential):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		logH.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
