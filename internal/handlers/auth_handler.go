package handlers

import (
	"net/http"

	"github.com/qflow/qflow-api/internal/api"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := h.Auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.AuthResponse{
		AccessToken: result.Token,
		UserID:      result.User.ID,
		Username:    result.User.Username,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.AuthResponse{
		AccessToken: result.Token,
		UserID:      result.User.ID,
		Username:    result.User.Username,
	})
}
