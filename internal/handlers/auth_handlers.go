package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/murmurapp/murmur/internal/services"
)

type signInRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Identifier == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Identifier and password are required")
		return
	}

	resp, err := h.auth.Login(r.Context(), services.LoginRequest{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"message":   "Signed in",
			"token":     resp.Token,
			"expiresAt": resp.ExpiresAt,
			"username":  resp.Username,
		})
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrNotVerified):
		respondError(w, http.StatusUnauthorized, err.Error())
	default:
		h.logger.Error("sign in failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Error signing in")
	}
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.auth.Logout(r.Context(), identity); err != nil {
		h.logger.Error("sign out failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Error signing out")
		return
	}
	respondSuccess(w, http.StatusOK, "Signed out")
}

func (h *Handler) SignOutAll(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.auth.LogoutAll(r.Context(), identity); err != nil {
		h.logger.Error("sign out all failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Error signing out")
		return
	}
	respondSuccess(w, http.StatusOK, "Signed out everywhere")
}
