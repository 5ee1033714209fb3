package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/murmurapp/murmur/internal/services"
)

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.accounts.SignUp(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case err == nil:
		respondSuccess(w, http.StatusCreated, "User registered successfully, please verify your email")
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("signup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Error registering user")
	}
}

type verifyCodeRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

func (h *Handler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.accounts.VerifyCode(r.Context(), req.Username, req.Code)
	switch {
	case err == nil:
		respondSuccess(w, http.StatusOK, "Account verified")
	case errors.Is(err, services.ErrUserNotFound):
		respondError(w, http.StatusBadRequest, "User not found")
	case errors.Is(err, services.ErrCodeExpired):
		respondError(w, http.StatusBadRequest, "Code expired")
	case errors.Is(err, services.ErrInvalidCode):
		respondError(w, http.StatusBadRequest, "Invalid code")
	case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("verify code failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Error verifying user")
	}
}

func (h *Handler) CheckUsernameUnique(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	available, err := h.accounts.IsUsernameAvailable(r.Context(), username)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.logger.Error("username check failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Error checking username")
	case !available:
		respondError(w, http.StatusBadRequest, "Username already exists")
	default:
		respondSuccess(w, http.StatusOK, "Username is available")
	}
}
