package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/murmurapp/murmur/internal/models"
	"github.com/murmurapp/murmur/internal/services"
)

type sendMessageRequest struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		respondError(w, http.StatusBadRequest, "Username is required")
		return
	}

	err := h.inbox.SendMessage(r.Context(), req.Username, req.Content)
	switch {
	case err == nil:
		respondSuccess(w, http.StatusOK, "Message sent successfully")
	case errors.Is(err, services.ErrInvalidContent):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrNotAccepting):
		respondError(w, http.StatusForbidden, "User is not accepting messages")
	default:
		h.logger.Error("send message failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Error sending message")
	}
}

func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	messages, err := h.inbox.ListMessages(r.Context(), identity.UserID)
	switch {
	case err == nil:
		if messages == nil {
			messages = []*models.Message{}
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"messages": messages,
		})
	case errors.Is(err, services.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	default:
		h.logger.Error("list messages failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Error fetching messages")
	}
}

func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	messageID, err := uuid.Parse(chi.URLParam(r, "messageID"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Message not found or already deleted")
		return
	}

	err = h.inbox.DeleteMessage(r.Context(), identity.UserID, messageID)
	switch {
	case err == nil:
		respondSuccess(w, http.StatusOK, "Message deleted successfully")
	case errors.Is(err, services.ErrMessageNotFound):
		respondError(w, http.StatusNotFound, "Message not found or already deleted")
	default:
		h.logger.Error("delete message failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Error deleting message")
	}
}

func (h *Handler) GetAcceptMessage(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accepting, err := h.inbox.GetAcceptingMessages(r.Context(), identity.UserID)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]any{
			"success":             true,
			"isAcceptingMessages": accepting,
		})
	case errors.Is(err, services.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	default:
		h.logger.Error("get acceptance failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Error fetching user")
	}
}

type updateAcceptMessageRequest struct {
	AcceptMessages *bool `json:"acceptMessages"`
}

func (h *Handler) UpdateAcceptMessage(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req updateAcceptMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AcceptMessages == nil {
		respondError(w, http.StatusBadRequest, "acceptMessages is required")
		return
	}

	err := h.inbox.SetAcceptingMessages(r.Context(), identity.UserID, *req.AcceptMessages)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]any{
			"success":             true,
			"message":             "Message acceptance updated",
			"isAcceptingMessages": *req.AcceptMessages,
		})
	case errors.Is(err, services.ErrUpdateFailed):
		respondError(w, http.StatusBadRequest, "Failed to update user")
	default:
		h.logger.Error("update acceptance failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Error updating user")
	}
}
