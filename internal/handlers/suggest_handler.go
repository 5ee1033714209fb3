package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

func (h *Handler) SuggestMessages(w http.ResponseWriter, r *http.Request) {
	if h.suggest == nil {
		respondError(w, http.StatusInternalServerError, "Suggestions are not configured")
		return
	}

	suggestions, err := h.suggest.SuggestMessages(r.Context())
	if err != nil {
		h.logger.Error("suggestions failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Error generating suggestions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"suggestions": suggestions,
	})
}
