package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/murmurapp/murmur/internal/services"
)

type contextKey string

const identityKey contextKey = "identity"

// RequireAuth resolves the bearer token into an Identity exactly once and
// threads it through the request context. Handlers behind it never see an
// unauthenticated request.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		identity, err := h.auth.Authenticate(r.Context(), token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFrom(ctx context.Context) (*services.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*services.Identity)
	return identity, ok
}
