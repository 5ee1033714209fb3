package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/murmurapp/murmur/internal/services"
)

// Suggester is what the suggestions endpoint needs from the completion
// service.
type Suggester interface {
	SuggestMessages(ctx context.Context) ([]string, error)
}

type Handler struct {
	accounts *services.AccountService
	inbox    *services.InboxService
	auth     *services.AuthService
	suggest  Suggester
	logger   *zap.Logger
}

func NewHandler(
	accounts *services.AccountService,
	inbox *services.InboxService,
	auth *services.AuthService,
	suggest Suggester,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		accounts: accounts,
		inbox:    inbox,
		auth:     auth,
		suggest:  suggest,
		logger:   logger,
	}
}

func (h *Handler) Routes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.Route("/api", func(r chi.Router) {
		r.Post("/signUp", h.SignUp)
		r.Post("/signIn", h.SignIn)
		r.Post("/verifyCode", h.VerifyCode)
		r.Get("/checkUsernameUnique", h.CheckUsernameUnique)
		r.Post("/sendMessages", h.SendMessage)
		r.Post("/suggestMessages", h.SuggestMessages)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuth)
			r.Post("/signOut", h.SignOut)
			r.Post("/signOutAll", h.SignOutAll)
			r.Get("/getMessages", h.GetMessages)
			r.Delete("/deleteMessage/{messageID}", h.DeleteMessage)
			r.Get("/acceptMessage", h.GetAcceptMessage)
			r.Post("/acceptMessage", h.UpdateAcceptMessage)
		})
	})

	return router
}
