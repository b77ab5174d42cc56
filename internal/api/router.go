package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter constructs the API router. Everything except /healthz,
// /token and /logout runs behind the bearer-auth middleware.
func NewRouter(h *HandlerProvider) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/healthz", HealthzHandler)
	r.Post("/token", h.LoginHandler)
	r.Post("/logout", h.LogoutHandler)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Post("/users", h.CreateUserHandler)
		r.Get("/users/me", h.MeHandler)
		r.Get("/users/me/children", h.ChildrenHandler)
		r.Get("/users/me/balance", h.BalanceHandler)
		r.Get("/users/me/transactions", h.TransactionsHandler)
		r.Get("/users/{username}/details", h.UserDetailsHandler)

		r.Post("/transfers", h.TransferHandler)

		r.Post("/bets", h.PlaceBetHandler)
		r.Get("/bets", h.ListBetsHandler)
	})

	return r
}
