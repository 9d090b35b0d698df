package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", PingHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", app.CreateSessionHandler)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", app.GetSessionHandler)
			r.Post("/analyze", app.AnalyzeHandler)
			r.Post("/reset", app.ResetHandler)
			r.Post("/order", app.PlaceOrderHandler)
			r.Post("/order/confirm", app.ConfirmOrderHandler)
			r.Post("/order/cancel", app.CancelOrderHandler)
		})

		r.Get("/trending", app.TrendingHandler)
		r.Get("/providers", app.ProvidersHandler)

		r.Post("/auth/login", app.LoginHandler)
		r.Post("/auth/logout", app.LogoutHandler)
		r.Get("/auth/me", app.CurrentUserHandler)
	})

	return r
}
