package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/dishoutapp/dishout/internal/analysis"
	"github.com/dishoutapp/dishout/internal/auth"
	"github.com/dishoutapp/dishout/internal/order"
	"github.com/dishoutapp/dishout/internal/phone"
	"github.com/dishoutapp/dishout/internal/trending"
)

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

type App struct {
	Analysis  *analysis.Service
	Trending  *trending.Store
	Auth      *auth.Service
	Orders    *order.Service
	Providers map[string][]string
	Plan      phone.Plan

	MaxUploadSize int64
}

func (app *App) TrendingHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := app.Trending.List(r.Context())
	if err != nil {
		log.Printf("[API] Trending list failed: %v", err)
		app.writeError(w, http.StatusInternalServerError, "Failed to load trending dishes")
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (app *App) ProvidersHandler(w http.ResponseWriter, r *http.Request) {
	providers := app.Providers
	if providers == nil {
		providers = order.DefaultProviders()
	}

	region, list := order.ProvidersFor(providers, r.URL.Query().Get("region"))
	app.writeJSON(w, http.StatusOK, map[string]any{
		"region":    region,
		"providers": list,
	})
}

func (app *App) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func (app *App) writeError(w http.ResponseWriter, status int, message string) {
	app.writeJSON(w, status, map[string]string{"error": message})
}
