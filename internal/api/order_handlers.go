package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dishoutapp/dishout/internal/analysis"
	"github.com/dishoutapp/dishout/internal/order"
	"github.com/dishoutapp/dishout/internal/phone"
)

type placeOrderRequest struct {
	PlaceTitle string `json:"placeTitle"`
	Phone      string `json:"phone"`
}

type confirmOrderRequest struct {
	Provider string `json:"provider"`
}

// PlaceOrderHandler stages an order against one of the places in the current
// results. Places without a dialable number are rejected up front, matching
// the disabled state of their order buttons.
func (app *App) PlaceOrderHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	if !phone.Usable(phone.Normalize(req.Phone, app.Plan)) {
		app.writeError(w, http.StatusBadRequest, "This place has no usable phone number")
		return
	}

	err := app.Analysis.SetPendingOrder(sessionID, order.PendingOrder{
		Phone:           req.Phone,
		RestaurantTitle: req.PlaceTitle,
	})
	switch {
	case errors.Is(err, analysis.ErrSessionNotFound):
		app.writeError(w, http.StatusNotFound, "Session not found")
		return
	case errors.Is(err, analysis.ErrNotReady):
		app.writeError(w, http.StatusConflict, "No analysis results to order from")
		return
	case err != nil:
		log.Printf("[API] Failed to stage order for session %s: %v", sessionID, err)
		app.writeError(w, http.StatusInternalServerError, "Failed to stage order")
		return
	}

	snap, err := app.Analysis.Get(sessionID)
	if err != nil {
		app.writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	app.writeJSON(w, http.StatusOK, snap)
}

// ConfirmOrderHandler turns the staged order plus a chosen delivery provider
// into a WhatsApp deep link. The staged order is consumed either way.
func (app *App) ConfirmOrderHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req confirmOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}
	if req.Provider == "" {
		app.writeError(w, http.StatusBadRequest, "A delivery provider is required")
		return
	}

	orderCtx, err := app.Analysis.TakePendingOrder(sessionID)
	switch {
	case errors.Is(err, analysis.ErrSessionNotFound):
		app.writeError(w, http.StatusNotFound, "Session not found")
		return
	case errors.Is(err, analysis.ErrNoPendingOrder):
		app.writeError(w, http.StatusConflict, "No pending order to confirm")
		return
	case err != nil:
		log.Printf("[API] Failed to confirm order for session %s: %v", sessionID, err)
		app.writeError(w, http.StatusInternalServerError, "Failed to confirm order")
		return
	}

	var userEmail string
	if user, err := app.Auth.Current(r.Context()); err == nil && user != nil {
		userEmail = user.Email
	}

	link := app.Orders.Confirm(orderCtx.Pending, orderCtx.DishName, req.Provider, orderCtx.ImageURL, userEmail, orderCtx.Location)
	app.writeJSON(w, http.StatusOK, map[string]string{"whatsappUrl": link})
}

func (app *App) CancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	if err := app.Analysis.CancelPendingOrder(sessionID); err != nil {
		app.writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	snap, err := app.Analysis.Get(sessionID)
	if err != nil {
		app.writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	app.writeJSON(w, http.StatusOK, snap)
}
