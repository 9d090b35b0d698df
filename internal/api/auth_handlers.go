package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dishoutapp/dishout/internal/auth"
)

type loginRequest struct {
	Email string `json:"email"`
}

func (app *App) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	user, err := app.Auth.Login(r.Context(), req.Email)
	switch {
	case errors.Is(err, auth.ErrInvalidEmail):
		app.writeError(w, http.StatusBadRequest, "A valid email address is required")
		return
	case err != nil:
		log.Printf("[API] Login failed: %v", err)
		app.writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	app.writeJSON(w, http.StatusOK, user)
}

func (app *App) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.Auth.Logout(r.Context()); err != nil {
		log.Printf("[API] Logout failed: %v", err)
		app.writeError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *App) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := app.Auth.Current(r.Context())
	if err != nil {
		log.Printf("[API] Loading current user failed: %v", err)
		app.writeError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}
	if user == nil {
		app.writeError(w, http.StatusNotFound, "Not logged in")
		return
	}
	app.writeJSON(w, http.StatusOK, user)
}
