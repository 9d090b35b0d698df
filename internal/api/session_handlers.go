package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dishoutapp/dishout/internal/analysis"
	"github.com/dishoutapp/dishout/internal/location"
)

func (app *App) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	snap := app.Analysis.CreateSession()
	app.writeJSON(w, http.StatusCreated, snap)
}

func (app *App) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := app.Analysis.Get(chi.URLParam(r, "id"))
	if err != nil {
		app.writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	app.writeJSON(w, http.StatusOK, snap)
}

// AnalyzeHandler accepts either a multipart photo (field "dish") or a form
// field "query", plus optional lat/lng, and kicks off the analysis. The
// caller polls the session for the outcome.
func (app *App) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var imageData []byte
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadSize)
		if err := r.ParseMultipartForm(app.MaxUploadSize); err != nil {
			app.writeError(w, http.StatusBadRequest, "Upload too large or malformed")
			return
		}

		file, _, err := r.FormFile("dish")
		if err == nil {
			defer file.Close()
			imageData, err = io.ReadAll(file)
			if err != nil {
				app.writeError(w, http.StatusBadRequest, "Failed to read image")
				return
			}
		}
	} else if err := r.ParseForm(); err != nil {
		app.writeError(w, http.StatusBadRequest, "Malformed request")
		return
	}

	query := r.FormValue("query")
	if len(imageData) == 0 && query == "" {
		app.writeError(w, http.StatusBadRequest, "Provide a dish photo or a query")
		return
	}

	loc := parseCoordinate(r.FormValue("lat"), r.FormValue("lng"))

	var err error
	if len(imageData) > 0 {
		err = app.Analysis.StartImage(sessionID, imageData, loc)
	} else {
		err = app.Analysis.StartQuery(sessionID, query, loc)
	}

	switch {
	case errors.Is(err, analysis.ErrSessionNotFound):
		app.writeError(w, http.StatusNotFound, "Session not found")
		return
	case errors.Is(err, analysis.ErrBusy):
		app.writeError(w, http.StatusConflict, "An analysis is already in progress")
		return
	case err != nil:
		log.Printf("[API] Failed to start analysis for session %s: %v", sessionID, err)
		app.writeError(w, http.StatusInternalServerError, "Failed to start analysis")
		return
	}

	snap, err := app.Analysis.Get(sessionID)
	if err != nil {
		app.writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	app.writeJSON(w, http.StatusAccepted, snap)
}

func (app *App) ResetHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := app.Analysis.Reset(chi.URLParam(r, "id"))
	if err != nil {
		app.writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	app.writeJSON(w, http.StatusOK, snap)
}

// parseCoordinate returns nil unless both values parse; a half-specified
// location is treated as none at all.
func parseCoordinate(latStr, lngStr string) *location.Coordinate {
	if latStr == "" || lngStr == "" {
		return nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil
	}
	return &location.Coordinate{Latitude: lat, Longitude: lng}
}
