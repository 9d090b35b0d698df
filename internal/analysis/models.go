package analysis

import (
	"errors"

	"github.com/dishoutapp/dishout/internal/places"
)

// State is the explicit application state. Exactly one is active per
// session; transitions are the only way result and error fields are
// populated, so stale results are never shown alongside an error.
type State string

const (
	StateIdle      State = "IDLE"
	StateAnalyzing State = "ANALYZING"
	StateResults   State = "RESULTS"
	StateError     State = "ERROR"
)

// Result is one completed dish analysis. It replaces the previous result
// entirely; there is no history.
type Result struct {
	DishName    string          `json:"dishName"`
	Description string          `json:"description"`
	Places      []places.Record `json:"places"`
	RawText     string          `json:"rawText"`
}

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrBusy            = errors.New("analysis already in progress")
	ErrNotReady        = errors.New("no analysis results to order from")
	ErrNoPendingOrder  = errors.New("no pending order")
)

// User-facing messages for the two terminal failures. Upstream error
// internals are never leaked; recovery is always "try again".
const (
	analysisFailedMessage   = "Failed to analyze dish. Please check your API key and connection."
	conversionFailedMessage = "Unable to process this image format. Please try a standard JPEG or PNG."
)
