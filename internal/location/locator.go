package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org/search"

// ErrUnavailable is returned when no coordinates could be resolved. Callers
// treat it as soft: analysis proceeds without a location bias.
var ErrUnavailable = errors.New("location unavailable")

// Coordinate is a best-effort geographic position.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Locator resolves an approximate position for the current request. It is
// consulted once per analysis, with a bounded timeout, and only when the
// caller supplied no explicit coordinates.
type Locator interface {
	Locate(ctx context.Context) (Coordinate, error)
}

// NominatimLocator geocodes a configured fallback area (e.g. "Dubai") via
// OSM Nominatim. It stands in for device geolocation when a client sends no
// coordinates of its own.
type NominatimLocator struct {
	httpClient *http.Client
	baseURL    string
	area       string
}

func NewNominatimLocator(area string) *NominatimLocator {
	return &NominatimLocator{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultNominatimURL,
		area:       area,
	}
}

// coordinate tolerates Nominatim returning lat/lon as strings or numbers.
type coordinate float64

func (c *coordinate) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return fmt.Errorf("parse coordinate %q: %w", text, err)
		}
		*c = coordinate(value)
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err == nil {
		*c = coordinate(value)
		return nil
	}

	return fmt.Errorf("coordinate must be a string or number")
}

type nominatimResult struct {
	Lat coordinate `json:"lat"`
	Lon coordinate `json:"lon"`
}

func (l *NominatimLocator) Locate(ctx context.Context) (Coordinate, error) {
	if l.area == "" {
		return Coordinate{}, ErrUnavailable
	}

	query := url.Values{}
	query.Set("q", l.area)
	query.Set("format", "json")
	uri := l.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return Coordinate{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "dishout/1.0")

	res, err := l.httpClient.Do(req)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return Coordinate{}, ErrUnavailable
	}

	var payload []nominatimResult
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return Coordinate{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(payload) == 0 {
		return Coordinate{}, ErrUnavailable
	}

	return Coordinate{
		Latitude:  float64(payload[0].Lat),
		Longitude: float64(payload[0].Lon),
	}, nil
}
