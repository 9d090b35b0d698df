package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dishoutapp/dishout/internal/ai"
	"github.com/dishoutapp/dishout/internal/analysis"
	"github.com/dishoutapp/dishout/internal/api"
	"github.com/dishoutapp/dishout/internal/auth"
	"github.com/dishoutapp/dishout/internal/kvstore"
	"github.com/dishoutapp/dishout/internal/order"
	"github.com/dishoutapp/dishout/internal/phone"
	"github.com/dishoutapp/dishout/internal/trending"
)

// scriptedModel plays back a canned grounded answer, recording what it was
// asked. It stands in for the Gemini upstream so the whole HTTP-to-storage
// path runs for real.
type scriptedModel struct {
	mu       sync.Mutex
	text     string
	chunks   []ai.GroundingChunk
	requests []ai.Request
}

func (m *scriptedModel) Generate(ctx context.Context, req ai.Request) (*ai.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	return &ai.Response{Text: m.text, Chunks: m.chunks}, nil
}

type TestServer struct {
	Server *httptest.Server
	App    *api.App
	KV     *kvstore.Store
	Model  *scriptedModel
	DBPath string
}

func setupTestServer(t *testing.T) *TestServer {
	t.Helper()
	return setupTestServerAt(t, filepath.Join(t.TempDir(), "test.db"))
}

// setupTestServerAt builds the server against a specific database file so a
// test can simulate a restart over the same persisted state.
func setupTestServerAt(t *testing.T, dbPath string) *TestServer {
	t.Helper()

	kv, err := kvstore.Open(kvstore.Config{
		Type:       "sqlite",
		SQLitePath: dbPath,
	})
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}

	model := &scriptedModel{
		text: "**Shawarma Deluxe**\nJuicy marinated chicken with garlic sauce.\nAl Mallah is a local institution. Phone: +971 4 398 4723\nShawarma Station never disappoints. Phone: +971 50 123 4567",
		chunks: []ai.GroundingChunk{
			{Maps: &ai.MapsSource{URI: "https://maps.example/al-mallah", Title: "Al Mallah"}},
			{Maps: &ai.MapsSource{URI: "https://maps.example/shawarma-station", Title: "Shawarma Station"}},
			{Web: &ai.WebSource{URI: "https://example.com/article", Title: "Best shawarma 2025"}},
		},
	}

	trendingStore := trending.NewStore(kv, trending.DefaultPolicy())

	app := &api.App{
		Analysis:      analysis.NewService(model, trendingStore, nil, nil),
		Trending:      trendingStore,
		Auth:          auth.NewService(kv),
		Orders:        order.NewService(phone.DefaultPlan(), nil),
		Plan:          phone.DefaultPlan(),
		MaxUploadSize: 10 * 1024 * 1024,
	}

	router := api.NewRouter(app)
	server := httptest.NewServer(router)

	return &TestServer{
		Server: server,
		App:    app,
		KV:     kv,
		Model:  model,
		DBPath: dbPath,
	}
}

func (ts *TestServer) Cleanup() {
	ts.Server.Close()
	ts.KV.Close()
}

func createDishUpload(t *testing.T, lat, lng string) (*bytes.Buffer, string) {
	t.Helper()

	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("dish", "dish.png")
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := io.Copy(part, &img); err != nil {
		t.Fatalf("Failed to write image: %v", err)
	}

	if lat != "" {
		writer.WriteField("lat", lat)
		writer.WriteField("lng", lng)
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}

	return body, writer.FormDataContentType()
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func createSession(t *testing.T, ts *TestServer) string {
	t.Helper()
	resp := postJSON(t, ts.Server.URL+"/api/sessions", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201 creating session, got %d", resp.StatusCode)
	}
	var snap analysis.Snapshot
	decodeJSON(t, resp, &snap)
	return snap.ID
}

func waitForOutcome(t *testing.T, ts *TestServer, sessionID string) analysis.Snapshot {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(ts.Server.URL + "/api/sessions/" + sessionID)
		if err != nil {
			t.Fatalf("GET session failed: %v", err)
		}
		var snap analysis.Snapshot
		decodeJSON(t, resp, &snap)
		if snap.State == analysis.StateResults || snap.State == analysis.StateError {
			return snap
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("Session never left the analyzing state")
	return analysis.Snapshot{}
}
