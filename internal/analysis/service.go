package analysis

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dishoutapp/dishout/internal/ai"
	"github.com/dishoutapp/dishout/internal/imaging"
	"github.com/dishoutapp/dishout/internal/location"
	"github.com/dishoutapp/dishout/internal/order"
	"github.com/dishoutapp/dishout/internal/places"
)

// Uploader pushes the canonical image somewhere shareable. Its result
// arrives asynchronously and is attached to the session if it lands before
// the next reset.
type Uploader interface {
	Upload(ctx context.Context, imageJPEG []byte) (string, error)
}

// Recorder notes a resolved dish term for trending. Called fire-and-forget.
type Recorder interface {
	Record(ctx context.Context, term string) error
}

// Service drives the end-to-end pipeline: image normalization, best-effort
// geolocation, grounded model invocation, answer parsing, place enrichment
// and the state transition.
type Service struct {
	model     ai.GroundedModel
	recorder  Recorder
	uploader  Uploader
	locator   location.Locator
	extractor places.PhoneExtractor

	locationTimeout time.Duration
	uploadTimeout   time.Duration

	sessionsMu sync.RWMutex
	sessions   map[string]*Session
}

func NewService(model ai.GroundedModel, recorder Recorder, uploader Uploader, locator location.Locator) *Service {
	return &Service{
		model:           model,
		recorder:        recorder,
		uploader:        uploader,
		locator:         locator,
		extractor:       places.NewWindowExtractor(),
		locationTimeout: 5 * time.Second,
		uploadTimeout:   30 * time.Second,
		sessions:        make(map[string]*Session),
	}
}

// CreateSession registers a fresh Idle session.
func (s *Service) CreateSession() Snapshot {
	session := &Session{
		ID:        uuid.New().String(),
		state:     StateIdle,
		token:     uuid.New().String(),
		createdAt: time.Now(),
	}

	s.sessionsMu.Lock()
	s.sessions[session.ID] = session
	s.sessionsMu.Unlock()

	return session.snapshot()
}

// Get returns a snapshot of the session.
func (s *Service) Get(sessionID string) (Snapshot, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return session.snapshot(), nil
}

// AnalyzeImage runs the full pipeline for a captured image and blocks until
// the session reaches Results or Error. A conversion failure is terminal
// and reported both in the returned error and the session state.
func (s *Service) AnalyzeImage(ctx context.Context, sessionID string, raw []byte, loc *location.Coordinate) (Snapshot, error) {
	session, token, err := s.begin(sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	if err := s.runImage(ctx, session, token, raw, loc); err != nil {
		return session.snapshot(), err
	}
	return session.snapshot(), nil
}

// AnalyzeQuery runs the pipeline for a free-text dish query.
func (s *Service) AnalyzeQuery(ctx context.Context, sessionID, query string, loc *location.Coordinate) (Snapshot, error) {
	session, token, err := s.begin(sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	s.run(ctx, session, token, ai.Request{Query: query}, loc)
	return session.snapshot(), nil
}

// StartImage is the non-blocking variant of AnalyzeImage: the pipeline runs
// in the background and callers poll the session for the outcome.
func (s *Service) StartImage(sessionID string, raw []byte, loc *location.Coordinate) error {
	session, token, err := s.begin(sessionID)
	if err != nil {
		return err
	}

	go func() {
		if err := s.runImage(context.Background(), session, token, raw, loc); err != nil {
			log.Printf("[ANALYSIS] Image analysis for session %s ended with: %v", session.ID, err)
		}
	}()
	return nil
}

// StartQuery is the non-blocking variant of AnalyzeQuery.
func (s *Service) StartQuery(sessionID, query string, loc *location.Coordinate) error {
	session, token, err := s.begin(sessionID)
	if err != nil {
		return err
	}

	go s.run(context.Background(), session, token, ai.Request{Query: query}, loc)
	return nil
}

// Reset returns the session to Idle, clearing result, error, preview and
// pending order. The invocation token is rotated so any analysis still in
// flight completes into the void.
func (s *Service) Reset(sessionID string) (Snapshot, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.state = StateIdle
	session.token = uuid.New().String()
	session.result = nil
	session.errMsg = ""
	session.imageURL = ""
	session.pending = nil
	session.loc = nil
	return session.snapshotLocked(), nil
}

func (s *Service) lookup(sessionID string) (*Session, error) {
	s.sessionsMu.RLock()
	session, exists := s.sessions[sessionID]
	s.sessionsMu.RUnlock()
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// begin gates a new capture: allowed from Idle, Results and Error, never
// while a previous analysis is still in flight.
func (s *Service) begin(sessionID string) (*Session, string, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, "", err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.state == StateAnalyzing {
		return nil, "", ErrBusy
	}

	token := uuid.New().String()
	session.state = StateAnalyzing
	session.token = token
	session.result = nil
	session.errMsg = ""
	session.imageURL = ""
	session.pending = nil
	return session, token, nil
}

func (s *Service) runImage(ctx context.Context, session *Session, token string, raw []byte, loc *location.Coordinate) error {
	jpegData, err := imaging.ToJPEG(bytes.NewReader(raw))
	if err != nil {
		log.Printf("[ANALYSIS] Image conversion failed for session %s: %v", session.ID, err)
		s.fail(session, token, conversionFailedMessage)
		return fmt.Errorf("image conversion: %w", err)
	}

	// The shareable upload runs alongside the model call and is never
	// awaited; its URL is attached whenever it lands.
	if s.uploader != nil {
		go func() {
			uploadCtx, cancel := context.WithTimeout(context.Background(), s.uploadTimeout)
			defer cancel()
			url, err := s.uploader.Upload(uploadCtx, jpegData)
			if err != nil {
				log.Printf("[ANALYSIS] Background image upload failed: %v", err)
				return
			}
			s.attachImageURL(session, token, url)
		}()
	}

	s.run(ctx, session, token, ai.Request{ImageJPEG: jpegData}, loc)
	return nil
}

func (s *Service) run(ctx context.Context, session *Session, token string, req ai.Request, loc *location.Coordinate) {
	resolved := s.resolveLocation(ctx, loc)
	if resolved != nil {
		req.Location = &ai.Location{Latitude: resolved.Latitude, Longitude: resolved.Longitude}
		s.setLocation(session, token, resolved)
	}

	resp, err := s.model.Generate(ctx, req)
	if err != nil {
		log.Printf("[ANALYSIS] Model call failed for session %s: %v", session.ID, err)
		s.fail(session, token, analysisFailedMessage)
		return
	}

	dishName, description := parseAnswer(resp.Text)
	records := places.FromChunks(resp.Text, resp.Chunks, s.extractor)

	result := &Result{
		DishName:    dishName,
		Description: description,
		Places:      records,
		RawText:     resp.Text,
	}

	if s.recorder != nil && dishName != "" {
		go func() {
			recordCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.recorder.Record(recordCtx, dishName); err != nil {
				log.Printf("[ANALYSIS] Trending record failed for %q: %v", dishName, err)
			}
		}()
	}

	s.complete(session, token, result)
}

// resolveLocation makes the single best-effort geolocation attempt. Any
// failure leaves the pipeline running without a location bias.
func (s *Service) resolveLocation(ctx context.Context, loc *location.Coordinate) *location.Coordinate {
	if loc != nil {
		return loc
	}
	if s.locator == nil {
		return nil
	}

	locCtx, cancel := context.WithTimeout(ctx, s.locationTimeout)
	defer cancel()

	coord, err := s.locator.Locate(locCtx)
	if err != nil {
		log.Printf("[ANALYSIS] Proceeding without location: %v", err)
		return nil
	}
	return &coord
}

func (s *Service) complete(session *Session, token string, result *Result) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.token != token || session.state != StateAnalyzing {
		log.Printf("[ANALYSIS] Discarding stale result for session %s", session.ID)
		return
	}

	session.state = StateResults
	session.result = result
	session.errMsg = ""
}

func (s *Service) fail(session *Session, token string, message string) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.token != token || session.state != StateAnalyzing {
		log.Printf("[ANALYSIS] Discarding stale failure for session %s", session.ID)
		return
	}

	session.state = StateError
	session.errMsg = message
	session.result = nil
}

// attachImageURL records the shareable link. Unlike complete/fail it only
// checks the token: the upload usually finishes after the transition to
// Results and must still attach then.
func (s *Service) attachImageURL(session *Session, token, url string) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.token != token || url == "" {
		return
	}
	session.imageURL = url
}

func (s *Service) setLocation(session *Session, token string, loc *location.Coordinate) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.token != token {
		return
	}
	coord := *loc
	session.loc = &coord
}

// OrderContext is everything the order bridge needs from a session at
// confirmation time.
type OrderContext struct {
	Pending  order.PendingOrder
	DishName string
	ImageURL string
	Location *location.Coordinate
}

// SetPendingOrder stores the place selection made from the results view.
func (s *Service) SetPendingOrder(sessionID string, pending order.PendingOrder) error {
	session, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.state != StateResults {
		return ErrNotReady
	}

	if pending.RestaurantTitle == "" {
		pending.RestaurantTitle = "Unknown Restaurant"
	}
	session.pending = &pending
	return nil
}

// TakePendingOrder consumes the pending order for confirmation.
func (s *Service) TakePendingOrder(sessionID string) (OrderContext, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return OrderContext{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.pending == nil {
		return OrderContext{}, ErrNoPendingOrder
	}

	orderCtx := OrderContext{
		Pending:  *session.pending,
		DishName: "Unknown Dish",
		ImageURL: session.imageURL,
	}
	if session.result != nil && session.result.DishName != "" {
		orderCtx.DishName = session.result.DishName
	}
	if session.loc != nil {
		coord := *session.loc
		orderCtx.Location = &coord
	}

	session.pending = nil
	return orderCtx, nil
}

// CancelPendingOrder discards the pending order without confirming.
func (s *Service) CancelPendingOrder(sessionID string) error {
	session, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.pending = nil
	return nil
}
