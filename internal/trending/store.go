package trending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"

	"github.com/dishoutapp/dishout/internal/kvstore"
)

const (
	documentName    = "dishout_trending"
	documentVersion = 1

	listLimit       = 6
	minTermLen      = 3
	recordIncrement = 5
	basePopularity  = 50
)

// Entry is one trending dish query. Identity for merge purposes is the
// case-insensitive display name.
type Entry struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Query      string `json:"query" yaml:"query"`
	Image      string `json:"image" yaml:"image"`
	Popularity int    `json:"popularity" yaml:"popularity"`
}

type document struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// Store ranks dish queries by popularity, persisting the whole collection
// as one document after every mutation.
type Store struct {
	mu     sync.Mutex
	kv     *kvstore.Store
	policy Policy
}

func NewStore(kv *kvstore.Store, policy Policy) *Store {
	return &Store{kv: kv, policy: policy}
}

// List returns the trending entries ordered by descending popularity,
// capped at the display limit. Repeated calls without an intervening Record
// return identical, identically-ordered results.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Popularity != entries[j].Popularity {
			return entries[i].Popularity > entries[j].Popularity
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	if len(entries) > listLimit {
		entries = entries[:listLimit]
	}

	return entries, nil
}

// Record notes one user interaction with a dish term: an existing entry
// (matched case-insensitively) gains a fixed increment, a novel term is
// inserted at the base popularity. Terms too short to be meaningful are
// ignored.
func (s *Store) Record(ctx context.Context, term string) error {
	term = strings.TrimSpace(term)
	if len(term) < minTermLen {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return err
	}

	matched := false
	for i := range entries {
		if strings.EqualFold(entries[i].Name, term) {
			entries[i].Popularity += recordIncrement
			matched = true
			break
		}
	}

	if !matched {
		name := titleCase(term)
		entries = append(entries, Entry{
			ID:         uuid.New().String(),
			Name:       name,
			Query:      fmt.Sprintf("Find top rated %s near me", name),
			Image:      s.imageFor(term),
			Popularity: basePopularity,
		})
	}

	return s.save(ctx, entries)
}

// load reads the persisted collection and appends any seed defaults missing
// from it, so defaults survive even if storage lost them individually.
func (s *Store) load(ctx context.Context) ([]Entry, error) {
	var entries []Entry

	payload, err := s.kv.Get(ctx, documentName)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		// First load: seed only.
	case err != nil:
		return nil, fmt.Errorf("failed to load trending entries: %w", err)
	default:
		var doc document
		if err := json.Unmarshal([]byte(payload), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode trending entries: %w", err)
		}
		entries = doc.Entries
	}

	for _, seed := range s.policy.Seeds {
		found := false
		for _, entry := range entries {
			if strings.EqualFold(entry.Name, seed.Name) {
				found = true
				break
			}
		}
		if !found {
			entries = append(entries, seed)
		}
	}

	return entries, nil
}

func (s *Store) save(ctx context.Context, entries []Entry) error {
	payload, err := json.Marshal(document{Version: documentVersion, Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to encode trending entries: %w", err)
	}
	if err := s.kv.Put(ctx, documentName, string(payload)); err != nil {
		return fmt.Errorf("failed to persist trending entries: %w", err)
	}
	return nil
}

func (s *Store) imageFor(term string) string {
	lowered := strings.ToLower(term)
	for _, ki := range s.policy.KeywordImages {
		if strings.Contains(lowered, ki.Keyword) {
			return ki.Image
		}
	}
	return s.policy.FallbackImage
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
