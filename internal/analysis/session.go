package analysis

import (
	"sync"
	"time"

	"github.com/dishoutapp/dishout/internal/location"
	"github.com/dishoutapp/dishout/internal/order"
)

// Session holds one user's analysis state. All fields behind the mutex are
// reached through Service methods; the invocation token identifies the
// analysis currently allowed to mutate the session, so a late completion
// from before a Reset is discarded instead of overwriting newer state.
type Session struct {
	ID string

	mu        sync.Mutex
	state     State
	token     string
	result    *Result
	errMsg    string
	loc       *location.Coordinate
	imageURL  string
	pending   *order.PendingOrder
	createdAt time.Time
}

// Snapshot is a consistent, copyable view of a session.
type Snapshot struct {
	ID           string              `json:"id"`
	State        State               `json:"state"`
	Result       *Result             `json:"result,omitempty"`
	ErrorMessage string              `json:"errorMessage,omitempty"`
	ImageURL     string              `json:"imageUrl,omitempty"`
	PendingOrder *order.PendingOrder `json:"pendingOrder,omitempty"`
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:           s.ID,
		State:        s.state,
		ErrorMessage: s.errMsg,
		ImageURL:     s.imageURL,
	}
	if s.result != nil {
		result := *s.result
		snap.Result = &result
	}
	if s.pending != nil {
		pending := *s.pending
		snap.PendingOrder = &pending
	}
	return snap
}

func (s *Session) snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}
