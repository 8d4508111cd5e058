// Package session holds the complete per-user mutable conversation state
// and the process-wide store that hands it out.
package session

import (
	"sync"
	"time"

	"github.com/floralab/bloombot/internal/flow"
	"github.com/floralab/bloombot/internal/nav"
)

// Delivery is the address a checkout will ship to.
type Delivery struct {
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Session is one user's conversation state: where they are in the menu
// tree, how they got there, and any guided flow they have in progress.
//
// The dispatcher locks a session for the duration of one event, so fields
// need no locking of their own; distinct users proceed concurrently.
type Session struct {
	mu sync.Mutex

	UserID    int64
	Nav       nav.State
	Flow      *flow.State
	Cart      []flow.Bouquet
	Pending   *flow.Bouquet // finalized bouquet awaiting cart_add
	Delivery  *Delivery
	Preset    string // occasion selected on the AI menu
	CreatedAt time.Time
}

// New returns a fresh session positioned on the home screen.
func New(userID int64) *Session {
	return &Session{
		UserID:    userID,
		Nav:       nav.NewState(),
		CreatedAt: time.Now().UTC(),
	}
}

// Lock serializes event handling for this user. Events for the same user
// are processed to completion one at a time.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-user serialization lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Reset returns the session to the home screen and discards navigation
// history and any active guided flow. Cart contents survive: only
// conversation position is reset, not the user's shopping state.
func (s *Session) Reset() {
	s.Nav.Reset()
	s.Flow = nil
	s.Preset = ""
}

// Jump enters a top-level sibling area (for example admin) that keeps its
// own stack namespace. Like Reset, it abandons any active guided flow.
func (s *Session) Jump(target nav.Screen) {
	s.Nav.Jump(target)
	s.Flow = nil
	s.Preset = ""
}

// AbandonFlow discards the active guided flow, if any, leaving navigation
// untouched. Collected step values are lost.
func (s *Session) AbandonFlow() {
	s.Flow = nil
}
