// internal/store/memory.go
//
// In-memory store for assisted solving sessions (a player feeding real game
// feedback to the solver round by round).
//
// Characteristics:
//   - Sessions keyed by ID in a map, guarded by an RWMutex.
//   - Save and Get copy the session, so callers never share mutable state.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

// ErrNotFound is returned for unknown session or run IDs.
var ErrNotFound = errors.New("not found")

// Session is the running state of one assisted game.
type Session struct {
	ID          string         `json:"sessionId"`
	Constraints constraint.Set `json:"constraints"`
	Turns       []game.Turn    `json:"turns"`
	Created     time.Time      `json:"created"`
}

// NewSession returns an all-unknown session for words of the given length.
func NewSession(id string, length int) *Session {
	return &Session{
		ID:          id,
		Constraints: constraint.New(length),
		Turns:       []game.Turn{},
		Created:     time.Now().UTC(),
	}
}

func (s *Session) clone() *Session {
	out := *s
	out.Constraints = s.Constraints.Clone()
	out.Turns = append([]game.Turn(nil), s.Turns...)
	return &out
}

// Store persists assisted sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s.clone()
	return nil
}

func (m *memory) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s.clone(), nil
	}
	return nil, ErrNotFound
}
