// internal/store/memory.go
//
// In-memory registry of live rounds.
//
// Characteristics:
//   - Sessions are keyed by ID in a map guarded by an RWMutex.
//   - Each Session carries its own mutex; the round engine itself is not
//     safe for concurrent use, so callers hold Session.Lock around Reset/Submit.
//   - State is lost when the process restarts.
//   - Sweep drops sessions older than a cutoff; the HTTP layer sweeps with the
//     round token lifetime, after which a session is unreachable.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordscramble/apps/go-server/internal/round"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Session is one player's round plus the mode it was started in.
type Session struct {
	mu        sync.Mutex
	ID        string
	Mode      string // "random" | "daily"
	Engine    *round.Engine
	CreatedAt time.Time
}

// NewSession wraps engine in a session with a fresh ID.
func NewSession(mode string, engine *round.Engine) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Mode:      mode,
		Engine:    engine,
		CreatedAt: time.Now().UTC(),
	}
}

// Lock serializes access to the session's engine.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// Store defines the persistence interface for round sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete drops a session. Missing IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Sweep deletes sessions created before cutoff and reports how many were removed.
	Sweep(ctx context.Context, cutoff time.Time) int

	// Len reports how many sessions are held.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	if s == nil || s.ID == "" {
		return errors.New("session id required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.RLock()
	var expired []string
	for id, s := range m.sessions {
		if s.CreatedAt.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range expired {
		_ = m.Delete(ctx, id)
	}
	return len(expired)
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
