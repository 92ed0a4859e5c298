package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

// ErrSessionNotFound is returned for unknown session IDs
var ErrSessionNotFound = errors.New("game session not found")

// SessionInfo describes a stored session without exposing its state
type SessionInfo struct {
	ID        string
	Variant   string
	Seed      int64
	StartedAt time.Time
}

// SessionStore keeps live game sessions keyed by ID
type SessionStore interface {
	// Create stores a session and returns its new ID
	Create(session *simulation.GameSession, seed int64, startedAt time.Time) (string, error)

	// WithSession runs fn while holding the session's lock
	WithSession(id string, fn func(session *simulation.GameSession) error) error

	// Info returns the metadata of a session
	Info(id string) (SessionInfo, error)

	// Delete forgets a session
	Delete(id string) error

	// Count returns the number of live sessions
	Count() int
}

type sessionEntry struct {
	mu      sync.Mutex
	info    SessionInfo
	session *simulation.GameSession
}

// MemorySessionStore is a SessionStore backed by a map.
// Calls for different sessions proceed in parallel; calls for the same session are serialized.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*sessionEntry),
	}
}

func (s *MemorySessionStore) Create(session *simulation.GameSession, seed int64, startedAt time.Time) (string, error) {
	if session == nil {
		return "", fmt.Errorf("session cannot be nil")
	}

	id := uuid.New().String()
	entry := &sessionEntry{
		info: SessionInfo{
			ID:        id,
			Variant:   session.Config().Variant,
			Seed:      seed,
			StartedAt: startedAt,
		},
		session: session,
	}

	s.mu.Lock()
	s.sessions[id] = entry
	s.mu.Unlock()

	return id, nil
}

func (s *MemorySessionStore) WithSession(id string, fn func(session *simulation.GameSession) error) error {
	entry, err := s.lookup(id)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := fn(entry.session); err != nil {
		return err
	}
	entry.info.Variant = entry.session.Config().Variant
	return nil
}

func (s *MemorySessionStore) Info(id string) (SessionInfo, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return SessionInfo{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.info, nil
}

func (s *MemorySessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

func (s *MemorySessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemorySessionStore) lookup(id string) (*sessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return entry, nil
}
