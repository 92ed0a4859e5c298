package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/andrescamacho/sc-commander/internal/domain/scoreboard"
)

// MockScoreboardRepository is a test double for the scoreboard.Repository interface
type MockScoreboardRepository struct {
	mu        sync.RWMutex
	summaries []*scoreboard.GameSummary
	turns     map[string][]scoreboard.TurnRecord // sessionID -> latest archived weeks

	// SaveErr, when set, is returned by Save
	SaveErr error
}

// NewMockScoreboardRepository creates a new mock scoreboard repository
func NewMockScoreboardRepository() *MockScoreboardRepository {
	return &MockScoreboardRepository{
		turns: make(map[string][]scoreboard.TurnRecord),
	}
}

// Save archives a summary and its weeks
func (m *MockScoreboardRepository) Save(ctx context.Context, summary *scoreboard.GameSummary, turns []scoreboard.TurnRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.summaries = append(m.summaries, summary)
	m.turns[summary.SessionID()] = append([]scoreboard.TurnRecord(nil), turns...)
	return nil
}

// FindBySessionID returns the most recently saved summary for a session
func (m *MockScoreboardRepository) FindBySessionID(ctx context.Context, sessionID string) (*scoreboard.GameSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.summaries) - 1; i >= 0; i-- {
		if m.summaries[i].SessionID() == sessionID {
			return m.summaries[i], nil
		}
	}
	return nil, &scoreboard.ErrSummaryNotFound{SessionID: sessionID}
}

// FindTop returns summaries ordered by final cash
func (m *MockScoreboardRepository) FindTop(ctx context.Context, opts scoreboard.QueryOptions) ([]*scoreboard.GameSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*scoreboard.GameSummary
	for _, s := range m.summaries {
		if opts.Variant == "" || s.Variant() == opts.Variant {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FinalCash() > out[j].FinalCash() })
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// FindTurns returns the archived weeks of a session
func (m *MockScoreboardRepository) FindTurns(ctx context.Context, sessionID string) ([]scoreboard.TurnRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	turns, ok := m.turns[sessionID]
	if !ok {
		return nil, fmt.Errorf("no turns archived for session %s", sessionID)
	}
	return turns, nil
}

// Count returns how many summaries were saved
func (m *MockScoreboardRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.summaries)
}
