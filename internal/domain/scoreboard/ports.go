package scoreboard

import "context"

// Repository archives finished games
type Repository interface {
	// Save persists a summary together with its per-week records
	Save(ctx context.Context, summary *GameSummary, turns []TurnRecord) error

	// FindBySessionID returns the summary archived for a session
	FindBySessionID(ctx context.Context, sessionID string) (*GameSummary, error)

	// FindTop returns the best games ordered by final cash
	FindTop(ctx context.Context, opts QueryOptions) ([]*GameSummary, error)

	// FindTurns returns the archived weeks of a session in order
	FindTurns(ctx context.Context, sessionID string) ([]TurnRecord, error)
}

// QueryOptions filters leaderboard queries
type QueryOptions struct {
	Variant string // empty matches every variant
	Limit   int
}

// DefaultQueryOptions returns the top ten across all variants
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{Limit: 10}
}
