package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/sc-commander/internal/application/common"
	"github.com/andrescamacho/sc-commander/internal/domain/scoreboard"
)

// ListScoresQuery reads the leaderboard
type ListScoresQuery struct {
	Variant string // empty lists every variant
	Limit   int    // 0 uses the default
}

// ListScoresResponse holds summaries ordered by final cash, best first
type ListScoresResponse struct {
	Summaries []*scoreboard.GameSummary
}

// ListScoresHandler handles the ListScores query
type ListScoresHandler struct {
	repo scoreboard.Repository
}

// NewListScoresHandler creates a new ListScoresHandler
func NewListScoresHandler(repo scoreboard.Repository) *ListScoresHandler {
	return &ListScoresHandler{repo: repo}
}

// Handle executes the ListScores query
func (h *ListScoresHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListScoresQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListScoresQuery")
	}

	opts := scoreboard.DefaultQueryOptions()
	opts.Variant = query.Variant
	if query.Limit > 0 {
		opts.Limit = query.Limit
	}

	summaries, err := h.repo.FindTop(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}

	return &ListScoresResponse{Summaries: summaries}, nil
}
