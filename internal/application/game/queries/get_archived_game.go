package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/sc-commander/internal/application/common"
	"github.com/andrescamacho/sc-commander/internal/domain/scoreboard"
)

// GetArchivedGameQuery reads a finished game back from the scoreboard
type GetArchivedGameQuery struct {
	SessionID string
}

// GetArchivedGameResponse carries the summary and its weeks in order
type GetArchivedGameResponse struct {
	Summary *scoreboard.GameSummary
	Turns   []scoreboard.TurnRecord
}

// GetArchivedGameHandler handles the GetArchivedGame query
type GetArchivedGameHandler struct {
	repo scoreboard.Repository
}

// NewGetArchivedGameHandler creates a new GetArchivedGameHandler
func NewGetArchivedGameHandler(repo scoreboard.Repository) *GetArchivedGameHandler {
	return &GetArchivedGameHandler{repo: repo}
}

// Handle executes the GetArchivedGame query
func (h *GetArchivedGameHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetArchivedGameQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetArchivedGameQuery")
	}

	summary, err := h.repo.FindBySessionID(ctx, query.SessionID)
	if err != nil {
		return nil, err
	}

	turns, err := h.repo.FindTurns(ctx, query.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load archived turns: %w", err)
	}

	return &GetArchivedGameResponse{Summary: summary, Turns: turns}, nil
}
