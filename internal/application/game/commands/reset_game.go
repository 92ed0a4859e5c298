package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/sc-commander/internal/application/common"
	"github.com/andrescamacho/sc-commander/internal/application/game"
	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

// ResetGameCommand restarts a session at week 1
type ResetGameCommand struct {
	SessionID string
	Variant   string // Optional: switch to another preset
}

// ResetGameResponse carries the fresh state
type ResetGameResponse struct {
	State simulation.GameState
}

// ResetGameHandler handles the ResetGame command
type ResetGameHandler struct {
	store game.SessionStore
}

// NewResetGameHandler creates a new ResetGameHandler
func NewResetGameHandler(store game.SessionStore) *ResetGameHandler {
	return &ResetGameHandler{store: store}
}

// Handle executes the ResetGame command
func (h *ResetGameHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ResetGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ResetGameCommand")
	}

	response := &ResetGameResponse{}
	err := h.store.WithSession(cmd.SessionID, func(session *simulation.GameSession) error {
		if cmd.Variant == "" {
			response.State = session.Reset()
			return nil
		}
		cfg, err := simulation.Preset(cmd.Variant)
		if err != nil {
			return err
		}
		state, err := session.ResetWith(cfg)
		if err != nil {
			return fmt.Errorf("invalid game rules: %w", err)
		}
		response.State = state
		return nil
	})
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "game reset", map[string]interface{}{
		"session_id": cmd.SessionID,
		"variant":    cmd.Variant,
	})

	return response, nil
}
