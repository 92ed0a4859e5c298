package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/sc-commander/internal/application/common"
	"github.com/andrescamacho/sc-commander/internal/application/game"
	"github.com/andrescamacho/sc-commander/internal/domain/shared"
	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

// StartGameCommand starts a new session
type StartGameCommand struct {
	Variant string
	Seed    int64              // 0 picks a seed from the clock
	Rules   *simulation.Config // Optional: replaces the variant preset entirely
}

// StartGameResponse carries the new session's ID and opening state
type StartGameResponse struct {
	SessionID string
	Seed      int64
	State     simulation.GameState
	Config    simulation.Config
}

// StartGameHandler handles the StartGame command
type StartGameHandler struct {
	store game.SessionStore
	clock shared.Clock
}

// NewStartGameHandler creates a new StartGameHandler
func NewStartGameHandler(store game.SessionStore, clock shared.Clock) *StartGameHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &StartGameHandler{
		store: store,
		clock: clock,
	}
}

// Handle executes the StartGame command
func (h *StartGameHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*StartGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *StartGameCommand")
	}

	var cfg simulation.Config
	if cmd.Rules != nil {
		cfg = cmd.Rules.Clone()
		if cfg.Variant == "" {
			cfg.Variant = cmd.Variant
		}
	} else {
		preset, err := simulation.Preset(cmd.Variant)
		if err != nil {
			return nil, err
		}
		cfg = preset
	}

	seed := cmd.Seed
	if seed == 0 {
		seed = h.clock.Now().UnixNano()
	}

	session, err := simulation.NewGameSession(cfg, shared.NewRandomSource(seed))
	if err != nil {
		return nil, fmt.Errorf("invalid game rules: %w", err)
	}

	sessionID, err := h.store.Create(session, seed, h.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "game started", map[string]interface{}{
		"session_id": sessionID,
		"variant":    cfg.Variant,
		"seed":       seed,
		"horizon":    cfg.HorizonWeeks,
	})

	return &StartGameResponse{
		SessionID: sessionID,
		Seed:      seed,
		State:     session.Snapshot(),
		Config:    session.Config(),
	}, nil
}
