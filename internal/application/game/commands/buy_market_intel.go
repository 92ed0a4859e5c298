package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/sc-commander/internal/application/common"
	"github.com/andrescamacho/sc-commander/internal/application/game"
	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

// BuyMarketIntelCommand purchases forecast hints for a session
type BuyMarketIntelCommand struct {
	SessionID string
}

// BuyMarketIntelResponse carries the hints unlocked by the purchase
type BuyMarketIntelResponse struct {
	Cost     float64
	Forecast []simulation.ForecastHint
	State    simulation.GameState
}

// BuyMarketIntelHandler handles the BuyMarketIntel command
type BuyMarketIntelHandler struct {
	store game.SessionStore
}

// NewBuyMarketIntelHandler creates a new BuyMarketIntelHandler
func NewBuyMarketIntelHandler(store game.SessionStore) *BuyMarketIntelHandler {
	return &BuyMarketIntelHandler{store: store}
}

// Handle executes the BuyMarketIntel command
func (h *BuyMarketIntelHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*BuyMarketIntelCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuyMarketIntelCommand")
	}

	response := &BuyMarketIntelResponse{}
	err := h.store.WithSession(cmd.SessionID, func(session *simulation.GameSession) error {
		if err := session.BuyMarketIntel(); err != nil {
			return err
		}
		response.Cost = session.Config().Intel.Cost
		response.Forecast = session.Forecast()
		response.State = session.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "market intelligence purchased", map[string]interface{}{
		"session_id": cmd.SessionID,
		"cost":       response.Cost,
		"week":       response.State.Week,
	})

	return response, nil
}
