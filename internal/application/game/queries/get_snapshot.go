package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/sc-commander/internal/application/common"
	"github.com/andrescamacho/sc-commander/internal/application/game"
	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

// GetSnapshotQuery reads the current state of a session
type GetSnapshotQuery struct {
	SessionID string
}

// GetSnapshotResponse is a read-only view for rendering
type GetSnapshotResponse struct {
	Info        game.SessionInfo
	State       simulation.GameState
	Config      simulation.Config
	Forecast    []simulation.ForecastHint
	KpiBand     simulation.KpiBand
	SeaLeadTime int
	AirLeadTime int
}

// GetSnapshotHandler handles the GetSnapshot query
type GetSnapshotHandler struct {
	store game.SessionStore
}

// NewGetSnapshotHandler creates a new GetSnapshotHandler
func NewGetSnapshotHandler(store game.SessionStore) *GetSnapshotHandler {
	return &GetSnapshotHandler{store: store}
}

// Handle executes the GetSnapshot query
func (h *GetSnapshotHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetSnapshotQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSnapshotQuery")
	}

	info, err := h.store.Info(query.SessionID)
	if err != nil {
		return nil, err
	}

	response := &GetSnapshotResponse{Info: info}
	err = h.store.WithSession(query.SessionID, func(session *simulation.GameSession) error {
		response.State = session.Snapshot()
		response.Config = session.Config()
		response.Forecast = session.Forecast()
		response.KpiBand = session.KpiBand()
		response.SeaLeadTime = session.EffectiveLeadTime(simulation.ShippingModeSea)
		if response.Config.Capabilities.HasShippingModes {
			response.AirLeadTime = session.EffectiveLeadTime(simulation.ShippingModeAir)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}
