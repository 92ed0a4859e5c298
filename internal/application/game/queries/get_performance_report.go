package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/sc-commander/internal/application/common"
	"github.com/andrescamacho/sc-commander/internal/application/game"
	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

// GetPerformanceReportQuery summarizes the weeks played so far
type GetPerformanceReportQuery struct {
	SessionID string
}

// GetPerformanceReportResponse carries the report and the history it was built from
type GetPerformanceReportResponse struct {
	Variant string
	Report  simulation.PerformanceReport
	History []simulation.TurnResult
}

// GetPerformanceReportHandler handles the GetPerformanceReport query
type GetPerformanceReportHandler struct {
	store game.SessionStore
}

// NewGetPerformanceReportHandler creates a new GetPerformanceReportHandler
func NewGetPerformanceReportHandler(store game.SessionStore) *GetPerformanceReportHandler {
	return &GetPerformanceReportHandler{store: store}
}

// Handle executes the GetPerformanceReport query
func (h *GetPerformanceReportHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetPerformanceReportQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPerformanceReportQuery")
	}

	response := &GetPerformanceReportResponse{}
	err := h.store.WithSession(query.SessionID, func(session *simulation.GameSession) error {
		response.Variant = session.Config().Variant
		response.History = session.History()
		return nil
	})
	if err != nil {
		return nil, err
	}

	response.Report = simulation.BuildReport(response.History)
	return response, nil
}
