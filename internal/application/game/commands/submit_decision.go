package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/sc-commander/internal/adapters/metrics"
	"github.com/andrescamacho/sc-commander/internal/application/common"
	"github.com/andrescamacho/sc-commander/internal/application/game"
	"github.com/andrescamacho/sc-commander/internal/domain/scoreboard"
	"github.com/andrescamacho/sc-commander/internal/domain/shared"
	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

// SubmitDecisionCommand plays one week of a session
type SubmitDecisionCommand struct {
	SessionID     string
	OrderQuantity int
	ShippingMode  simulation.ShippingMode
}

// SubmitDecisionResponse carries the settled week and the state after it
type SubmitDecisionResponse struct {
	Result   simulation.TurnResult
	State    simulation.GameState
	GameOver bool
	Report   *simulation.PerformanceReport // set on the final week
	Summary  *scoreboard.GameSummary       // set when the game was archived
}

// SubmitDecisionHandler handles the SubmitDecision command
type SubmitDecisionHandler struct {
	store      game.SessionStore
	scoreboard scoreboard.Repository // Optional: nil skips archiving
	clock      shared.Clock
}

// NewSubmitDecisionHandler creates a new SubmitDecisionHandler
func NewSubmitDecisionHandler(store game.SessionStore, repo scoreboard.Repository, clock shared.Clock) *SubmitDecisionHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &SubmitDecisionHandler{
		store:      store,
		scoreboard: repo,
		clock:      clock,
	}
}

// Handle executes the SubmitDecision command
func (h *SubmitDecisionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SubmitDecisionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SubmitDecisionCommand")
	}

	logger := common.LoggerFromContext(ctx)
	response := &SubmitDecisionResponse{}
	var variant string
	var history []simulation.TurnResult

	err := h.store.WithSession(cmd.SessionID, func(session *simulation.GameSession) error {
		result, err := session.Submit(simulation.PlayerDecision{
			OrderQuantity: cmd.OrderQuantity,
			ShippingMode:  cmd.ShippingMode,
		})
		if err != nil {
			return err
		}

		variant = session.Config().Variant
		response.Result = result
		response.State = session.Snapshot()
		response.GameOver = session.IsTerminal()
		if response.GameOver {
			history = response.State.History
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, simulation.ErrInvalidDecision) {
			logger.Log(common.LevelWarn, "decision rejected", map[string]interface{}{
				"session_id": cmd.SessionID,
				"quantity":   cmd.OrderQuantity,
				"mode":       cmd.ShippingMode.Name(),
				"error":      err.Error(),
			})
		}
		return nil, err
	}

	result := response.Result
	logger.Log(common.LevelDebug, "week settled", map[string]interface{}{
		"session_id": cmd.SessionID,
		"week":       result.Week,
		"demand":     result.Demand,
		"sales":      result.Sales,
		"missed":     result.MissedSales,
		"net_profit": result.NetProfit,
		"cash":       result.CashAfter,
		"events":     result.EventIDs(),
	})
	metrics.RecordTurn(cmd.SessionID, variant, result)

	if !response.GameOver {
		return response, nil
	}

	report := simulation.BuildReport(history)
	response.Report = &report
	metrics.RecordGameCompleted(cmd.SessionID, variant, report)

	logger.Log(common.LevelInfo, "game completed", map[string]interface{}{
		"session_id": cmd.SessionID,
		"variant":    variant,
		"final_cash": report.FinalCash,
		"fill_rate":  report.FillRate,
		"bullwhip":   report.BullwhipRatio,
		"weeks":      report.WeeksPlayed,
	})

	if h.scoreboard == nil {
		return response, nil
	}

	summary, err := scoreboard.NewGameSummary(cmd.SessionID, variant, report, h.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to create game summary: %w", err)
	}
	if err := h.scoreboard.Save(ctx, summary, scoreboard.TurnRecordsFromHistory(history)); err != nil {
		logger.Log(common.LevelError, "failed to archive game", map[string]interface{}{
			"session_id": cmd.SessionID,
			"error":      err.Error(),
		})
		return response, nil
	}
	response.Summary = summary

	return response, nil
}
