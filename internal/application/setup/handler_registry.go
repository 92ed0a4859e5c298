package setup

import (
	"fmt"

	"github.com/andrescamacho/sc-commander/internal/application/common"
	"github.com/andrescamacho/sc-commander/internal/application/game"
	gameCommands "github.com/andrescamacho/sc-commander/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/sc-commander/internal/application/game/queries"
	"github.com/andrescamacho/sc-commander/internal/domain/scoreboard"
	"github.com/andrescamacho/sc-commander/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	store      game.SessionStore
	scoreboard scoreboard.Repository
	clock      shared.Clock
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// A nil scoreboard disables archiving and the ListScores query.
func NewHandlerRegistry(store game.SessionStore, repo scoreboard.Repository, clock shared.Clock) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		store:      store,
		scoreboard: repo,
		clock:      clock,
	}
}

// RegisterGameHandlers registers every game command and query handler with the mediator
//
// This method registers:
//   - StartGameCommand → StartGameHandler
//   - SubmitDecisionCommand → SubmitDecisionHandler (archives finished games)
//   - BuyMarketIntelCommand → BuyMarketIntelHandler
//   - ResetGameCommand → ResetGameHandler
//   - GetSnapshotQuery → GetSnapshotHandler
//   - GetPerformanceReportQuery → GetPerformanceReportHandler
//   - ListScoresQuery → ListScoresHandler (only with a scoreboard)
//   - GetArchivedGameQuery → GetArchivedGameHandler (only with a scoreboard)
func (r *HandlerRegistry) RegisterGameHandlers(m common.Mediator) error {
	if err := common.RegisterHandler[*gameCommands.StartGameCommand](m, gameCommands.NewStartGameHandler(r.store, r.clock)); err != nil {
		return fmt.Errorf("failed to register StartGame handler: %w", err)
	}

	if err := common.RegisterHandler[*gameCommands.SubmitDecisionCommand](m, gameCommands.NewSubmitDecisionHandler(r.store, r.scoreboard, r.clock)); err != nil {
		return fmt.Errorf("failed to register SubmitDecision handler: %w", err)
	}

	if err := common.RegisterHandler[*gameCommands.BuyMarketIntelCommand](m, gameCommands.NewBuyMarketIntelHandler(r.store)); err != nil {
		return fmt.Errorf("failed to register BuyMarketIntel handler: %w", err)
	}

	if err := common.RegisterHandler[*gameCommands.ResetGameCommand](m, gameCommands.NewResetGameHandler(r.store)); err != nil {
		return fmt.Errorf("failed to register ResetGame handler: %w", err)
	}

	if err := common.RegisterHandler[*gameQueries.GetSnapshotQuery](m, gameQueries.NewGetSnapshotHandler(r.store)); err != nil {
		return fmt.Errorf("failed to register GetSnapshot handler: %w", err)
	}

	if err := common.RegisterHandler[*gameQueries.GetPerformanceReportQuery](m, gameQueries.NewGetPerformanceReportHandler(r.store)); err != nil {
		return fmt.Errorf("failed to register GetPerformanceReport handler: %w", err)
	}

	if r.scoreboard != nil {
		if err := common.RegisterHandler[*gameQueries.ListScoresQuery](m, gameQueries.NewListScoresHandler(r.scoreboard)); err != nil {
			return fmt.Errorf("failed to register ListScores handler: %w", err)
		}
		if err := common.RegisterHandler[*gameQueries.GetArchivedGameQuery](m, gameQueries.NewGetArchivedGameHandler(r.scoreboard)); err != nil {
			return fmt.Errorf("failed to register GetArchivedGame handler: %w", err)
		}
	}

	return nil
}
