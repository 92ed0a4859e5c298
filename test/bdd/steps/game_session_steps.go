package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/sc-commander/internal/application/common"
	"github.com/andrescamacho/sc-commander/internal/application/game"
	gameCommands "github.com/andrescamacho/sc-commander/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/sc-commander/internal/application/game/queries"
	"github.com/andrescamacho/sc-commander/internal/application/setup"
	"github.com/andrescamacho/sc-commander/internal/domain/scoreboard"
	"github.com/andrescamacho/sc-commander/internal/domain/shared"
	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
	"github.com/andrescamacho/sc-commander/test/helpers"
)

// gameSessionContext plays games through the mediator the way the CLI does,
// archiving into the shared test database
type gameSessionContext struct {
	mediator  common.Mediator
	store     *game.MemorySessionStore
	repo      scoreboard.Repository
	sessionID string
	last      *gameCommands.SubmitDecisionResponse
	err       error
}

func (gc *gameSessionContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	gc.mediator = common.NewMediator()
	gc.store = game.NewMemorySessionStore()
	gc.repo = helpers.NewTestRepositories().Scoreboard
	gc.sessionID = ""
	gc.last = nil
	gc.err = nil

	clock := shared.NewMockClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	return setup.NewHandlerRegistry(gc.store, gc.repo, clock).RegisterGameHandlers(gc.mediator)
}

// InitializeGameSessionScenario registers the application-level game steps
func InitializeGameSessionScenario(ctx *godog.ScenarioContext) {
	gc := &gameSessionContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, gc.reset()
	})

	ctx.Step(`^a new "([^"]*)" game with seed (\d+)$`, gc.aNewGameWithSeed)
	ctx.Step(`^the player submits (-?\d+) units by "([^"]*)"$`, gc.thePlayerSubmits)
	ctx.Step(`^the player orders (\d+) units every week until the game ends$`, gc.thePlayerOrdersUntilTheEnd)
	ctx.Step(`^the player buys market intelligence$`, gc.thePlayerBuysMarketIntelligence)
	ctx.Step(`^the game is reset to "([^"]*)"$`, gc.theGameIsResetTo)
	ctx.Step(`^the request should fail with "([^"]*)"$`, gc.theRequestShouldFailWith)
	ctx.Step(`^the game should be over after (\d+) weeks$`, gc.theGameShouldBeOverAfter)
	ctx.Step(`^the scoreboard should list (\d+) "([^"]*)" games?$`, gc.theScoreboardShouldList)
	ctx.Step(`^the archived game should have (\d+) weeks$`, gc.theArchivedGameShouldHaveWeeks)
	ctx.Step(`^the last settlement should charge (\d+) for intelligence$`, gc.theLastSettlementShouldCharge)
	ctx.Step(`^the snapshot should show week (\d+) of "([^"]*)"$`, gc.theSnapshotShouldShow)
	ctx.Step(`^the performance report should cover (\d+) weeks$`, gc.thePerformanceReportShouldCover)
}

func (gc *gameSessionContext) send(request common.Request) (common.Response, error) {
	return gc.mediator.Send(context.Background(), request)
}

func (gc *gameSessionContext) aNewGameWithSeed(variant string, seed int64) error {
	resp, err := gc.send(&gameCommands.StartGameCommand{Variant: variant, Seed: seed})
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	gc.sessionID = resp.(*gameCommands.StartGameResponse).SessionID
	return nil
}

func (gc *gameSessionContext) thePlayerSubmits(quantity int, mode string) error {
	shippingMode, err := simulation.ParseShippingMode(mode)
	if err != nil {
		return err
	}
	resp, err := gc.send(&gameCommands.SubmitDecisionCommand{
		SessionID:     gc.sessionID,
		OrderQuantity: quantity,
		ShippingMode:  shippingMode,
	})
	gc.err = err
	if err == nil {
		gc.last = resp.(*gameCommands.SubmitDecisionResponse)
	}
	return nil
}

func (gc *gameSessionContext) thePlayerOrdersUntilTheEnd(quantity int) error {
	for i := 0; i < 1000; i++ {
		resp, err := gc.send(&gameCommands.SubmitDecisionCommand{SessionID: gc.sessionID, OrderQuantity: quantity})
		if err != nil {
			return fmt.Errorf("week rejected: %w", err)
		}
		gc.last = resp.(*gameCommands.SubmitDecisionResponse)
		if gc.last.GameOver {
			return nil
		}
	}
	return fmt.Errorf("game never ended")
}

func (gc *gameSessionContext) thePlayerBuysMarketIntelligence() error {
	_, gc.err = gc.send(&gameCommands.BuyMarketIntelCommand{SessionID: gc.sessionID})
	return nil
}

func (gc *gameSessionContext) theGameIsResetTo(variant string) error {
	_, err := gc.send(&gameCommands.ResetGameCommand{SessionID: gc.sessionID, Variant: variant})
	return err
}

func (gc *gameSessionContext) theRequestShouldFailWith(fragment string) error {
	if gc.err == nil {
		return fmt.Errorf("expected an error containing %q", fragment)
	}
	if !strings.Contains(gc.err.Error(), fragment) {
		return fmt.Errorf("expected an error containing %q, got %v", fragment, gc.err)
	}
	return nil
}

func (gc *gameSessionContext) theGameShouldBeOverAfter(weeks int) error {
	if gc.last == nil || !gc.last.GameOver {
		return fmt.Errorf("expected the game to be over")
	}
	if gc.last.Report == nil || gc.last.Report.WeeksPlayed != weeks {
		return fmt.Errorf("expected a report covering %d weeks, got %+v", weeks, gc.last.Report)
	}
	return nil
}

func (gc *gameSessionContext) theScoreboardShouldList(count int, variant string) error {
	resp, err := gc.send(&gameQueries.ListScoresQuery{Variant: variant})
	if err != nil {
		return err
	}
	if got := len(resp.(*gameQueries.ListScoresResponse).Summaries); got != count {
		return fmt.Errorf("expected %d %s games on the scoreboard, got %d", count, variant, got)
	}
	return nil
}

func (gc *gameSessionContext) theArchivedGameShouldHaveWeeks(weeks int) error {
	resp, err := gc.send(&gameQueries.GetArchivedGameQuery{SessionID: gc.sessionID})
	if err != nil {
		return err
	}
	if got := len(resp.(*gameQueries.GetArchivedGameResponse).Turns); got != weeks {
		return fmt.Errorf("expected %d archived weeks, got %d", weeks, got)
	}
	return nil
}

func (gc *gameSessionContext) theLastSettlementShouldCharge(cost int) error {
	if gc.last == nil {
		return fmt.Errorf("no week has been settled")
	}
	return expectMoney("intelligence cost", float64(cost), gc.last.Result.Breakdown.IntelligenceCost)
}

func (gc *gameSessionContext) theSnapshotShouldShow(week int, variant string) error {
	resp, err := gc.send(&gameQueries.GetSnapshotQuery{SessionID: gc.sessionID})
	if err != nil {
		return err
	}
	view := resp.(*gameQueries.GetSnapshotResponse)
	if view.State.Week != week {
		return fmt.Errorf("expected week %d, got %d", week, view.State.Week)
	}
	if view.Info.Variant != variant {
		return fmt.Errorf("expected variant %s, got %s", variant, view.Info.Variant)
	}
	return nil
}

func (gc *gameSessionContext) thePerformanceReportShouldCover(weeks int) error {
	resp, err := gc.send(&gameQueries.GetPerformanceReportQuery{SessionID: gc.sessionID})
	if err != nil {
		return err
	}
	if got := resp.(*gameQueries.GetPerformanceReportResponse).Report.WeeksPlayed; got != weeks {
		return fmt.Errorf("expected a report covering %d weeks, got %d", weeks, got)
	}
	return nil
}
