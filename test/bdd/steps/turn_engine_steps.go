package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

// turnEngineContext drives a TurnEngine directly so scenarios can seed state
type turnEngineContext struct {
	cfg    simulation.Config
	engine *simulation.TurnEngine
	state  simulation.GameState
	result simulation.TurnResult
	err    error
}

func (tc *turnEngineContext) reset() {
	tc.cfg = simulation.Config{}
	tc.engine = nil
	tc.state = simulation.GameState{}
	tc.result = simulation.TurnResult{}
	tc.err = nil
}

// InitializeTurnEngineScenario registers the turn engine steps
func InitializeTurnEngineScenario(ctx *godog.ScenarioContext) {
	tc := &turnEngineContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^a "([^"]*)" game with fixed weekly demand of (\d+)$`, tc.aGameWithFixedDemand)
	ctx.Step(`^the KPI score is (\d+)$`, tc.theKpiScoreIs)
	ctx.Step(`^the inventory is (\d+)$`, tc.theInventoryIs)
	ctx.Step(`^the player orders (-?\d+) units by "([^"]*)"$`, tc.thePlayerOrders)
	ctx.Step(`^the player plays (\d+) weeks ordering (\d+) units$`, tc.thePlayerPlaysWeeks)
	ctx.Step(`^the turn should report:$`, tc.theTurnShouldReport)
	ctx.Step(`^cash should be (-?\d+)$`, tc.cashShouldBe)
	ctx.Step(`^the week should be (\d+)$`, tc.theWeekShouldBe)
	ctx.Step(`^congestion should be active for the next week$`, tc.congestionShouldBeActive)
	ctx.Step(`^congestion should not be active for the next week$`, tc.congestionShouldNotBeActive)
	ctx.Step(`^the lead time used should be (\d+)$`, tc.theLeadTimeUsedShouldBe)
	ctx.Step(`^the KPI score should be (\d+)$`, tc.theKpiScoreShouldBe)
	ctx.Step(`^the KPI fine should be (\d+)$`, tc.theKpiFineShouldBe)
	ctx.Step(`^the net profit should be (-?\d+)$`, tc.theNetProfitShouldBe)
	ctx.Step(`^the overflow penalty should be (\d+)$`, tc.theOverflowPenaltyShouldBe)
	ctx.Step(`^the event "([^"]*)" should have fired$`, tc.theEventShouldHaveFired)
	ctx.Step(`^the game should be terminal$`, tc.theGameShouldBeTerminal)
	ctx.Step(`^the decision should be rejected as invalid$`, tc.theDecisionShouldBeRejected)
}

func (tc *turnEngineContext) aGameWithFixedDemand(variant string, demand int) error {
	cfg, err := simulation.Preset(variant)
	if err != nil {
		return err
	}
	tc.cfg = cfg
	tc.engine = simulation.NewTurnEngine(cfg, rand.New(rand.NewSource(1)), simulation.WithDemandModel(simulation.FixedDemand(demand)))
	tc.state = simulation.NewGameState(cfg)
	return nil
}

func (tc *turnEngineContext) theKpiScoreIs(score int) error {
	tc.state.KpiScore = score
	return nil
}

func (tc *turnEngineContext) theInventoryIs(units int) error {
	tc.state.Inventory = units
	return nil
}

func (tc *turnEngineContext) thePlayerOrders(quantity int, mode string) error {
	shippingMode, err := simulation.ParseShippingMode(mode)
	if err != nil {
		return err
	}
	next, result, err := tc.engine.Run(tc.state, simulation.PlayerDecision{OrderQuantity: quantity, ShippingMode: shippingMode})
	tc.err = err
	if err != nil {
		return nil
	}
	tc.state = next
	tc.result = result
	return nil
}

func (tc *turnEngineContext) thePlayerPlaysWeeks(weeks, quantity int) error {
	for i := 0; i < weeks; i++ {
		if err := tc.thePlayerOrders(quantity, "SEA"); err != nil {
			return err
		}
		if tc.err != nil {
			return fmt.Errorf("week %d rejected: %w", tc.state.Week, tc.err)
		}
	}
	return nil
}

func (tc *turnEngineContext) theTurnShouldReport(table *godog.Table) error {
	if tc.err != nil {
		return fmt.Errorf("expected a settled turn but got error: %w", tc.err)
	}
	if len(table.Rows) < 2 {
		return fmt.Errorf("expected a header row and a value row")
	}
	actual := map[string]int{
		"sales":            tc.result.Sales,
		"missed_sales":     tc.result.MissedSales,
		"ending_inventory": tc.result.EndingInventory,
		"arrivals":         tc.result.Arrivals,
		"demand":           tc.result.Demand,
	}
	row := table.Rows[1]
	for _, header := range table.Rows[0].Cells {
		got, ok := actual[header.Value]
		if !ok {
			return fmt.Errorf("unknown column %q", header.Value)
		}
		want, err := strconv.Atoi(getCellValueFromTable(table, row, header.Value))
		if err != nil {
			return fmt.Errorf("column %s: %w", header.Value, err)
		}
		if got != want {
			return fmt.Errorf("expected %s to be %d, got %d", header.Value, want, got)
		}
	}
	return nil
}

func (tc *turnEngineContext) cashShouldBe(cash int) error {
	return expectMoney("cash", float64(cash), tc.state.Cash)
}

func (tc *turnEngineContext) theWeekShouldBe(week int) error {
	if tc.state.Week != week {
		return fmt.Errorf("expected week %d, got %d", week, tc.state.Week)
	}
	return nil
}

func (tc *turnEngineContext) congestionShouldBeActive() error {
	if !tc.result.CongestionNext || !tc.state.CongestionActive {
		return fmt.Errorf("expected congestion after ordering %d units", tc.result.OrderQuantity)
	}
	return nil
}

func (tc *turnEngineContext) congestionShouldNotBeActive() error {
	if tc.result.CongestionNext || tc.state.CongestionActive {
		return fmt.Errorf("expected no congestion after ordering %d units", tc.result.OrderQuantity)
	}
	return nil
}

func (tc *turnEngineContext) theLeadTimeUsedShouldBe(weeks int) error {
	if tc.result.EffectiveLeadTime != weeks {
		return fmt.Errorf("expected lead time %d, got %d", weeks, tc.result.EffectiveLeadTime)
	}
	return nil
}

func (tc *turnEngineContext) theKpiScoreShouldBe(score int) error {
	if tc.result.KpiScore != score {
		return fmt.Errorf("expected KPI %d, got %d", score, tc.result.KpiScore)
	}
	return nil
}

func (tc *turnEngineContext) theKpiFineShouldBe(fine int) error {
	return expectMoney("KPI fine", float64(fine), tc.result.Breakdown.KpiFine)
}

func (tc *turnEngineContext) theNetProfitShouldBe(profit int) error {
	return expectMoney("net profit", float64(profit), tc.result.NetProfit)
}

func (tc *turnEngineContext) theOverflowPenaltyShouldBe(penalty int) error {
	return expectMoney("overflow penalty", float64(penalty), tc.result.Breakdown.OverflowPenalty)
}

func (tc *turnEngineContext) theEventShouldHaveFired(id string) error {
	for _, fired := range tc.result.EventIDs() {
		if fired == id {
			return nil
		}
	}
	return fmt.Errorf("event %q did not fire in week %d (fired: %v)", id, tc.result.Week, tc.result.EventIDs())
}

func (tc *turnEngineContext) theGameShouldBeTerminal() error {
	if !tc.state.Terminal {
		return fmt.Errorf("expected terminal state at week %d", tc.state.Week)
	}
	return nil
}

func (tc *turnEngineContext) theDecisionShouldBeRejected() error {
	if tc.err == nil {
		return fmt.Errorf("expected the decision to be rejected")
	}
	if !errors.Is(tc.err, simulation.ErrInvalidDecision) {
		return fmt.Errorf("expected an invalid decision error, got %v", tc.err)
	}
	return nil
}

func expectMoney(what string, want, got float64) error {
	if math.Abs(want-got) > 0.005 {
		return fmt.Errorf("expected %s %.2f, got %.2f", what, want, got)
	}
	return nil
}
