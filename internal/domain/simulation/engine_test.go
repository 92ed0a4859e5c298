package simulation_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

func newEngine(t *testing.T, variant string, opts ...simulation.EngineOption) (*simulation.TurnEngine, simulation.Config) {
	t.Helper()
	cfg := simulation.MustPreset(variant)
	return simulation.NewTurnEngine(cfg, rand.New(rand.NewSource(42)), opts...), cfg
}

func TestTurnEngine_ClassicFirstWeek(t *testing.T) {
	// Arrange
	engine, cfg := newEngine(t, simulation.VariantClassic, simulation.WithDemandModel(simulation.FixedDemand(20)))
	state := simulation.NewGameState(cfg)

	// Act
	next, result, err := engine.Run(state, simulation.PlayerDecision{OrderQuantity: 20})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 20, result.Sales)
	assert.Equal(t, 0, result.MissedSales)
	assert.Equal(t, 0, result.Arrivals)
	assert.Equal(t, 30, result.EndingInventory)
	assert.Equal(t, 2000.0, result.Breakdown.Revenue)
	assert.Equal(t, 1200.0, result.Breakdown.ProcurementCost)
	assert.Equal(t, 150.0, result.Breakdown.HoldingCost)
	assert.Equal(t, 10000.0+(2000-1200-150), next.Cash)
	assert.Equal(t, 3, result.ArrivalWeek)
	assert.Equal(t, 2, next.Week)
	assert.Equal(t, 20, next.PipelineInventory())

	assert.Equal(t, 1, state.Week, "input state is never mutated")
	assert.Equal(t, 10000.0, state.Cash)
	assert.Empty(t, state.History)
}

func TestTurnEngine_OrderArrivesAfterLeadTime(t *testing.T) {
	engine, cfg := newEngine(t, simulation.VariantClassic, simulation.WithDemandModel(simulation.FixedDemand(0)))
	state := simulation.NewGameState(cfg)

	state, _, err := engine.Run(state, simulation.PlayerDecision{OrderQuantity: 40})
	require.NoError(t, err)
	state, week2, err := engine.Run(state, simulation.PlayerDecision{})
	require.NoError(t, err)
	_, week3, err := engine.Run(state, simulation.PlayerDecision{})
	require.NoError(t, err)

	assert.Equal(t, 0, week2.Arrivals)
	assert.Equal(t, 40, week3.Arrivals)
	assert.Equal(t, 90, week3.EndingInventory)
}

func TestTurnEngine_CongestionDelaysNextSeaOrder(t *testing.T) {
	// Arrange
	engine, cfg := newEngine(t, simulation.VariantCongestion, simulation.WithDemandModel(simulation.FixedDemand(20)))
	state := simulation.NewGameState(cfg)

	// Act
	state, first, err := engine.Run(state, simulation.PlayerDecision{OrderQuantity: 80})
	require.NoError(t, err)
	_, second, err := engine.Run(state, simulation.PlayerDecision{OrderQuantity: 10})
	require.NoError(t, err)

	// Assert
	assert.True(t, first.CongestionNext)
	assert.True(t, state.CongestionActive)
	assert.Equal(t, cfg.Shipping.BaseLeadTime, first.EffectiveLeadTime)
	assert.Equal(t, cfg.Shipping.BaseLeadTime+1, second.EffectiveLeadTime)
	assert.Equal(t, 2+cfg.Shipping.BaseLeadTime+1, second.ArrivalWeek)
	assert.False(t, second.CongestionNext)
}

func TestTurnEngine_AirIgnoresCongestion(t *testing.T) {
	engine, cfg := newEngine(t, simulation.VariantCongestion, simulation.WithDemandModel(simulation.FixedDemand(20)))
	state := simulation.NewGameState(cfg)

	state, _, err := engine.Run(state, simulation.PlayerDecision{OrderQuantity: 61})
	require.NoError(t, err)
	_, air, err := engine.Run(state, simulation.PlayerDecision{OrderQuantity: 10, ShippingMode: simulation.ShippingModeAir})
	require.NoError(t, err)

	assert.Equal(t, cfg.Shipping.AirLeadTime, air.EffectiveLeadTime)
	assert.Equal(t, cfg.Shipping.AirFreightCost*10+air.MarketPrice*10, air.Breakdown.ProcurementCost)
}

func TestTurnEngine_ThresholdOrderDoesNotCongest(t *testing.T) {
	engine, cfg := newEngine(t, simulation.VariantCongestion)
	state := simulation.NewGameState(cfg)

	next, result, err := engine.Run(state, simulation.PlayerDecision{OrderQuantity: cfg.Congestion.UpstreamCapacityThreshold})

	require.NoError(t, err)
	assert.False(t, result.CongestionNext)
	assert.False(t, next.CongestionActive)
}

func TestTurnEngine_RedKpiFineUsesPostUpdateScore(t *testing.T) {
	// Arrange
	engine, cfg := newEngine(t, simulation.VariantReputation, simulation.WithDemandModel(simulation.FixedDemand(100)))
	state := simulation.NewGameState(cfg)
	state.KpiScore = 50

	// Act
	_, result, err := engine.Run(state, simulation.PlayerDecision{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 45, result.KpiScore)
	assert.Equal(t, cfg.Kpi.Fines.Red, result.Breakdown.KpiFine)
	assert.Equal(t, 50, result.MissedSales)
	assert.Equal(t, 5000.0-500.0-800.0, result.NetProfit)
}

func TestTurnEngine_OverflowPenalty(t *testing.T) {
	engine, cfg := newEngine(t, simulation.VariantShipping, simulation.WithDemandModel(simulation.FixedDemand(20)))
	state := simulation.NewGameState(cfg)
	state.Inventory = cfg.Warehouse.Capacity + 30

	_, result, err := engine.Run(state, simulation.PlayerDecision{})

	require.NoError(t, err)
	assert.True(t, result.Overflow)
	assert.Equal(t, 10, result.Breakdown.OverflowUnits)
	assert.Equal(t, 10*cfg.Warehouse.OverflowPenaltyPerUnit, result.Breakdown.OverflowPenalty)
}

func TestTurnEngine_PortStrikeRaisesLeadTimePermanently(t *testing.T) {
	engine, cfg := newEngine(t, simulation.VariantClassic, simulation.WithDemandModel(simulation.FixedDemand(10)))
	state := simulation.NewGameState(cfg)

	var results []simulation.TurnResult
	for i := 0; i < 14; i++ {
		var r simulation.TurnResult
		var err error
		state, r, err = engine.Run(state, simulation.PlayerDecision{OrderQuantity: 10})
		require.NoError(t, err)
		results = append(results, r)
	}

	assert.Equal(t, 2, results[10].EffectiveLeadTime)
	assert.True(t, results[11].BlackSwan)
	assert.Equal(t, []string{"port-strike"}, results[11].EventIDs())
	assert.Equal(t, 3, results[11].EffectiveLeadTime)
	assert.Equal(t, 3, results[13].EffectiveLeadTime)
	assert.Equal(t, 3, state.LeadTimeBase)
}

func TestTurnEngine_OneShotEventOnlyDelaysItsWeek(t *testing.T) {
	engine, cfg := newEngine(t, simulation.VariantCongestion, simulation.WithDemandModel(simulation.FixedDemand(10)))
	state := simulation.NewGameState(cfg)

	var results []simulation.TurnResult
	for i := 0; i < 7; i++ {
		var r simulation.TurnResult
		var err error
		state, r, err = engine.Run(state, simulation.PlayerDecision{OrderQuantity: 10})
		require.NoError(t, err)
		results = append(results, r)
	}

	assert.Equal(t, cfg.Shipping.BaseLeadTime+2, results[5].EffectiveLeadTime)
	assert.False(t, results[5].BlackSwan)
	assert.Equal(t, cfg.Shipping.BaseLeadTime, results[6].EffectiveLeadTime)
}

func TestTurnEngine_RejectsInvalidDecisions(t *testing.T) {
	classic, classicCfg := newEngine(t, simulation.VariantClassic)
	state := simulation.NewGameState(classicCfg)

	tests := []struct {
		name     string
		decision simulation.PlayerDecision
		field    string
	}{
		{"negative quantity", simulation.PlayerDecision{OrderQuantity: -1}, "order_quantity"},
		{"above maximum", simulation.PlayerDecision{OrderQuantity: classicCfg.MaxOrderQuantity + 1}, "order_quantity"},
		{"air without shipping modes", simulation.PlayerDecision{OrderQuantity: 1, ShippingMode: simulation.ShippingModeAir}, "shipping_mode"},
		{"unknown mode", simulation.PlayerDecision{ShippingMode: simulation.ShippingMode(9)}, "shipping_mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _, err := classic.Run(state, tt.decision)

			require.ErrorIs(t, err, simulation.ErrInvalidDecision)
			var invalid *simulation.InvalidDecisionError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
			assert.Equal(t, state, next)
		})
	}
}

func TestTurnEngine_IntelChargeSettledOnce(t *testing.T) {
	engine, cfg := newEngine(t, simulation.VariantClassic, simulation.WithDemandModel(simulation.FixedDemand(0)))
	state := simulation.NewGameState(cfg)
	state.MarketIntelActive = true
	state.IntelChargePending = cfg.Intel.Cost

	state, first, err := engine.Run(state, simulation.PlayerDecision{})
	require.NoError(t, err)
	_, second, err := engine.Run(state, simulation.PlayerDecision{})
	require.NoError(t, err)

	assert.Equal(t, cfg.Intel.Cost, first.Breakdown.IntelligenceCost)
	assert.Zero(t, second.Breakdown.IntelligenceCost)
	assert.Zero(t, state.IntelChargePending)
}
