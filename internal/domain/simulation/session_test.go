package simulation_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

func newSession(t *testing.T, variant string, seed int64, opts ...simulation.EngineOption) *simulation.GameSession {
	t.Helper()
	session, err := simulation.NewGameSession(simulation.MustPreset(variant), rand.New(rand.NewSource(seed)), opts...)
	require.NoError(t, err)
	return session
}

// playRandomGame submits random decisions until the session ends
func playRandomGame(t *testing.T, session *simulation.GameSession, seed int64) {
	t.Helper()
	picker := rand.New(rand.NewSource(seed))
	cfg := session.Config()
	for !session.IsTerminal() {
		decision := simulation.PlayerDecision{OrderQuantity: picker.Intn(120)}
		if cfg.Capabilities.HasShippingModes && picker.Intn(3) == 0 {
			decision.ShippingMode = simulation.ShippingModeAir
		}
		_, err := session.Submit(decision)
		require.NoError(t, err)
	}
}

func TestGameSession_InvariantsHoldForEveryVariant(t *testing.T) {
	for _, variant := range simulation.Variants() {
		for seed := int64(1); seed <= 5; seed++ {
			t.Run(variant, func(t *testing.T) {
				// Arrange
				session := newSession(t, variant, seed)
				cfg := session.Config()

				// Act
				playRandomGame(t, session, seed*31)
				history := session.History()
				final := session.Snapshot()

				// Assert
				require.Len(t, history, cfg.HorizonWeeks)
				inventory := cfg.StartingInventory
				cash := cfg.StartingCash
				enqueued, arrived := 0, 0
				for i, r := range history {
					assert.Equal(t, i+1, r.Week)

					// conservation
					assert.Equal(t, inventory+r.Arrivals, r.AvailableInventory)
					assert.Equal(t, min(r.Demand, inventory+r.Arrivals), r.Sales)
					assert.Equal(t, r.Demand-r.Sales, r.MissedSales)
					assert.Equal(t, inventory+r.Arrivals-r.Sales, r.EndingInventory)
					assert.GreaterOrEqual(t, r.EndingInventory, 0)
					inventory = r.EndingInventory

					// cash accounting
					assert.Equal(t, cash, r.CashBefore)
					assert.InDelta(t, r.NetProfit, r.CashAfter-r.CashBefore, 1e-6)
					assert.InDelta(t, r.NetProfit, r.CashDelta, 1e-6)
					cash = r.CashAfter

					// kpi bounds
					assert.GreaterOrEqual(t, r.KpiScore, 0)
					assert.LessOrEqual(t, r.KpiScore, 100)

					// price band
					assert.GreaterOrEqual(t, r.NextMarketPrice, cfg.Price.Floor)
					assert.LessOrEqual(t, r.NextMarketPrice, cfg.Price.Ceiling)

					// congestion causality
					if cfg.Capabilities.HasCongestion {
						assert.Equal(t, r.OrderQuantity > cfg.Congestion.UpstreamCapacityThreshold, r.CongestionNext)
					} else {
						assert.False(t, r.CongestionNext)
					}

					enqueued += r.OrderQuantity
					arrived += r.Arrivals
				}

				// ledger conservation
				assert.Equal(t, enqueued, arrived+final.PipelineInventory())
				assert.Equal(t, cash, final.Cash)
				assert.Equal(t, inventory, final.Inventory)
				assert.Equal(t, cfg.HorizonWeeks+1, final.Week)
			})
		}
	}
}

func TestGameSession_KpiMovesByExactDeltas(t *testing.T) {
	session := newSession(t, simulation.VariantReputation, 9)
	cfg := session.Config()
	playRandomGame(t, session, 77)

	prev := cfg.Kpi.Initial
	for _, r := range session.History() {
		want := prev + cfg.Kpi.Reward
		if r.MissedSales > 0 {
			want = prev - cfg.Kpi.Penalty
		}
		assert.Equal(t, min(max(want, 0), 100), r.KpiScore)
		prev = r.KpiScore
	}
}

func TestGameSession_TerminalGating(t *testing.T) {
	// Arrange
	session := newSession(t, simulation.VariantClassic, 1)
	for i := 0; i < 20; i++ {
		_, err := session.Submit(simulation.PlayerDecision{OrderQuantity: 20})
		require.NoError(t, err)
	}
	before := session.Snapshot()

	// Act
	_, err := session.Submit(simulation.PlayerDecision{OrderQuantity: 20})

	// Assert
	assert.True(t, session.IsTerminal())
	require.ErrorIs(t, err, simulation.ErrInvalidDecision)
	assert.Equal(t, 21, session.Week())
	assert.Equal(t, before, session.Snapshot())
}

func TestGameSession_InvalidDecisionLeavesStateUntouched(t *testing.T) {
	session := newSession(t, simulation.VariantClassic, 1)
	before := session.Snapshot()

	_, err := session.Submit(simulation.PlayerDecision{OrderQuantity: -5})

	require.ErrorIs(t, err, simulation.ErrInvalidDecision)
	assert.Equal(t, before, session.Snapshot())
}

func TestGameSession_SnapshotIsDeepCopy(t *testing.T) {
	session := newSession(t, simulation.VariantClassic, 1)
	_, err := session.Submit(simulation.PlayerDecision{OrderQuantity: 10})
	require.NoError(t, err)

	snap := session.Snapshot()
	snap.History[0].Sales = 9999
	snap.Cash = -1

	assert.NotEqual(t, 9999, session.History()[0].Sales)
	assert.NotEqual(t, -1.0, session.Snapshot().Cash)
}

func TestGameSession_ResetAndResetWith(t *testing.T) {
	session := newSession(t, simulation.VariantClassic, 1)
	_, err := session.Submit(simulation.PlayerDecision{OrderQuantity: 10})
	require.NoError(t, err)

	state := session.Reset()
	assert.Equal(t, 1, state.Week)
	assert.Equal(t, 10000.0, state.Cash)
	assert.Empty(t, session.History())
	assert.Equal(t, 0, state.PipelineInventory())

	state, err = session.ResetWith(simulation.MustPreset(simulation.VariantReputation))
	require.NoError(t, err)
	assert.Equal(t, simulation.VariantReputation, session.Config().Variant)
	assert.Equal(t, 100, state.KpiScore)

	bad := simulation.MustPreset(simulation.VariantClassic)
	bad.HorizonWeeks = 0
	_, err = session.ResetWith(bad)
	require.Error(t, err)
	assert.Equal(t, simulation.VariantReputation, session.Config().Variant)
}

func TestGameSession_BuyMarketIntel(t *testing.T) {
	// Arrange
	session := newSession(t, simulation.VariantClassic, 1, simulation.WithDemandModel(simulation.FixedDemand(20)))
	cashBefore := session.Snapshot().Cash

	// Act
	err := session.BuyMarketIntel()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, cashBefore, session.Snapshot().Cash, "cash only moves in settlement")
	assert.ErrorIs(t, session.BuyMarketIntel(), simulation.ErrMarketIntelAlreadyActive)

	result, err := session.Submit(simulation.PlayerDecision{})
	require.NoError(t, err)
	assert.Equal(t, 500.0, result.Breakdown.IntelligenceCost)
	assert.Equal(t, result.CashBefore+result.NetProfit, result.CashAfter)
}

func TestGameSession_BuyMarketIntelFailures(t *testing.T) {
	cfg := simulation.MustPreset(simulation.VariantClassic)
	cfg.StartingCash = 100
	poor, err := simulation.NewGameSession(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	var insufficient *simulation.InsufficientFundsError
	require.ErrorAs(t, poor.BuyMarketIntel(), &insufficient)
	assert.Equal(t, 500.0, insufficient.Required)
	assert.Equal(t, 100.0, insufficient.Available)

	cfg.Capabilities.HasMarketIntel = false
	none, err := simulation.NewGameSession(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.ErrorIs(t, none.BuyMarketIntel(), simulation.ErrMarketIntelUnavailable)
}

func TestGameSession_ForecastWarnsBeforeSpike(t *testing.T) {
	session := newSession(t, simulation.VariantClassic, 1)
	assert.Nil(t, session.Forecast())

	require.NoError(t, session.BuyMarketIntel())
	for session.Week() < 7 {
		_, err := session.Submit(simulation.PlayerDecision{OrderQuantity: 20})
		require.NoError(t, err)
	}

	hints := session.Forecast()
	require.Len(t, hints, 1)
	assert.Equal(t, simulation.HintDemandSpike, hints[0].Kind)
	assert.Equal(t, 8, hints[0].Week)
}

func TestGameSession_EffectiveLeadTimePreview(t *testing.T) {
	session := newSession(t, simulation.VariantCongestion, 1)
	for session.Week() < 6 {
		_, err := session.Submit(simulation.PlayerDecision{OrderQuantity: 10})
		require.NoError(t, err)
	}

	assert.Equal(t, 4, session.EffectiveLeadTime(simulation.ShippingModeSea))
	assert.Equal(t, 1, session.EffectiveLeadTime(simulation.ShippingModeAir))
	assert.Equal(t, simulation.KpiBandGreen, session.KpiBand())
}

func TestNewGameSession_RejectsInvalidConfig(t *testing.T) {
	cfg := simulation.MustPreset(simulation.VariantShipping)
	cfg.Price.Floor = 90

	_, err := simulation.NewGameSession(cfg, rand.New(rand.NewSource(1)))

	require.Error(t, err)
}
