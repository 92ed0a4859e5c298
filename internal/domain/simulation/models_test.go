package simulation_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sc-commander/internal/domain/shared"
	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

func TestDistributionalDemand_NeverNegativeAndSpikesOnShockWeek(t *testing.T) {
	// Arrange
	model := simulation.DistributionalDemand{Mean: 2, StdDev: 50, ShockWeek: 8, ShockAmount: 15}
	rng := rand.New(rand.NewSource(7))

	// Act & Assert
	for week := 1; week <= 500; week++ {
		d := model.Demand(week%20+1, rng)
		assert.GreaterOrEqual(t, d, 0)
	}

	flat := simulation.DistributionalDemand{Mean: 20, ShockWeek: 8, ShockAmount: 15}
	assert.Equal(t, 20, flat.Demand(7, rng))
	assert.Equal(t, 35, flat.Demand(8, rng))
}

func TestScheduledDemand_UsesCalendarBaseOrDefault(t *testing.T) {
	// Arrange
	model := simulation.ScheduledDemand{Calendar: map[int]int{3: 40}, DefaultBase: 12}

	// Act & Assert
	assert.Equal(t, 40, model.Base(3))
	assert.Equal(t, 12, model.Base(4))
	assert.Equal(t, 40, model.Demand(3, rand.New(rand.NewSource(1))))

	noisy := simulation.ScheduledDemand{Calendar: map[int]int{1: 0}, StdDev: 30}
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		assert.GreaterOrEqual(t, noisy.Demand(1, rng), 0)
	}
}

func TestNewDemandModel_SelectsPolicyByKind(t *testing.T) {
	assert.IsType(t, simulation.ScheduledDemand{}, simulation.NewDemandModel(simulation.DemandConfig{Kind: simulation.DemandScheduled}))
	assert.IsType(t, simulation.DistributionalDemand{}, simulation.NewDemandModel(simulation.DemandConfig{Kind: simulation.DemandDistributional}))
}

func TestPriceWalk_StaysWithinBand(t *testing.T) {
	// Arrange
	walk := simulation.PriceWalk{Floor: 40, Ceiling: 80, Steps: []float64{-5, 0, 5}}
	rng := rand.New(rand.NewSource(11))
	price := 60.0

	// Act & Assert
	for i := 0; i < 1000; i++ {
		next := walk.Next(price, rng)
		assert.GreaterOrEqual(t, next, 40.0)
		assert.LessOrEqual(t, next, 80.0)
		assert.Contains(t, []float64{-5, 0, 5}, next-price)
		price = next
	}
}

func TestPriceWalk_ClampsAtEdgesAndFixedWithoutSteps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	up := simulation.PriceWalk{Floor: 40, Ceiling: 80, Steps: []float64{5}}
	down := simulation.PriceWalk{Floor: 40, Ceiling: 80, Steps: []float64{-5}}
	fixed := simulation.PriceWalk{Floor: 60, Ceiling: 60}

	assert.Equal(t, 80.0, up.Next(78, rng))
	assert.Equal(t, 40.0, down.Next(42, rng))
	assert.Equal(t, 60.0, fixed.Next(60, rng))
}

func TestEventSchedule_ApplyIsMonotonicAndIdempotent(t *testing.T) {
	// Arrange
	schedule := simulation.NewEventSchedule([]simulation.EventConfig{
		{ID: "strike", Week: 12, Kind: simulation.EventPermanent, LeadTimeDelta: 1},
		{ID: "customs", Week: 6, Kind: simulation.EventOneShot, LeadTimeDelta: 2},
	})
	state := simulation.GameState{Week: 1, LeadTimeBase: 2}

	// Act
	assert.Empty(t, schedule.Apply(5, &state))
	fired := schedule.Apply(6, &state)

	// Assert
	require.Len(t, fired, 1)
	assert.Equal(t, "customs", fired[0].ID)
	assert.Equal(t, 2, state.LeadTimeBase)
	assert.Equal(t, 2, state.OneShotDelay)

	schedule.Apply(7, &state)
	assert.Equal(t, 0, state.OneShotDelay, "one-shot delay only lasts its own week")

	fired = schedule.Apply(12, &state)
	require.Len(t, fired, 1)
	assert.True(t, fired[0].IsPermanent())
	assert.Equal(t, 3, state.LeadTimeBase)

	assert.Empty(t, schedule.Apply(12, &state))
	assert.Equal(t, 3, state.LeadTimeBase, "second call for the same week must not double-apply")

	schedule.Apply(13, &state)
	assert.Equal(t, 3, state.LeadTimeBase)
}

func TestEventSchedule_Upcoming(t *testing.T) {
	schedule := simulation.NewEventSchedule(simulation.MustPreset(simulation.VariantCongestion).Events)

	upcoming := schedule.Upcoming(5, 12)

	require.Len(t, upcoming, 2)
	assert.Equal(t, 6, upcoming[0].Week)
	assert.Equal(t, 12, upcoming[1].Week)
	assert.Empty(t, schedule.Upcoming(13, 20))
}

func TestShipmentLedger_EnqueueRejectsNegativeAndDropsZero(t *testing.T) {
	var ledger simulation.ShipmentLedger

	_, err := ledger.Enqueue(3, -1)
	var validationErr *shared.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "quantity", validationErr.Field)

	ledger, err = ledger.Enqueue(3, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, ledger.Len())
}

func TestShipmentLedger_DrainSumsDueWeekAndPurgesOverdue(t *testing.T) {
	// Arrange
	ledger := simulation.NewShipmentLedger(
		simulation.Shipment{ArrivalWeek: 2, Quantity: 7},
		simulation.Shipment{ArrivalWeek: 4, Quantity: 10},
		simulation.Shipment{ArrivalWeek: 4, Quantity: 5},
		simulation.Shipment{ArrivalWeek: 6, Quantity: 3},
	)

	// Act
	arrivals, remaining := ledger.Drain(4)

	// Assert
	assert.Equal(t, 15, arrivals)
	assert.Equal(t, []simulation.Shipment{{ArrivalWeek: 6, Quantity: 3}}, remaining.Pending())
	assert.Equal(t, 3, remaining.TotalQuantity())
	assert.Equal(t, 4, ledger.Len(), "drain must not modify the receiver")
}

func TestShipmentLedger_EnqueueDoesNotAlias(t *testing.T) {
	base, err := simulation.ShipmentLedger{}.Enqueue(3, 10)
	require.NoError(t, err)

	a, err := base.Enqueue(4, 1)
	require.NoError(t, err)
	b, err := base.Enqueue(5, 2)
	require.NoError(t, err)

	assert.Equal(t, 11, a.TotalQuantity())
	assert.Equal(t, 12, b.TotalQuantity())
	assert.Equal(t, 10, base.TotalQuantity())
}

func TestFinancialModel_Settle(t *testing.T) {
	model := simulation.FinancialModel{
		SellingPrice:           100,
		HoldingCostPerUnit:     5,
		ShortagePenaltyPerUnit: 10,
		WarehouseCapacity:      100,
		OverflowPenaltyPerUnit: 8,
		KpiEnabled:             true,
		Thresholds:             simulation.KpiThresholds{Yellow: 70, Red: 50},
		Fines:                  simulation.KpiFines{Yellow: 300, Red: 800},
	}

	tests := []struct {
		name  string
		input simulation.SettlementInput
		want  simulation.FinancialBreakdown
	}{
		{
			name: "procurement charged at order time",
			input: simulation.SettlementInput{
				Sales: 20, EndingInventory: 30, OrderQuantity: 20, MarketPrice: 60, KpiScore: 100,
			},
			want: simulation.FinancialBreakdown{
				Revenue: 2000, ProcurementCost: 1200, HoldingCost: 150, NetProfit: 650,
			},
		},
		{
			name: "overflow above capacity",
			input: simulation.SettlementInput{
				EndingInventory: 110, KpiScore: 100,
			},
			want: simulation.FinancialBreakdown{
				HoldingCost: 550, OverflowPenalty: 80, OverflowUnits: 10, NetProfit: -630,
			},
		},
		{
			name: "yellow fine with shipping cost and shortages",
			input: simulation.SettlementInput{
				Sales: 10, MissedSales: 5, OrderQuantity: 10, MarketPrice: 50, ShippingCostPerUnit: 15, KpiScore: 69,
			},
			want: simulation.FinancialBreakdown{
				Revenue: 1000, ProcurementCost: 650, ShortagePenalty: 50, KpiFine: 300, NetProfit: 0,
			},
		},
		{
			name:  "red fine and intelligence cost",
			input: simulation.SettlementInput{KpiScore: 45, IntelligenceCost: 500},
			want:  simulation.FinancialBreakdown{KpiFine: 800, IntelligenceCost: 500, NetProfit: -1300},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Settle(tt.input))
		})
	}
}

func TestFinancialModel_DisabledCapabilitiesCostNothing(t *testing.T) {
	model := simulation.NewFinancialModel(simulation.MustPreset(simulation.VariantClassic))

	b := model.Settle(simulation.SettlementInput{EndingInventory: 1000, KpiScore: 0})

	assert.Zero(t, b.OverflowPenalty)
	assert.Zero(t, b.KpiFine)
	assert.Equal(t, 5000.0, b.HoldingCost)
}

func TestReputationModel_UpdateAndBand(t *testing.T) {
	model := simulation.NewReputationModel(simulation.MustPreset(simulation.VariantReputation).Kpi)

	assert.Equal(t, 95, model.Update(100, 3))
	assert.Equal(t, 100, model.Update(99, 0))
	assert.Equal(t, 0, model.Update(2, 1))
	assert.Equal(t, 52, model.Update(50, 0))

	assert.Equal(t, simulation.KpiBandGreen, model.Band(70))
	assert.Equal(t, simulation.KpiBandYellow, model.Band(69))
	assert.Equal(t, simulation.KpiBandRed, model.Band(45))
}
