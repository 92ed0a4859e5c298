package simulation

import (
	"fmt"

	"github.com/andrescamacho/sc-commander/internal/domain/shared"
	"github.com/andrescamacho/sc-commander/pkg/utils"
)

// TurnEngine resolves one week of play. It holds only configuration and the
// random source; all game state is passed in and returned.
type TurnEngine struct {
	cfg        Config
	rng        shared.RandomSource
	demand     DemandModel
	price      PriceWalk
	events     EventSchedule
	finance    FinancialModel
	reputation ReputationModel
}

// EngineOption customizes a TurnEngine
type EngineOption func(*TurnEngine)

// WithDemandModel replaces the configured demand model
func WithDemandModel(m DemandModel) EngineOption {
	return func(e *TurnEngine) {
		e.demand = m
	}
}

// NewTurnEngine wires the models described by cfg
func NewTurnEngine(cfg Config, rng shared.RandomSource, opts ...EngineOption) *TurnEngine {
	e := &TurnEngine{
		cfg:        cfg,
		rng:        rng,
		demand:     NewDemandModel(cfg.Demand),
		price:      NewPriceWalk(cfg.Price),
		events:     NewEventSchedule(cfg.Events),
		finance:    NewFinancialModel(cfg),
		reputation: NewReputationModel(cfg.Kpi),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *TurnEngine) Config() Config {
	return e.cfg
}

func (e *TurnEngine) Events() EventSchedule {
	return e.events
}

func (e *TurnEngine) Reputation() ReputationModel {
	return e.reputation
}

// Validate rejects a decision that cannot be applied to state
func (e *TurnEngine) Validate(state GameState, decision PlayerDecision) error {
	if state.Terminal {
		return newInvalidDecision("week", "game is over after week %d", e.cfg.HorizonWeeks)
	}
	if decision.OrderQuantity < 0 {
		return newInvalidDecision("order_quantity", "must not be negative, got %d", decision.OrderQuantity)
	}
	if decision.OrderQuantity > e.cfg.MaxOrderQuantity {
		return newInvalidDecision("order_quantity", "must not exceed %d, got %d", e.cfg.MaxOrderQuantity, decision.OrderQuantity)
	}
	if !decision.ShippingMode.IsValid() {
		return newInvalidDecision("shipping_mode", "unknown mode %d", int(decision.ShippingMode))
	}
	if decision.ShippingMode == ShippingModeAir && !e.cfg.Capabilities.HasShippingModes {
		return newInvalidDecision("shipping_mode", "AIR freight is not available in the %s variant", e.cfg.Variant)
	}
	return nil
}

// Run applies decision to a copy of state and returns the next state with the
// settled TurnResult. On error the input state is returned unchanged.
func (e *TurnEngine) Run(state GameState, decision PlayerDecision) (GameState, TurnResult, error) {
	if err := e.Validate(state, decision); err != nil {
		return state, TurnResult{}, err
	}

	next := state.Clone()
	week := next.Week

	// 1. environmental events
	fired := e.events.Apply(week, &next)

	// 2. demand
	demand := e.demand.Demand(week, e.rng)

	// 3-5. arrivals and sales
	arrivals, remaining := next.PendingOrders.Drain(week)
	next.PendingOrders = remaining
	available := next.Inventory + arrivals
	sales := utils.Min(demand, available)
	missed := demand - sales
	ending := available - sales

	// 6. reputation, settled before the fine
	if e.cfg.Capabilities.HasKpi {
		next.KpiScore = e.reputation.Update(next.KpiScore, missed)
	}

	// 7. settlement at the post-update score
	breakdown := e.finance.Settle(SettlementInput{
		Sales:               sales,
		MissedSales:         missed,
		EndingInventory:     ending,
		OrderQuantity:       decision.OrderQuantity,
		MarketPrice:         next.MarketPrice,
		ShippingCostPerUnit: e.cfg.ShippingCost(decision.ShippingMode),
		KpiScore:            next.KpiScore,
		IntelligenceCost:    next.IntelChargePending,
	})
	next.IntelChargePending = 0

	// 8. books
	cashBefore := next.Cash
	next.Cash += breakdown.NetProfit
	next.Inventory = ending

	// 9. next week's price
	chargedPrice := next.MarketPrice
	next.MarketPrice = e.price.Next(chargedPrice, e.rng)

	// 10. lead time and enqueue
	leadTime := e.effectiveLeadTime(next, decision.ShippingMode)
	arrivalWeek := 0
	if decision.OrderQuantity > 0 {
		arrivalWeek = week + leadTime
		ledger, err := next.PendingOrders.Enqueue(arrivalWeek, decision.OrderQuantity)
		if err != nil {
			return state, TurnResult{}, fmt.Errorf("failed to enqueue order: %w", err)
		}
		next.PendingOrders = ledger
	}

	// 11. congestion for next week
	next.CongestionActive = e.cfg.Capabilities.HasCongestion &&
		decision.OrderQuantity > e.cfg.Congestion.UpstreamCapacityThreshold

	result := TurnResult{
		Week:               week,
		Demand:             demand,
		OrderQuantity:      decision.OrderQuantity,
		ShippingMode:       decision.ShippingMode,
		EffectiveLeadTime:  leadTime,
		ArrivalWeek:        arrivalWeek,
		Arrivals:           arrivals,
		AvailableInventory: available,
		Sales:              sales,
		MissedSales:        missed,
		EndingInventory:    ending,
		KpiScore:           next.KpiScore,
		Breakdown:          breakdown,
		NetProfit:          breakdown.NetProfit,
		CashBefore:         cashBefore,
		CashAfter:          next.Cash,
		CashDelta:          next.Cash - cashBefore,
		MarketPrice:        chargedPrice,
		NextMarketPrice:    next.MarketPrice,
		Events:             fired,
		CongestionNext:     next.CongestionActive,
		BlackSwan:          hasPermanentEvent(fired),
		Overflow:           breakdown.OverflowUnits > 0,
	}

	// 12. history and clock
	next.History = append(next.History, result)
	next.Week++
	if next.Week > e.cfg.HorizonWeeks {
		next.Terminal = true
	}
	return next, result.clone(), nil
}

// EffectiveLeadTime previews the lead time an order placed this week would get,
// including events that have not fired yet
func (e *TurnEngine) EffectiveLeadTime(state GameState, mode ShippingMode) int {
	preview := state
	e.events.Apply(preview.Week, &preview)
	return e.effectiveLeadTime(preview, mode)
}

func (e *TurnEngine) effectiveLeadTime(state GameState, mode ShippingMode) int {
	if mode == ShippingModeAir && e.cfg.Capabilities.HasShippingModes {
		return e.cfg.Shipping.AirLeadTime
	}
	lead := state.LeadTimeBase + state.OneShotDelay
	if state.CongestionActive && e.cfg.Capabilities.HasCongestion {
		delay := e.cfg.Congestion.DelayWeeks
		if delay <= 0 {
			delay = 1
		}
		lead += delay
	}
	return lead
}

func hasPermanentEvent(events []Event) bool {
	for _, ev := range events {
		if ev.IsPermanent() {
			return true
		}
	}
	return false
}
