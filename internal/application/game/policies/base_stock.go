package policies

import (
	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
	"github.com/andrescamacho/sc-commander/pkg/utils"
)

const (
	DefaultWindow      = 4
	DefaultSafetyStock = 10
)

// BaseStockPolicy orders up to a target inventory position.
//
// Idea:
//   - Forecast demand as the moving average of the last Window weeks.
//   - Cover forecast demand until the order lands: forecast * (lead time + 1).
//   - Keep SafetyStock units on top.
//   - Subtract what is on hand and what is already in transit.
type BaseStockPolicy struct {
	Window      int
	SafetyStock int
}

func NewBaseStockPolicy(window, safetyStock int) BaseStockPolicy {
	if window < 1 {
		window = 1
	}
	if safetyStock < 0 {
		safetyStock = 0
	}
	return BaseStockPolicy{Window: window, SafetyStock: safetyStock}
}

func (p BaseStockPolicy) Name() string { return PolicyBaseStock }

func (p BaseStockPolicy) Decide(obs Observation) simulation.PlayerDecision {
	forecast := p.forecast(obs)

	lead := obs.LeadTime
	if lead < 1 {
		lead = obs.State.LeadTimeBase
	}

	targetPosition := forecast*(lead+1) + p.SafetyStock
	inventoryPosition := obs.State.Inventory + obs.State.PipelineInventory()

	return seaOrder(targetPosition-inventoryPosition, obs.Config)
}

func (p BaseStockPolicy) forecast(obs Observation) int {
	history := obs.State.History
	if len(history) == 0 {
		return expectedDemand(obs.Config)
	}

	window := p.Window
	if window < 1 {
		window = 1
	}
	start := utils.Max(len(history)-window, 0)

	sum := 0
	for _, r := range history[start:] {
		sum += r.Demand
	}
	// Integer average keeps runs reproducible
	return sum / (len(history) - start)
}
