package policies

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

// Observation is what an automated player sees before choosing an order
type Observation struct {
	State    simulation.GameState
	Config   simulation.Config
	LeadTime int // effective sea lead time for the coming week
}

// Policy chooses a weekly decision from an observation.
// Decisions are always SEA and clamped to [0, MaxOrderQuantity].
type Policy interface {
	Name() string
	Decide(obs Observation) simulation.PlayerDecision
}

const (
	PolicyFixed     = "fixed"
	PolicyBaseStock = "base-stock"
	PolicyChase     = "chase"
)

// Names lists the selectable policies
func Names() []string {
	return []string{PolicyBaseStock, PolicyChase, PolicyFixed}
}

// ParsePolicy builds a policy by name. quantity is only used by the fixed policy.
func ParsePolicy(name string, quantity int) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicyFixed:
		if quantity < 0 {
			return nil, fmt.Errorf("fixed policy quantity must be non-negative, got %d", quantity)
		}
		return FixedPolicy{Quantity: quantity}, nil
	case PolicyBaseStock, "basestock", "":
		return NewBaseStockPolicy(DefaultWindow, DefaultSafetyStock), nil
	case PolicyChase:
		return ChaseDemandPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q (available: %s)", name, strings.Join(Names(), ", "))
	}
}

func seaOrder(quantity int, cfg simulation.Config) simulation.PlayerDecision {
	if quantity < 0 {
		quantity = 0
	}
	if cfg.MaxOrderQuantity > 0 && quantity > cfg.MaxOrderQuantity {
		quantity = cfg.MaxOrderQuantity
	}
	return simulation.PlayerDecision{OrderQuantity: quantity, ShippingMode: simulation.ShippingModeSea}
}

// FixedPolicy orders the same quantity every week
type FixedPolicy struct {
	Quantity int
}

func (p FixedPolicy) Name() string { return PolicyFixed }

func (p FixedPolicy) Decide(obs Observation) simulation.PlayerDecision {
	return seaOrder(p.Quantity, obs.Config)
}

// ChaseDemandPolicy reorders whatever was demanded last week
type ChaseDemandPolicy struct{}

func (ChaseDemandPolicy) Name() string { return PolicyChase }

func (ChaseDemandPolicy) Decide(obs Observation) simulation.PlayerDecision {
	last, ok := obs.State.LastResult()
	if !ok {
		return seaOrder(expectedDemand(obs.Config), obs.Config)
	}
	return seaOrder(last.Demand, obs.Config)
}

func expectedDemand(cfg simulation.Config) int {
	if cfg.Demand.Kind == simulation.DemandScheduled {
		return cfg.Demand.DefaultBase
	}
	return int(cfg.Demand.Mean)
}
