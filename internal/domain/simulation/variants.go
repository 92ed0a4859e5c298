package simulation

import (
	"fmt"
	"sort"
	"strings"
)

// Variant names accepted by Preset
const (
	VariantClassic    = "classic"
	VariantShipping   = "shipping"
	VariantReputation = "reputation"
	VariantCalendar   = "calendar"
	VariantCongestion = "congestion"
)

var variantDescriptions = map[string]string{
	VariantClassic:    "Fixed supplier price, one lead time, demand spike in week 8 and a port strike in week 12",
	VariantShipping:   "Adds SEA/AIR freight, a drifting supplier price and a warehouse capacity",
	VariantReputation: "Adds a customer KPI score that triggers fines when service slips",
	VariantCalendar:   "Replaces random demand with a seasonal calendar plus noise",
	VariantCongestion: "All mechanics plus upstream congestion and a customs inspection",
}

// Variants returns the preset names in a stable order
func Variants() []string {
	order := map[string]int{
		VariantClassic:    0,
		VariantShipping:   1,
		VariantReputation: 2,
		VariantCalendar:   3,
		VariantCongestion: 4,
	}
	names := make([]string, 0, len(variantDescriptions))
	for name := range variantDescriptions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return order[names[i]] < order[names[j]] })
	return names
}

// VariantDescription returns a one-line summary of a preset
func VariantDescription(name string) string {
	return variantDescriptions[strings.ToLower(name)]
}

// Preset returns the configuration for a named variant.
// An empty name selects the classic game.
func Preset(name string) (Config, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", VariantClassic:
		return classicPreset(), nil
	case VariantShipping:
		return shippingPreset(), nil
	case VariantReputation:
		return reputationPreset(), nil
	case VariantCalendar:
		return calendarPreset(), nil
	case VariantCongestion:
		return congestionPreset(), nil
	default:
		return Config{}, fmt.Errorf("unknown variant %q (expected one of %s)", name, strings.Join(Variants(), ", "))
	}
}

// MustPreset panics on unknown names. Intended for tests and static wiring.
func MustPreset(name string) Config {
	cfg, err := Preset(name)
	if err != nil {
		panic(err)
	}
	return cfg
}

func portStrike() EventConfig {
	return EventConfig{
		ID:            "port-strike",
		Week:          12,
		Kind:          EventPermanent,
		LeadTimeDelta: 1,
		Description:   "A port strike has occurred. Sea lead time is permanently increased.",
	}
}

func classicPreset() Config {
	return Config{
		Variant:                VariantClassic,
		HorizonWeeks:           20,
		StartingCash:           10000,
		StartingInventory:      50,
		SellingPrice:           100,
		HoldingCostPerUnit:     5,
		ShortagePenaltyPerUnit: 10,
		MaxOrderQuantity:       500,
		Capabilities: Capabilities{
			HasMarketIntel: true,
		},
		Shipping: ShippingConfig{
			BaseLeadTime: 2,
			AirLeadTime:  1,
		},
		Kpi: KpiConfig{Initial: 100},
		Price: PriceConfig{
			Initial: 60,
			Floor:   60,
			Ceiling: 60,
		},
		Demand: DemandConfig{
			Kind:        DemandDistributional,
			Mean:        20,
			StdDev:      5,
			ShockWeek:   8,
			ShockAmount: 15,
		},
		Events: []EventConfig{portStrike()},
		Intel: IntelConfig{
			Cost:           500,
			LookaheadWeeks: 1,
		},
	}
}

func shippingPreset() Config {
	cfg := classicPreset()
	cfg.Variant = VariantShipping
	cfg.Capabilities.HasShippingModes = true
	cfg.Capabilities.HasWarehouse = true
	cfg.Shipping = ShippingConfig{
		BaseLeadTime:   2,
		AirLeadTime:    1,
		SeaFreightCost: 2,
		AirFreightCost: 15,
	}
	cfg.Warehouse = WarehouseConfig{
		Capacity:               100,
		OverflowPenaltyPerUnit: 8,
	}
	cfg.Price = PriceConfig{
		Initial: 60,
		Floor:   40,
		Ceiling: 80,
		Steps:   []float64{-5, 0, 5},
	}
	return cfg
}

func reputationPreset() Config {
	cfg := shippingPreset()
	cfg.Variant = VariantReputation
	cfg.Capabilities.HasKpi = true
	cfg.Kpi = KpiConfig{
		Initial:    100,
		Penalty:    5,
		Reward:     2,
		Thresholds: KpiThresholds{Yellow: 70, Red: 50},
		Fines:      KpiFines{Yellow: 300, Red: 800},
	}
	return cfg
}

func calendarPreset() Config {
	cfg := reputationPreset()
	cfg.Variant = VariantCalendar
	cfg.Demand = DemandConfig{
		Kind:        DemandScheduled,
		StdDev:      5,
		DefaultBase: 20,
		Calendar: map[int]int{
			4:  30,
			5:  35,
			8:  45,
			9:  40,
			14: 50,
			15: 55,
			16: 40,
			19: 25,
		},
	}
	cfg.Intel.LookaheadWeeks = 3
	return cfg
}

func congestionPreset() Config {
	cfg := calendarPreset()
	cfg.Variant = VariantCongestion
	cfg.Capabilities.HasCongestion = true
	cfg.Congestion = CongestionConfig{
		UpstreamCapacityThreshold: 60,
		DelayWeeks:                1,
	}
	cfg.Events = []EventConfig{
		{
			ID:            "customs-inspection",
			Week:          6,
			Kind:          EventOneShot,
			LeadTimeDelta: 2,
			Description:   "Customs inspection holds this week's sea freight for two extra weeks.",
		},
		portStrike(),
	}
	return cfg
}
