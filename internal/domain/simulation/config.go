package simulation

import (
	"fmt"

	"github.com/andrescamacho/sc-commander/internal/domain/shared"
)

// DemandKind selects the RandomDemandModel policy
type DemandKind string

const (
	DemandDistributional DemandKind = "distributional"
	DemandScheduled      DemandKind = "scheduled"
)

// EventKind distinguishes permanent lead-time shocks from one-week disruptions
type EventKind string

const (
	EventPermanent EventKind = "permanent"
	EventOneShot   EventKind = "one_shot"
)

// Capabilities toggles the optional mechanics a variant enables
type Capabilities struct {
	HasShippingModes bool `mapstructure:"has_shipping_modes"`
	HasKpi           bool `mapstructure:"has_kpi"`
	HasCongestion    bool `mapstructure:"has_congestion"`
	HasWarehouse     bool `mapstructure:"has_warehouse"`
	HasMarketIntel   bool `mapstructure:"has_market_intel"`
}

// ShippingConfig holds lead times and per-unit freight costs
type ShippingConfig struct {
	BaseLeadTime   int     `mapstructure:"base_lead_time" validate:"min=1"`
	AirLeadTime    int     `mapstructure:"air_lead_time" validate:"min=1"`
	SeaFreightCost float64 `mapstructure:"sea_freight_cost" validate:"gte=0"`
	AirFreightCost float64 `mapstructure:"air_freight_cost" validate:"gte=0"`
}

// WarehouseConfig bounds ending inventory before overflow penalties apply
type WarehouseConfig struct {
	Capacity               int     `mapstructure:"capacity" validate:"gte=0"`
	OverflowPenaltyPerUnit float64 `mapstructure:"overflow_penalty_per_unit" validate:"gte=0"`
}

// CongestionConfig triggers a sea delay after oversized orders
type CongestionConfig struct {
	UpstreamCapacityThreshold int `mapstructure:"upstream_capacity_threshold" validate:"gte=0"`
	DelayWeeks                int `mapstructure:"delay_weeks" validate:"gte=0"`
}

// KpiThresholds are the score bands below which fines apply
type KpiThresholds struct {
	Yellow int `mapstructure:"yellow" validate:"gte=0,lte=100"`
	Red    int `mapstructure:"red" validate:"gte=0,lte=100"`
}

// KpiFines are charged every turn the score sits in a band
type KpiFines struct {
	Yellow float64 `mapstructure:"yellow" validate:"gte=0"`
	Red    float64 `mapstructure:"red" validate:"gte=0"`
}

// KpiConfig parameterizes the reputation model
type KpiConfig struct {
	Initial    int           `mapstructure:"initial" validate:"gte=0,lte=100"`
	Penalty    int           `mapstructure:"penalty" validate:"gte=0"`
	Reward     int           `mapstructure:"reward" validate:"gte=0"`
	Thresholds KpiThresholds `mapstructure:"thresholds"`
	Fines      KpiFines      `mapstructure:"fines"`
}

// PriceConfig parameterizes the procurement price walk
type PriceConfig struct {
	Initial float64   `mapstructure:"initial" validate:"gte=0"`
	Floor   float64   `mapstructure:"floor" validate:"gte=0"`
	Ceiling float64   `mapstructure:"ceiling" validate:"gte=0"`
	Steps   []float64 `mapstructure:"steps"`
}

// DemandConfig parameterizes the RandomDemandModel
type DemandConfig struct {
	Kind DemandKind `mapstructure:"kind" validate:"required,oneof=distributional scheduled"`

	// Distributional
	Mean        float64 `mapstructure:"mean" validate:"gte=0"`
	StdDev      float64 `mapstructure:"std_dev" validate:"gte=0"`
	ShockWeek   int     `mapstructure:"shock_week" validate:"gte=0"`
	ShockAmount int     `mapstructure:"shock_amount" validate:"gte=0"`

	// Scheduled
	Calendar    map[int]int `mapstructure:"calendar"`
	DefaultBase int         `mapstructure:"default_base" validate:"gte=0"`
}

// EventConfig schedules a lead-time shock
type EventConfig struct {
	ID            string    `mapstructure:"id" validate:"required"`
	Week          int       `mapstructure:"week" validate:"min=1"`
	Kind          EventKind `mapstructure:"kind" validate:"required,oneof=permanent one_shot"`
	LeadTimeDelta int       `mapstructure:"lead_time_delta" validate:"gte=0"`
	Description   string    `mapstructure:"description"`
}

// IntelConfig prices the market intelligence upgrade
type IntelConfig struct {
	Cost           float64 `mapstructure:"cost" validate:"gte=0"`
	LookaheadWeeks int     `mapstructure:"lookahead_weeks" validate:"gte=0"`
}

// Config enumerates every tunable constant of a game
type Config struct {
	Variant                string  `mapstructure:"variant"`
	HorizonWeeks           int     `mapstructure:"horizon_weeks" validate:"min=1"`
	StartingCash           float64 `mapstructure:"starting_cash"`
	StartingInventory      int     `mapstructure:"starting_inventory" validate:"gte=0"`
	SellingPrice           float64 `mapstructure:"selling_price" validate:"gte=0"`
	HoldingCostPerUnit     float64 `mapstructure:"holding_cost_per_unit" validate:"gte=0"`
	ShortagePenaltyPerUnit float64 `mapstructure:"shortage_penalty_per_unit" validate:"gte=0"`
	MaxOrderQuantity       int     `mapstructure:"max_order_quantity" validate:"min=1"`

	Capabilities Capabilities     `mapstructure:"capabilities"`
	Shipping     ShippingConfig   `mapstructure:"shipping"`
	Warehouse    WarehouseConfig  `mapstructure:"warehouse"`
	Congestion   CongestionConfig `mapstructure:"congestion"`
	Kpi          KpiConfig        `mapstructure:"kpi"`
	Price        PriceConfig      `mapstructure:"price"`
	Demand       DemandConfig     `mapstructure:"demand"`
	Events       []EventConfig    `mapstructure:"events" validate:"dive"`
	Intel        IntelConfig      `mapstructure:"intel"`
}

// Validate checks the cross-field rules struct tags cannot express
func (c Config) Validate() error {
	if c.HorizonWeeks < 1 {
		return shared.NewValidationError("horizon_weeks", "must be at least 1")
	}
	if c.StartingInventory < 0 {
		return shared.NewValidationError("starting_inventory", "cannot be negative")
	}
	if c.MaxOrderQuantity < 1 {
		return shared.NewValidationError("max_order_quantity", "must be at least 1")
	}
	if c.Shipping.BaseLeadTime < 1 {
		return shared.NewValidationError("shipping.base_lead_time", "must be at least 1 week")
	}
	if c.Capabilities.HasShippingModes && c.Shipping.AirLeadTime < 1 {
		return shared.NewValidationError("shipping.air_lead_time", "must be at least 1 week")
	}
	if c.Price.Floor > c.Price.Ceiling {
		return shared.NewValidationError("price", fmt.Sprintf("floor %.2f above ceiling %.2f", c.Price.Floor, c.Price.Ceiling))
	}
	if c.Price.Initial < c.Price.Floor || c.Price.Initial > c.Price.Ceiling {
		return shared.NewValidationError("price.initial", "must lie within [floor, ceiling]")
	}
	if c.Capabilities.HasKpi {
		if c.Kpi.Initial < 0 || c.Kpi.Initial > 100 {
			return shared.NewValidationError("kpi.initial", "must lie within [0, 100]")
		}
		if c.Kpi.Thresholds.Red > c.Kpi.Thresholds.Yellow {
			return shared.NewValidationError("kpi.thresholds", "red threshold must not exceed yellow threshold")
		}
	}
	switch c.Demand.Kind {
	case DemandDistributional, DemandScheduled:
	default:
		return shared.NewValidationError("demand.kind", fmt.Sprintf("unknown demand model %q", c.Demand.Kind))
	}
	for week, base := range c.Demand.Calendar {
		if week < 1 || base < 0 {
			return shared.NewValidationError("demand.calendar", fmt.Sprintf("invalid entry week=%d base=%d", week, base))
		}
	}
	seen := make(map[string]bool, len(c.Events))
	for _, ev := range c.Events {
		if ev.ID == "" {
			return shared.NewValidationError("events.id", "cannot be empty")
		}
		if seen[ev.ID] {
			return shared.NewValidationError("events.id", fmt.Sprintf("duplicate event %q", ev.ID))
		}
		seen[ev.ID] = true
		if ev.Kind != EventPermanent && ev.Kind != EventOneShot {
			return shared.NewValidationError("events.kind", fmt.Sprintf("unknown event kind %q", ev.Kind))
		}
		if ev.LeadTimeDelta < 0 {
			return shared.NewValidationError("events.lead_time_delta", "lead time only ever increases")
		}
	}
	return nil
}

// ShippingCost returns the per-unit freight cost for a mode
func (c Config) ShippingCost(mode ShippingMode) float64 {
	if c.Capabilities.HasShippingModes && mode == ShippingModeAir {
		return c.Shipping.AirFreightCost
	}
	return c.Shipping.SeaFreightCost
}

// Clone returns a copy that shares no slices or maps with c
func (c Config) Clone() Config {
	out := c
	if c.Price.Steps != nil {
		out.Price.Steps = append([]float64(nil), c.Price.Steps...)
	}
	if c.Demand.Calendar != nil {
		out.Demand.Calendar = make(map[int]int, len(c.Demand.Calendar))
		for k, v := range c.Demand.Calendar {
			out.Demand.Calendar[k] = v
		}
	}
	if c.Events != nil {
		out.Events = append([]EventConfig(nil), c.Events...)
	}
	return out
}
