package simulation

import (
	"github.com/andrescamacho/sc-commander/internal/domain/shared"
)

// DemandModel produces the customer demand for a week
type DemandModel interface {
	Demand(week int, rng shared.RandomSource) int
}

// DistributionalDemand draws from N(Mean, StdDev) with a fixed spike on ShockWeek
type DistributionalDemand struct {
	Mean        float64
	StdDev      float64
	ShockWeek   int
	ShockAmount int
}

func (d DistributionalDemand) Demand(week int, rng shared.RandomSource) int {
	demand := sampleNonNegative(d.Mean, d.StdDev, rng)
	if d.ShockWeek > 0 && week == d.ShockWeek {
		demand += d.ShockAmount
	}
	return demand
}

// ScheduledDemand centres the draw on a per-week calendar base
type ScheduledDemand struct {
	Calendar    map[int]int
	DefaultBase int
	StdDev      float64
}

// Base returns the calendar entry for week, or DefaultBase when unlisted
func (d ScheduledDemand) Base(week int) int {
	if base, ok := d.Calendar[week]; ok {
		return base
	}
	return d.DefaultBase
}

func (d ScheduledDemand) Demand(week int, rng shared.RandomSource) int {
	return sampleNonNegative(float64(d.Base(week)), d.StdDev, rng)
}

// FixedDemand always returns the same quantity. Used for deterministic drills.
type FixedDemand int

func (d FixedDemand) Demand(int, shared.RandomSource) int {
	if d < 0 {
		return 0
	}
	return int(d)
}

// NewDemandModel builds the model selected by cfg.Kind
func NewDemandModel(cfg DemandConfig) DemandModel {
	if cfg.Kind == DemandScheduled {
		return ScheduledDemand{
			Calendar:    cfg.Calendar,
			DefaultBase: cfg.DefaultBase,
			StdDev:      cfg.StdDev,
		}
	}
	return DistributionalDemand{
		Mean:        cfg.Mean,
		StdDev:      cfg.StdDev,
		ShockWeek:   cfg.ShockWeek,
		ShockAmount: cfg.ShockAmount,
	}
}

// sampleNonNegative truncates toward zero and floors at 0
func sampleNonNegative(mean, stdDev float64, rng shared.RandomSource) int {
	sample := mean
	if stdDev > 0 && rng != nil {
		sample = mean + rng.NormFloat64()*stdDev
	}
	if sample < 0 {
		return 0
	}
	return int(sample)
}
