package simulation

import (
	"github.com/andrescamacho/sc-commander/internal/domain/shared"
	"github.com/andrescamacho/sc-commander/pkg/utils"
)

// PriceWalk moves the procurement price by one uniformly chosen step per week,
// clamped to [Floor, Ceiling]. It is memoryless.
type PriceWalk struct {
	Floor   float64
	Ceiling float64
	Steps   []float64
}

func NewPriceWalk(cfg PriceConfig) PriceWalk {
	return PriceWalk{Floor: cfg.Floor, Ceiling: cfg.Ceiling, Steps: cfg.Steps}
}

// Next returns the price for the following week
func (p PriceWalk) Next(current float64, rng shared.RandomSource) float64 {
	next := current
	if len(p.Steps) > 0 && rng != nil {
		next += p.Steps[rng.Intn(len(p.Steps))]
	}
	return utils.ClampFloat(next, p.Floor, p.Ceiling)
}
