package config

import "github.com/andrescamacho/sc-commander/internal/domain/simulation"

// GameConfig selects and tunes the game played by the CLI
type GameConfig struct {
	// Variant preset: classic, shipping, reputation, calendar, congestion
	Variant string `mapstructure:"variant" validate:"required,oneof=classic shipping reputation calendar congestion"`

	// Seed for the demand and price RNG (0 picks one from the clock)
	Seed int64 `mapstructure:"seed"`

	// Rules start as the variant preset; any key set under game.rules overrides it
	Rules simulation.Config `mapstructure:"rules"`
}
