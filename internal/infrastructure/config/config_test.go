package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
	"github.com/andrescamacho/sc-commander/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Arrange
	path := writeConfig(t, "logging:\n  level: warn\n")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "sc-commander.db", cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9090, cfg.Metrics.Port)
	assert.Equal(t, 15*time.Second, cfg.Metrics.PollInterval)
	assert.Equal(t, simulation.VariantClassic, cfg.Game.Variant)
	assert.Equal(t, simulation.MustPreset(simulation.VariantClassic), cfg.Game.Rules)
}

func TestLoadConfig_RulesOverlayPreset(t *testing.T) {
	path := writeConfig(t, `
game:
  variant: Congestion
  seed: 1234
  rules:
    horizon_weeks: 10
    warehouse:
      capacity: 150
    kpi:
      penalty: 7
`)

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	preset := simulation.MustPreset(simulation.VariantCongestion)
	assert.Equal(t, simulation.VariantCongestion, cfg.Game.Variant)
	assert.Equal(t, simulation.VariantCongestion, cfg.Game.Rules.Variant)
	assert.Equal(t, int64(1234), cfg.Game.Seed)
	assert.Equal(t, 10, cfg.Game.Rules.HorizonWeeks)
	assert.Equal(t, 150, cfg.Game.Rules.Warehouse.Capacity)
	assert.Equal(t, 7, cfg.Game.Rules.Kpi.Penalty)
	assert.Equal(t, preset.Kpi.Reward, cfg.Game.Rules.Kpi.Reward)
	assert.Equal(t, preset.Capabilities, cfg.Game.Rules.Capabilities)
	assert.Equal(t, preset.Events, cfg.Game.Rules.Events)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "game:\n  variant: shipping\nlogging:\n  level: info\n")
	t.Setenv("SC_GAME_VARIANT", "calendar")
	t.Setenv("SC_LOGGING_LEVEL", "debug")
	t.Setenv("SC_METRICS_ENABLED", "true")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, simulation.VariantCalendar, cfg.Game.Variant)
	assert.Equal(t, simulation.DemandScheduled, cfg.Game.Rules.Demand.Kind)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "unknown variant", body: "game:\n  variant: arcade\n", want: "game.variant"},
		{name: "bad log level", body: "logging:\n  level: loud\n", want: "validation failed"},
		{name: "file output without path", body: "logging:\n  output: file\n", want: "FilePath"},
		{name: "rules tag violation", body: "game:\n  rules:\n    horizon_weeks: -1\n", want: "HorizonWeeks"},
		{name: "rules cross-field violation", body: "game:\n  variant: reputation\n  rules:\n    kpi:\n      thresholds:\n        yellow: 40\n        red: 60\n", want: "kpi.thresholds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfigOrDefault_FallsBack(t *testing.T) {
	cfg := config.LoadConfigOrDefault(writeConfig(t, "game:\n  variant: arcade\n"))

	assert.Equal(t, simulation.VariantClassic, cfg.Game.Variant)
	assert.Equal(t, 20, cfg.Game.Rules.HorizonWeeks)
}

func TestUserConfigHandler_RoundTrip(t *testing.T) {
	handler := config.NewUserConfigHandlerAt(filepath.Join(t.TempDir(), "nested", "preferences.json"))

	empty, err := handler.Load()
	require.NoError(t, err)
	assert.Empty(t, empty.DefaultVariant)

	require.NoError(t, handler.SetDefaultVariant("reputation"))
	require.NoError(t, handler.SetDefaultPolicy("chase"))

	loaded, err := handler.Load()
	require.NoError(t, err)
	assert.Equal(t, "reputation", loaded.DefaultVariant)
	assert.Equal(t, "chase", loaded.DefaultPolicy)

	require.NoError(t, handler.Clear())
	cleared, err := handler.Load()
	require.NoError(t, err)
	assert.Equal(t, config.UserConfig{}, *cleared)
}
