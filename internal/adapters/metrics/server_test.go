package metrics_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sc-commander/internal/adapters/metrics"
	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
	"github.com/andrescamacho/sc-commander/internal/infrastructure/config"
)

func TestServer_ServesRegistry(t *testing.T) {
	// Arrange
	collector := newRegisteredCollector(t)
	collector.RecordTurn("s-9", "classic", simulation.TurnResult{CashAfter: 10650, ShippingMode: simulation.ShippingModeSea})

	server, err := metrics.NewServer(config.MetricsConfig{Host: "127.0.0.1", Port: 0, Path: "/metrics"})
	require.NoError(t, err)
	require.NoError(t, server.Start())
	defer server.Shutdown(context.Background())

	// Act
	resp, err := http.Get("http://" + server.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `sc_commander_game_cash_balance{session_id="s-9",variant="classic"} 10650`)
	assert.Contains(t, string(body), `sc_commander_game_turns_total{mode="SEA",variant="classic"} 1`)
}

func TestNewServer_RequiresRegistry(t *testing.T) {
	metrics.Registry = nil

	_, err := metrics.NewServer(config.MetricsConfig{Port: 9090})

	assert.Error(t, err)
}
