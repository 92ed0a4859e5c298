package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

const (
	// Namespace for all metrics
	namespace = "sc_commander"
	// Subsystem for simulation metrics
	subsystem = "game"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalSimulationCollector is set by SetGlobalSimulationCollector when metrics are enabled
	globalSimulationCollector SimulationMetricsRecorder
)

// SimulationMetricsRecorder defines the interface for recording game events
type SimulationMetricsRecorder interface {
	RecordTurn(sessionID, variant string, result simulation.TurnResult)
	RecordGameCompleted(sessionID, variant string, report simulation.PerformanceReport)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalSimulationCollector sets the global simulation metrics collector
func SetGlobalSimulationCollector(collector SimulationMetricsRecorder) {
	globalSimulationCollector = collector
}

// RecordTurn records a settled week globally
func RecordTurn(sessionID, variant string, result simulation.TurnResult) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordTurn(sessionID, variant, result)
	}
}

// RecordGameCompleted records a finished game globally
func RecordGameCompleted(sessionID, variant string, report simulation.PerformanceReport) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordGameCompleted(sessionID, variant, report)
	}
}
