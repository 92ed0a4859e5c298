package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

// SessionCounter reports how many games are live
type SessionCounter interface {
	Count() int
}

// SimulationMetricsCollector handles per-turn and per-game simulation metrics
type SimulationMetricsCollector struct {
	// State gauges, labelled by session
	cash        *prometheus.GaugeVec
	inventory   *prometheus.GaugeVec
	kpiScore    *prometheus.GaugeVec
	marketPrice *prometheus.GaugeVec

	// Flow counters
	turnsTotal       *prometheus.CounterVec
	missedUnitsTotal *prometheus.CounterVec
	eventsTotal      *prometheus.CounterVec
	gamesCompleted   *prometheus.CounterVec

	// Distributions
	turnNetProfit *prometheus.HistogramVec
	finalCash     *prometheus.HistogramVec

	activeSessions prometheus.Gauge

	// Lifecycle
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewSimulationMetricsCollector creates a new simulation metrics collector
func NewSimulationMetricsCollector() *SimulationMetricsCollector {
	return &SimulationMetricsCollector{
		cash: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cash_balance",
				Help:      "Cash after the latest settled week",
			},
			[]string{"session_id", "variant"},
		),

		inventory: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "inventory_units",
				Help:      "Ending inventory of the latest settled week",
			},
			[]string{"session_id", "variant"},
		),

		kpiScore: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "kpi_score",
				Help:      "Customer reputation score (0-100)",
			},
			[]string{"session_id", "variant"},
		),

		marketPrice: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "market_price",
				Help:      "Supplier unit price for the coming week",
			},
			[]string{"session_id", "variant"},
		),

		turnsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "turns_total",
				Help:      "Total number of settled weeks by variant and shipping mode",
			},
			[]string{"variant", "mode"},
		),

		missedUnitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "missed_units_total",
				Help:      "Total units of demand that could not be served",
			},
			[]string{"variant"},
		),

		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_total",
				Help:      "Scheduled supply-chain events that fired",
			},
			[]string{"variant", "event"},
		),

		gamesCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "games_completed_total",
				Help:      "Games played through the final week",
			},
			[]string{"variant"},
		),

		turnNetProfit: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "turn_net_profit",
				Help:      "Weekly net profit distribution",
				Buckets:   []float64{-5000, -2000, -1000, -500, 0, 500, 1000, 2000, 5000},
			},
			[]string{"variant"},
		),

		finalCash: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "final_cash",
				Help:      "Cash at the end of completed games",
				Buckets:   []float64{0, 5000, 10000, 15000, 20000, 30000, 50000},
			},
			[]string{"variant"},
		),

		activeSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "active_sessions",
				Help:      "Number of live game sessions",
			},
		),
	}
}

// Register registers all simulation metrics with the Prometheus registry
func (c *SimulationMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.cash,
		c.inventory,
		c.kpiScore,
		c.marketPrice,
		c.turnsTotal,
		c.missedUnitsTotal,
		c.eventsTotal,
		c.gamesCompleted,
		c.turnNetProfit,
		c.finalCash,
		c.activeSessions,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Start polls the live session count until ctx is cancelled or Stop is called
func (c *SimulationMetricsCollector) Start(ctx context.Context, sessions SessionCounter, interval time.Duration) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.pollSessions(sessions, interval)
}

// Stop gracefully stops the polling goroutine
func (c *SimulationMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

func (c *SimulationMetricsCollector) pollSessions(sessions SessionCounter, interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.activeSessions.Set(float64(sessions.Count()))

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.activeSessions.Set(float64(sessions.Count()))
		}
	}
}

// RecordTurn updates the state gauges and flow counters for one settled week
func (c *SimulationMetricsCollector) RecordTurn(sessionID, variant string, result simulation.TurnResult) {
	c.cash.WithLabelValues(sessionID, variant).Set(result.CashAfter)
	c.inventory.WithLabelValues(sessionID, variant).Set(float64(result.EndingInventory))
	c.kpiScore.WithLabelValues(sessionID, variant).Set(float64(result.KpiScore))
	c.marketPrice.WithLabelValues(sessionID, variant).Set(result.NextMarketPrice)

	c.turnsTotal.WithLabelValues(variant, result.ShippingMode.Name()).Inc()
	if result.MissedSales > 0 {
		c.missedUnitsTotal.WithLabelValues(variant).Add(float64(result.MissedSales))
	}
	for _, id := range result.EventIDs() {
		c.eventsTotal.WithLabelValues(variant, id).Inc()
	}
	c.turnNetProfit.WithLabelValues(variant).Observe(result.NetProfit)
}

// RecordGameCompleted counts a finished game and drops its per-session gauges
func (c *SimulationMetricsCollector) RecordGameCompleted(sessionID, variant string, report simulation.PerformanceReport) {
	c.gamesCompleted.WithLabelValues(variant).Inc()
	c.finalCash.WithLabelValues(variant).Observe(report.FinalCash)

	c.cash.DeleteLabelValues(sessionID, variant)
	c.inventory.DeleteLabelValues(sessionID, variant)
	c.kpiScore.DeleteLabelValues(sessionID, variant)
	c.marketPrice.DeleteLabelValues(sessionID, variant)
}
