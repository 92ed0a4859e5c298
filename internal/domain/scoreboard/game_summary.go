package scoreboard

import (
	"strings"
	"time"

	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

// GameSummary is the archived outcome of a finished game.
// Summaries are immutable once created.
type GameSummary struct {
	id            SummaryID
	sessionID     string
	variant       string
	weeksPlayed   int
	finalCash     float64
	totalProfit   float64
	fillRate      float64
	bullwhipRatio float64
	finalKpi      int
	completedAt   time.Time
}

// NewGameSummary builds a summary from a session's performance report
func NewGameSummary(sessionID, variant string, report simulation.PerformanceReport, completedAt time.Time) (*GameSummary, error) {
	if sessionID == "" {
		return nil, &ErrInvalidSummary{Field: "session_id", Reason: "session_id cannot be empty"}
	}
	if variant == "" {
		return nil, &ErrInvalidSummary{Field: "variant", Reason: "variant cannot be empty"}
	}
	if report.WeeksPlayed < 1 {
		return nil, &ErrInvalidSummary{Field: "weeks_played", Reason: "a summary needs at least one played week"}
	}

	return &GameSummary{
		id:            NewSummaryID(),
		sessionID:     sessionID,
		variant:       strings.ToLower(variant),
		weeksPlayed:   report.WeeksPlayed,
		finalCash:     report.FinalCash,
		totalProfit:   report.TotalNetProfit,
		fillRate:      report.FillRate,
		bullwhipRatio: report.BullwhipRatio,
		finalKpi:      report.FinalKpi,
		completedAt:   completedAt,
	}, nil
}

// ReconstructGameSummary rebuilds a summary from persistence without validation
func ReconstructGameSummary(
	id SummaryID,
	sessionID string,
	variant string,
	weeksPlayed int,
	finalCash float64,
	totalProfit float64,
	fillRate float64,
	bullwhipRatio float64,
	finalKpi int,
	completedAt time.Time,
) *GameSummary {
	return &GameSummary{
		id:            id,
		sessionID:     sessionID,
		variant:       variant,
		weeksPlayed:   weeksPlayed,
		finalCash:     finalCash,
		totalProfit:   totalProfit,
		fillRate:      fillRate,
		bullwhipRatio: bullwhipRatio,
		finalKpi:      finalKpi,
		completedAt:   completedAt,
	}
}

func (g *GameSummary) ID() SummaryID          { return g.id }
func (g *GameSummary) SessionID() string      { return g.sessionID }
func (g *GameSummary) Variant() string        { return g.variant }
func (g *GameSummary) WeeksPlayed() int       { return g.weeksPlayed }
func (g *GameSummary) FinalCash() float64     { return g.finalCash }
func (g *GameSummary) TotalProfit() float64   { return g.totalProfit }
func (g *GameSummary) FillRate() float64      { return g.fillRate }
func (g *GameSummary) BullwhipRatio() float64 { return g.bullwhipRatio }
func (g *GameSummary) FinalKpi() int          { return g.finalKpi }
func (g *GameSummary) CompletedAt() time.Time { return g.completedAt }

// TurnRecord is one archived week of a finished game
type TurnRecord struct {
	Week            int
	Demand          int
	OrderQuantity   int
	ShippingMode    string
	LeadTime        int
	Arrivals        int
	Sales           int
	MissedSales     int
	EndingInventory int
	KpiScore        int
	MarketPrice     float64
	NetProfit       float64
	CashAfter       float64
	Events          []string
}

// TurnRecordsFromHistory converts engine results into archive records
func TurnRecordsFromHistory(history []simulation.TurnResult) []TurnRecord {
	records := make([]TurnRecord, 0, len(history))
	for _, r := range history {
		records = append(records, TurnRecord{
			Week:            r.Week,
			Demand:          r.Demand,
			OrderQuantity:   r.OrderQuantity,
			ShippingMode:    r.ShippingMode.Name(),
			LeadTime:        r.EffectiveLeadTime,
			Arrivals:        r.Arrivals,
			Sales:           r.Sales,
			MissedSales:     r.MissedSales,
			EndingInventory: r.EndingInventory,
			KpiScore:        r.KpiScore,
			MarketPrice:     r.MarketPrice,
			NetProfit:       r.NetProfit,
			CashAfter:       r.CashAfter,
			Events:          r.EventIDs(),
		})
	}
	return records
}
