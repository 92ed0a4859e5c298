package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/andrescamacho/sc-commander/internal/application/game/queries"
	"github.com/andrescamacho/sc-commander/internal/domain/scoreboard"
	"github.com/andrescamacho/sc-commander/internal/domain/simulation"
)

const rule = "─────────────────────────────────────────────────────────────────────────────"

// printStatus renders the state a player decides on
func printStatus(w io.Writer, view *queries.GetSnapshotResponse) {
	state := view.State
	cfg := view.Config

	fmt.Fprintf(w, "\nWEEK %d of %d (%s)\n", state.Week, cfg.HorizonWeeks, view.Info.Variant)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  %-16s %s\n", "Cash:", formatMoney(state.Cash))
	fmt.Fprintf(w, "  %-16s %d\n", "Inventory:", state.Inventory)
	fmt.Fprintf(w, "  %-16s %d\n", "Pipeline:", state.PipelineInventory())
	fmt.Fprintf(w, "  %-16s %s\n", "Market price:", formatMoney(state.MarketPrice))
	if cfg.Capabilities.HasShippingModes {
		fmt.Fprintf(w, "  %-16s SEA %dw, AIR %dw\n", "Lead time:", view.SeaLeadTime, view.AirLeadTime)
	} else {
		fmt.Fprintf(w, "  %-16s %dw\n", "Lead time:", view.SeaLeadTime)
	}
	if cfg.Capabilities.HasWarehouse {
		fmt.Fprintf(w, "  %-16s %d units\n", "Warehouse:", cfg.Warehouse.Capacity)
	}
	if cfg.Capabilities.HasKpi {
		fmt.Fprintf(w, "  %-16s %d (%s)\n", "KPI:", state.KpiScore, view.KpiBand)
	}
	if state.CongestionActive {
		fmt.Fprintf(w, "  %-16s upstream congestion this week\n", "Alert:")
	}

	for _, s := range state.PendingOrders.Pending() {
		fmt.Fprintf(w, "  %-16s %d units arriving week %d\n", "Incoming:", s.Quantity, s.ArrivalWeek)
	}

	if state.MarketIntelActive {
		printForecast(w, view.Forecast)
	}
}

func printForecast(w io.Writer, hints []simulation.ForecastHint) {
	if len(hints) == 0 {
		fmt.Fprintln(w, "  No market intelligence for the coming weeks")
		return
	}
	fmt.Fprintln(w, "\n  MARKET INTELLIGENCE")
	for _, h := range hints {
		fmt.Fprintf(w, "  week %-3d %s\n", h.Week, h.Message)
	}
}

// printTurn renders the outcome of one settled week
func printTurn(w io.Writer, r simulation.TurnResult) {
	b := r.Breakdown

	fmt.Fprintf(w, "\nWEEK %d SETTLED\n", r.Week)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  %-16s %d (sold %d, missed %d)\n", "Demand:", r.Demand, r.Sales, r.MissedSales)
	fmt.Fprintf(w, "  %-16s %d\n", "Arrivals:", r.Arrivals)
	fmt.Fprintf(w, "  %-16s %d %s, arrives week %d\n", "Ordered:", r.OrderQuantity, r.ShippingMode, r.ArrivalWeek)
	fmt.Fprintf(w, "  %-16s %d\n", "End inventory:", r.EndingInventory)

	fmt.Fprintf(w, "  %-16s %s\n", "Revenue:", formatMoney(b.Revenue))
	fmt.Fprintf(w, "  %-16s %s\n", "Procurement:", formatMoney(-b.ProcurementCost))
	fmt.Fprintf(w, "  %-16s %s\n", "Holding:", formatMoney(-b.HoldingCost))
	fmt.Fprintf(w, "  %-16s %s\n", "Shortage:", formatMoney(-b.ShortagePenalty))
	if b.OverflowPenalty > 0 {
		fmt.Fprintf(w, "  %-16s %s (%d units)\n", "Overflow:", formatMoney(-b.OverflowPenalty), b.OverflowUnits)
	}
	if b.KpiFine > 0 {
		fmt.Fprintf(w, "  %-16s %s\n", "KPI fine:", formatMoney(-b.KpiFine))
	}
	if b.IntelligenceCost > 0 {
		fmt.Fprintf(w, "  %-16s %s\n", "Intelligence:", formatMoney(-b.IntelligenceCost))
	}
	fmt.Fprintf(w, "  %-16s %s\n", "Net profit:", formatSigned(r.NetProfit))
	fmt.Fprintf(w, "  %-16s %s\n", "Cash:", formatMoney(r.CashAfter))

	for _, ev := range r.Events {
		fmt.Fprintf(w, "  EVENT: %s\n", ev.Description)
	}
	if r.BlackSwan {
		fmt.Fprintln(w, "  EVENT: demand spike")
	}
	if r.CongestionNext {
		fmt.Fprintln(w, "  WARNING: upstream congestion expected next week")
	}
}

// printHistory renders one row per settled week
func printHistory(w io.Writer, history []simulation.TurnResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Week\tDemand\tSales\tMissed\tOrder\tMode\tArrive\tInventory\tKPI\tProfit\tCash\tEvents")
	fmt.Fprintln(tw, "────\t──────\t─────\t──────\t─────\t────\t──────\t─────────\t───\t──────\t────\t──────")

	for _, r := range history {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
			r.Week,
			r.Demand,
			r.Sales,
			r.MissedSales,
			r.OrderQuantity,
			r.ShippingMode,
			r.ArrivalWeek,
			r.EndingInventory,
			r.KpiScore,
			formatSigned(r.NetProfit),
			formatMoney(r.CashAfter),
			strings.Join(r.EventIDs(), ","),
		)
	}

	tw.Flush()
}

// printReport renders the performance report of a played history
func printReport(w io.Writer, report simulation.PerformanceReport) {
	fmt.Fprintln(w, "\nPERFORMANCE REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  %-20s %d\n", "Weeks played:", report.WeeksPlayed)
	fmt.Fprintf(w, "  %-20s %s\n", "Final cash:", formatMoney(report.FinalCash))
	fmt.Fprintf(w, "  %-20s %s\n", "Total net profit:", formatSigned(report.TotalNetProfit))
	fmt.Fprintf(w, "  %-20s %s\n", "Avg weekly profit:", formatSigned(report.AverageNetProfit))
	fmt.Fprintf(w, "  %-20s %d / %d (%.1f%%)\n", "Units sold:", report.TotalSales, report.TotalDemand, report.FillRate*100)
	fmt.Fprintf(w, "  %-20s %d\n", "Units missed:", report.TotalMissed)
	fmt.Fprintf(w, "  %-20s %d\n", "Units ordered:", report.TotalOrdered)
	fmt.Fprintf(w, "  %-20s %d\n", "Peak inventory:", report.PeakInventory)
	if report.OverflowWeeks > 0 {
		fmt.Fprintf(w, "  %-20s %d\n", "Overflow weeks:", report.OverflowWeeks)
	}
	fmt.Fprintf(w, "  %-20s %d\n", "Final KPI:", report.FinalKpi)
	fmt.Fprintf(w, "  %-20s %.2f (order var %.1f / demand var %.1f)\n", "Bullwhip ratio:",
		report.BullwhipRatio, report.OrderVariance, report.DemandVariance)
	fmt.Fprintln(w, rule)
}

// printScores renders a scoreboard listing
func printScores(w io.Writer, summaries []*scoreboard.GameSummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No finished games found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Rank\tSession\tVariant\tWeeks\tFinal Cash\tProfit\tFill Rate\tBullwhip\tKPI\tCompleted")
	fmt.Fprintln(tw, "────\t───────\t───────\t─────\t──────────\t──────\t─────────\t────────\t───\t─────────")

	for i, s := range summaries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%.1f%%\t%.2f\t%d\t%s\n",
			i+1,
			s.SessionID(),
			s.Variant(),
			s.WeeksPlayed(),
			formatMoney(s.FinalCash()),
			formatSigned(s.TotalProfit()),
			s.FillRate()*100,
			s.BullwhipRatio(),
			s.FinalKpi(),
			s.CompletedAt().Format("2006-01-02 15:04"),
		)
	}

	tw.Flush()
}

// printArchivedTurns renders the stored weeks of a finished game
func printArchivedTurns(w io.Writer, turns []scoreboard.TurnRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Week\tDemand\tSales\tMissed\tOrder\tMode\tLead\tInventory\tKPI\tProfit\tCash\tEvents")
	fmt.Fprintln(tw, "────\t──────\t─────\t──────\t─────\t────\t────\t─────────\t───\t──────\t────\t──────")

	for _, t := range turns {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
			t.Week,
			t.Demand,
			t.Sales,
			t.MissedSales,
			t.OrderQuantity,
			t.ShippingMode,
			t.LeadTime,
			t.EndingInventory,
			t.KpiScore,
			formatSigned(t.NetProfit),
			formatMoney(t.CashAfter),
			strings.Join(t.Events, ","),
		)
	}

	tw.Flush()
}

// formatSigned formats money with an explicit sign
func formatSigned(amount float64) string {
	if amount >= 0 {
		return "+" + formatMoney(amount)
	}
	return formatMoney(amount)
}

// formatMoney formats money with a thousands separator and two decimals
func formatMoney(amount float64) string {
	cents := int64(math.Round(math.Abs(amount) * 100))
	out := addThousandsSeparator(cents/100) + fmt.Sprintf(".%02d", cents%100)
	if amount < 0 && cents > 0 {
		return "-" + out
	}
	return out
}

// addThousandsSeparator adds commas to a number (e.g., 1234567 -> "1,234,567")
func addThousandsSeparator(n int64) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	var b strings.Builder
	lead := len(str) % 3
	if lead > 0 {
		b.WriteString(str[:lead])
	}
	for i := lead; i < len(str); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(str[i : i+3])
	}
	return b.String()
}
