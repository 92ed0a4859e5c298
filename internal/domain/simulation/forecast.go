package simulation

import "fmt"

// HintKind categorizes a forecast hint
type HintKind string

const (
	HintDemandSpike   HintKind = "demand_spike"
	HintDemandBase    HintKind = "demand_base"
	HintLeadTimeEvent HintKind = "lead_time_event"
)

// ForecastHint is one piece of market intelligence about an upcoming week
type ForecastHint struct {
	Week           int
	Kind           HintKind
	ExpectedDemand int
	Message        string
}

// BuildForecast lists what is known about weeks (currentWeek, currentWeek+lookahead]
func BuildForecast(cfg Config, events EventSchedule, currentWeek int) []ForecastHint {
	lookahead := cfg.Intel.LookaheadWeeks
	if lookahead <= 0 {
		return nil
	}
	from := currentWeek + 1
	to := currentWeek + lookahead
	if to > cfg.HorizonWeeks {
		to = cfg.HorizonWeeks
	}

	var hints []ForecastHint
	switch cfg.Demand.Kind {
	case DemandScheduled:
		model := ScheduledDemand{Calendar: cfg.Demand.Calendar, DefaultBase: cfg.Demand.DefaultBase}
		for week := from; week <= to; week++ {
			base := model.Base(week)
			hints = append(hints, ForecastHint{
				Week:           week,
				Kind:           HintDemandBase,
				ExpectedDemand: base,
				Message:        fmt.Sprintf("Week %d demand expected around %d units", week, base),
			})
		}
	default:
		d := cfg.Demand
		if d.ShockWeek >= from && d.ShockWeek <= to && d.ShockAmount > 0 {
			hints = append(hints, ForecastHint{
				Week:           d.ShockWeek,
				Kind:           HintDemandSpike,
				ExpectedDemand: int(d.Mean) + d.ShockAmount,
				Message:        fmt.Sprintf("Analysts predict a demand spike of +%d units in week %d", d.ShockAmount, d.ShockWeek),
			})
		}
	}

	for _, ev := range events.Upcoming(from, to) {
		msg := fmt.Sprintf("Week %d: %s", ev.Week, ev.Description)
		if ev.Description == "" {
			msg = fmt.Sprintf("Week %d: %s adds %d week(s) of sea lead time", ev.Week, ev.ID, ev.LeadTimeDelta)
		}
		hints = append(hints, ForecastHint{
			Week:    ev.Week,
			Kind:    HintLeadTimeEvent,
			Message: msg,
		})
	}
	return hints
}
