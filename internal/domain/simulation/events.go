package simulation

import "sort"

// Event is a scheduled lead-time shock that fired (or will fire) in a given week
type Event struct {
	ID            string
	Week          int
	Kind          EventKind
	LeadTimeDelta int
	Description   string
}

// IsPermanent reports whether the event raises the base lead time for the rest of the game
func (e Event) IsPermanent() bool {
	return e.Kind == EventPermanent
}

// EventSchedule maps weeks to environmental shocks
type EventSchedule struct {
	events []Event
}

func NewEventSchedule(configs []EventConfig) EventSchedule {
	events := make([]Event, 0, len(configs))
	for _, c := range configs {
		events = append(events, Event{
			ID:            c.ID,
			Week:          c.Week,
			Kind:          c.Kind,
			LeadTimeDelta: c.LeadTimeDelta,
			Description:   c.Description,
		})
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Week < events[j].Week })
	return EventSchedule{events: events}
}

// Apply fires the events scheduled for week against state. Permanent events raise
// LeadTimeBase; one-shot events set the surcharge for orders placed this week only.
// A second call for the same week (or an earlier one) is a no-op.
func (s EventSchedule) Apply(week int, state *GameState) []Event {
	if week <= state.LastEventWeek {
		return nil
	}
	state.LastEventWeek = week
	state.OneShotDelay = 0

	var fired []Event
	for _, ev := range s.events {
		if ev.Week != week {
			continue
		}
		if ev.IsPermanent() {
			state.LeadTimeBase += ev.LeadTimeDelta
		} else {
			state.OneShotDelay += ev.LeadTimeDelta
		}
		fired = append(fired, ev)
	}
	return fired
}

// Upcoming lists events scheduled in [from, to]
func (s EventSchedule) Upcoming(from, to int) []Event {
	var out []Event
	for _, ev := range s.events {
		if ev.Week >= from && ev.Week <= to {
			out = append(out, ev)
		}
	}
	return out
}

// Len returns the number of scheduled events
func (s EventSchedule) Len() int {
	return len(s.events)
}
