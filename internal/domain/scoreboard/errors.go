package scoreboard

import "fmt"

// ErrInvalidSummary represents validation errors for game summaries
type ErrInvalidSummary struct {
	Field  string
	Reason string
}

func (e *ErrInvalidSummary) Error() string {
	return fmt.Sprintf("invalid game summary: %s - %s", e.Field, e.Reason)
}

// ErrSummaryNotFound is returned when no archived game matches a session
type ErrSummaryNotFound struct {
	SessionID string
}

func (e *ErrSummaryNotFound) Error() string {
	return fmt.Sprintf("game summary not found: session_id=%s", e.SessionID)
}
