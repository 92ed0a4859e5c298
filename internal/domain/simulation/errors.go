package simulation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDecision matches every *InvalidDecisionError via errors.Is
	ErrInvalidDecision = errors.New("invalid decision")

	// ErrMarketIntelUnavailable is returned when the variant has no market intelligence
	ErrMarketIntelUnavailable = errors.New("market intelligence is not available in this variant")

	// ErrMarketIntelAlreadyActive is returned on a second purchase
	ErrMarketIntelAlreadyActive = errors.New("market intelligence already active")
)

// InvalidDecisionError rejects a PlayerDecision before any state is touched
type InvalidDecisionError struct {
	Field  string
	Reason string
}

func (e *InvalidDecisionError) Error() string {
	return fmt.Sprintf("invalid decision: %s - %s", e.Field, e.Reason)
}

func (e *InvalidDecisionError) Is(target error) bool {
	return target == ErrInvalidDecision
}

func newInvalidDecision(field, format string, args ...interface{}) *InvalidDecisionError {
	return &InvalidDecisionError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InsufficientFundsError is returned when cash cannot cover a purchase
type InsufficientFundsError struct {
	Required  float64
	Available float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %.0f, have %.0f", e.Required, e.Available)
}
