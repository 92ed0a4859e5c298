package scoreboard

import (
	"fmt"

	"github.com/google/uuid"
)

// SummaryID identifies an archived game
type SummaryID struct {
	value string
}

// NewSummaryID generates a random SummaryID
func NewSummaryID() SummaryID {
	return SummaryID{value: uuid.New().String()}
}

// NewSummaryIDFromString parses a stored SummaryID
func NewSummaryIDFromString(id string) (SummaryID, error) {
	if id == "" {
		return SummaryID{}, fmt.Errorf("summary_id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return SummaryID{}, fmt.Errorf("invalid summary_id format: %w", err)
	}
	return SummaryID{value: id}, nil
}

// MustNewSummaryIDFromString panics on malformed IDs. Use only for values read from the database.
func MustNewSummaryIDFromString(id string) SummaryID {
	sid, err := NewSummaryIDFromString(id)
	if err != nil {
		panic(err)
	}
	return sid
}

func (s SummaryID) Value() string {
	return s.value
}

func (s SummaryID) String() string {
	return s.value
}

func (s SummaryID) IsZero() bool {
	return s.value == ""
}
