package models

import (
	"strings"

	"github.com/stakecast/stakecast/internal/ledger"
)

// OutcomeDef describes one candidate outcome at market creation time.
type OutcomeDef struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// Validate performs validation on an outcome definition.
func (d OutcomeDef) Validate() error {
	if d.ID < 0 {
		return ErrInvalidOutcomeSet
	}
	if strings.TrimSpace(d.Label) == "" {
		return ErrInvalidOutcomeLabel
	}
	return nil
}

// Outcome is one candidate in a market. The label is immutable after
// creation; the pool only grows, and only through accepted bets.
type Outcome struct {
	ID    int64
	Label string
	Pool  ledger.Amount
}

// OutcomeSnapshot is the read-only view of an outcome handed to callers.
type OutcomeSnapshot struct {
	ID    int64         `json:"id"`
	Label string        `json:"label"`
	Pool  ledger.Amount `json:"pool"`
}
