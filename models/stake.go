package models

import "github.com/stakecast/stakecast/internal/ledger"

// Stake is one account's accumulated position in one outcome of one market.
// Bets on the same (account, outcome) pair accumulate into a single stake;
// the amount never decreases and the record is never deleted. The claimed
// flag flips false to true exactly once, on payout authorization.
type Stake struct {
	Account   string
	OutcomeID int64
	Amount    ledger.Amount
	Claimed   bool
}

type stakeKey struct {
	account   string
	outcomeID int64
}

// StakeSnapshot is the read-only view of a stake handed to callers.
type StakeSnapshot struct {
	OutcomeID int64         `json:"outcome_id"`
	Amount    ledger.Amount `json:"amount"`
	Claimed   bool          `json:"claimed"`
}
