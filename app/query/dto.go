package query

import (
	"github.com/shopspring/decimal"

	"github.com/stakecast/stakecast/models"
)

// MarketInfoResponse is the public view of a market.
type MarketInfoResponse struct {
	models.MarketSnapshot
	GroupKeys []string `json:"group_keys,omitempty"`
}

// OutcomeOdds reports the pari-mutuel implied odds for one outcome.
// Share is the outcome pool's fraction of the total pool; Multiplier is
// the gross payout per unit staked if this outcome wins. Both are display
// values derived from the integer pools.
type OutcomeOdds struct {
	OutcomeID  int64           `json:"outcome_id"`
	Label      string          `json:"label"`
	Pool       int64           `json:"pool"`
	Share      decimal.Decimal `json:"share"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// OddsResponse reports the odds across all outcomes of a market.
type OddsResponse struct {
	MarketID  int64              `json:"market_id"`
	State     models.MarketState `json:"state"`
	TotalPool int64              `json:"total_pool"`
	Outcomes  []OutcomeOdds      `json:"outcomes"`
}

// PositionResponse reports an account's stakes in one market.
type PositionResponse struct {
	MarketID  int64                  `json:"market_id"`
	Account   string                 `json:"account"`
	Stakes    []models.StakeSnapshot `json:"stakes"`
	Claimable int64                  `json:"claimable"`
}

// MarketSummary is a compact market listing entry.
type MarketSummary struct {
	ID        int64              `json:"id"`
	Question  string             `json:"question"`
	State     models.MarketState `json:"state"`
	TotalPool int64              `json:"total_pool"`
}
