package market

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/stakecast/stakecast/internal/sanitizer"
	"github.com/stakecast/stakecast/internal/validator"
	"github.com/stakecast/stakecast/models"
)

// OutcomeInput is one proposed outcome of a new market.
type OutcomeInput struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// CreateMarketRequest represents the request to create a market.
type CreateMarketRequest struct {
	Question  string         `json:"question"`
	Outcomes  []OutcomeInput `json:"outcomes"`
	GroupKeys []string       `json:"group_keys"`
}

// SanitizeAndValidate strips markup from free-text fields and checks the
// request against the module configuration.
func (r *CreateMarketRequest) SanitizeAndValidate(v *validator.Validator, s sanitizer.HTMLStripperer, cfg *Config) bool {
	r.Question = s.StripHTML(r.Question)

	v.Check(validator.NotBlank(r.Question), "question", "question is required")
	v.Check(validator.MaxRunes(r.Question, cfg.MaxQuestionLength),
		"question", fmt.Sprintf("question must be at most %d characters", cfg.MaxQuestionLength))

	v.Check(len(r.Outcomes) >= 2, "outcomes", "market requires at least two outcomes")
	v.Check(len(r.Outcomes) <= cfg.MaxOutcomes,
		"outcomes", fmt.Sprintf("market allows at most %d outcomes", cfg.MaxOutcomes))

	ids := make([]int64, 0, len(r.Outcomes))
	for i := range r.Outcomes {
		r.Outcomes[i].Label = s.StripHTML(r.Outcomes[i].Label)
		v.Check(r.Outcomes[i].ID > 0, "outcomes", "outcome ids must be positive")
		v.Check(validator.NotBlank(r.Outcomes[i].Label), "outcomes", "outcome labels are required")
		ids = append(ids, r.Outcomes[i].ID)
	}
	v.Check(validator.NoDuplicates(ids), "outcomes", "outcome ids must be unique")

	for _, key := range r.GroupKeys {
		v.Check(validator.NotBlank(key), "group_keys", "group keys must not be blank")
	}
	v.Check(validator.NoDuplicates(r.GroupKeys), "group_keys", "group keys must be unique")

	return v.Valid()
}

// OutcomeDefs converts the request outcomes to model definitions.
func (r *CreateMarketRequest) OutcomeDefs() []models.OutcomeDef {
	defs := make([]models.OutcomeDef, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		defs = append(defs, models.OutcomeDef{ID: o.ID, Label: o.Label})
	}
	return defs
}

// PlaceBetRequest represents the request to back an outcome.
type PlaceBetRequest struct {
	OutcomeID      int64      `json:"outcome_id"`
	Amount         int64      `json:"amount"`
	IdempotencyKey *uuid.UUID `json:"idempotency_key,omitempty"`
}

func (r *PlaceBetRequest) Validate(v *validator.Validator, cfg *Config) bool {
	v.Check(r.OutcomeID > 0, "outcome_id", "outcome id is required")
	v.Check(r.Amount >= cfg.MinBetAmount,
		"amount", fmt.Sprintf("amount must be at least %d", cfg.MinBetAmount))
	v.Check(r.Amount <= cfg.MaxBetAmount,
		"amount", fmt.Sprintf("amount must be at most %d", cfg.MaxBetAmount))
	return v.Valid()
}

// ResolveMarketRequest declares the winning outcome.
type ResolveMarketRequest struct {
	WinningOutcomeID int64 `json:"winning_outcome_id"`
}

func (r *ResolveMarketRequest) Validate(v *validator.Validator) bool {
	v.Check(r.WinningOutcomeID > 0, "winning_outcome_id", "winning outcome id is required")
	return v.Valid()
}

// MarketResponse mirrors a market snapshot.
type MarketResponse struct {
	models.MarketSnapshot
	GroupKeys []string `json:"group_keys,omitempty"`
}

// BetResponse confirms an accepted bet.
type BetResponse struct {
	ReceiptID uuid.UUID `json:"receipt_id"`
	MarketID  int64     `json:"market_id"`
	OutcomeID int64     `json:"outcome_id"`
	Amount    int64     `json:"amount"`
	Duplicate bool      `json:"duplicate"`
}

// ClaimResponse reports an authorized or pending payout.
type ClaimResponse struct {
	MarketID int64 `json:"market_id"`
	Amount   int64 `json:"amount"`
}
