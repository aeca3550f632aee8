package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BetReceipt is the durable record of an accepted bet. The in-memory market
// is the system of record for pool totals; receipts exist so accepted bets
// survive a restart audit and so idempotency keys can be replayed.
type BetReceipt struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	IdempotencyKey *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"idempotency_key,omitempty"`
	MarketID       int64      `gorm:"not null;index:idx_bet_receipts_market" json:"market_id"`
	Account        string     `gorm:"type:varchar(100);not null;index:idx_bet_receipts_account" json:"account"`
	OutcomeID      int64      `gorm:"not null" json:"outcome_id"`
	Amount         int64      `gorm:"not null;check:amount > 0" json:"amount"`
	PlacedAt       time.Time  `gorm:"autoCreateTime" json:"placed_at"`
}

// TableName specifies the table name for BetReceipt model
func (*BetReceipt) TableName() string {
	return "bet_receipts"
}

// BeforeCreate sets up the model before creation
func (r *BetReceipt) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Validate performs validation on the bet receipt
func (r *BetReceipt) Validate() error {
	if r.MarketID <= 0 {
		return ErrMarketNotFound
	}
	if r.Account == "" {
		return ErrInvalidAccount
	}
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ClaimRecord is the durable record of an authorized payout, handed to the
// funds-movement collaborator. One row per stake, ever.
type ClaimRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MarketID     int64     `gorm:"not null;index:idx_claim_records_market" json:"market_id"`
	Account      string    `gorm:"type:varchar(100);not null" json:"account"`
	OutcomeID    int64     `gorm:"not null" json:"outcome_id"`
	Amount       int64     `gorm:"not null" json:"amount"`
	AuthorizedAt time.Time `gorm:"autoCreateTime" json:"authorized_at"`
}

// TableName specifies the table name for ClaimRecord model
func (*ClaimRecord) TableName() string {
	return "claim_records"
}

// BeforeCreate sets up the model before creation
func (c *ClaimRecord) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// MarketEvent journals lifecycle transitions (created, closed, resolved) for
// offline reconciliation.
type MarketEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MarketID  int64     `gorm:"not null;index:idx_market_events_market" json:"market_id"`
	Event     string    `gorm:"type:varchar(20);not null" json:"event"`
	Actor     string    `gorm:"type:varchar(100)" json:"actor"`
	Detail    string    `gorm:"type:text" json:"detail"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for MarketEvent model
func (*MarketEvent) TableName() string {
	return "market_events"
}

// BeforeCreate sets up the model before creation
func (e *MarketEvent) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
