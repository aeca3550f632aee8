package market

import (
	"context"

	"github.com/google/uuid"

	"github.com/stakecast/stakecast/models"
)

// Repository defines the journal data access for bets, claims, and
// lifecycle events.
type Repository interface {
	CreateBetReceipt(ctx context.Context, receipt *models.BetReceipt) error
	DeleteBetReceipt(ctx context.Context, id uuid.UUID) error
	GetReceiptByIdempotencyKey(ctx context.Context, key uuid.UUID) (*models.BetReceipt, error)
	GetReceiptsByAccount(ctx context.Context, account string) ([]models.BetReceipt, error)
	CreateClaimRecord(ctx context.Context, record *models.ClaimRecord) error
	CreateMarketEvent(ctx context.Context, event *models.MarketEvent) error
}

// Service defines the market business logic
type Service interface {
	CreateMarket(ctx context.Context, creator string, req *CreateMarketRequest) (*MarketResponse, error)
	PlaceBet(ctx context.Context, account string, marketID int64, req *PlaceBetRequest) (*BetResponse, error)
	CloseMarket(ctx context.Context, actor string, marketID int64) (*MarketResponse, error)
	ResolveMarket(ctx context.Context, actor string, marketID int64, req *ResolveMarketRequest) (*MarketResponse, error)
	Claim(ctx context.Context, account string, marketID int64) (*ClaimResponse, error)
	Claimable(ctx context.Context, account string, marketID int64) (*ClaimResponse, error)
}
