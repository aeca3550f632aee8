package query

import "context"

// Service defines the read-only market query facade.
type Service interface {
	GetMarket(ctx context.Context, id int64) (*MarketInfoResponse, error)
	GetOdds(ctx context.Context, id int64) (*OddsResponse, error)
	GetPosition(ctx context.Context, account string, marketID int64) (*PositionResponse, error)
	ListOpenMarkets(ctx context.Context) ([]MarketSummary, error)
	ListGroupMarkets(ctx context.Context, groupKey string) ([]MarketSummary, error)
}
