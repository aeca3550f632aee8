package query

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stakecast/stakecast/app/registry"
	"github.com/stakecast/stakecast/internal/cache"
	"github.com/stakecast/stakecast/internal/logger"
	"github.com/stakecast/stakecast/models"
)

// OddsCacheTTL bounds how stale a cached odds snapshot may be. Odds are
// derived data; a few seconds of staleness is acceptable on the read path.
const OddsCacheTTL = 3 * time.Second

// service implements the query facade on top of the registry's markets.
// It only ever takes snapshots; it never mutates market state.
type service struct {
	registry  *registry.Registry
	oddsCache cache.Cache[OddsResponse]
	logger    logger.Logger
}

// NewService creates a new query service
func NewService(reg *registry.Registry, oddsCache cache.Cache[OddsResponse], log logger.Logger) Service {
	if oddsCache == nil {
		oddsCache = cache.NewMemoryCache[OddsResponse]()
	}
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &service{
		registry:  reg,
		oddsCache: oddsCache,
		logger:    log,
	}
}

func (s *service) GetMarket(_ context.Context, id int64) (*MarketInfoResponse, error) {
	m, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}
	return &MarketInfoResponse{
		MarketSnapshot: m.Snapshot(),
		GroupKeys:      s.registry.GroupsForMarket(id),
	}, nil
}

func (s *service) GetOdds(ctx context.Context, id int64) (*OddsResponse, error) {
	cacheKey := fmt.Sprintf("odds:%d", id)
	if cached, err := s.oddsCache.Get(ctx, cacheKey); err == nil {
		return &cached, nil
	}

	m, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}

	snap := m.Snapshot()
	resp := buildOdds(snap)

	if err := s.oddsCache.Set(ctx, cacheKey, *resp, OddsCacheTTL); err != nil {
		s.logger.Error(fmt.Errorf("odds cache set: %w", err), map[string]interface{}{"market_id": id})
	}
	return resp, nil
}

// buildOdds derives display odds from a snapshot. An empty market has no
// meaningful odds: every share and multiplier stays zero. An outcome with
// an empty pool keeps a zero multiplier even when the market has money.
func buildOdds(snap models.MarketSnapshot) *OddsResponse {
	resp := &OddsResponse{
		MarketID:  snap.ID,
		State:     snap.State,
		TotalPool: int64(snap.TotalPool),
		Outcomes:  make([]OutcomeOdds, 0, len(snap.Outcomes)),
	}

	total := decimal.NewFromInt(int64(snap.TotalPool))
	for _, o := range snap.Outcomes {
		odds := OutcomeOdds{
			OutcomeID: o.ID,
			Label:     o.Label,
			Pool:      int64(o.Pool),
		}
		pool := decimal.NewFromInt(int64(o.Pool))
		if snap.TotalPool > 0 {
			odds.Share = pool.Div(total).Round(4)
			if o.Pool > 0 {
				odds.Multiplier = total.Div(pool).Round(4)
			}
		}
		resp.Outcomes = append(resp.Outcomes, odds)
	}
	return resp
}

func (s *service) GetPosition(_ context.Context, account string, marketID int64) (*PositionResponse, error) {
	m, err := s.registry.Get(marketID)
	if err != nil {
		return nil, err
	}
	return &PositionResponse{
		MarketID:  marketID,
		Account:   account,
		Stakes:    m.Position(account),
		Claimable: int64(m.ClaimableAmount(account)),
	}, nil
}

func (s *service) ListOpenMarkets(_ context.Context) ([]MarketSummary, error) {
	return s.summaries(s.registry.OpenMarkets()), nil
}

func (s *service) ListGroupMarkets(_ context.Context, groupKey string) ([]MarketSummary, error) {
	return s.summaries(s.registry.MarketsForGroup(groupKey)), nil
}

func (s *service) summaries(ids []int64) []MarketSummary {
	out := make([]MarketSummary, 0, len(ids))
	for _, id := range ids {
		m, err := s.registry.Get(id)
		if err != nil {
			// Index and market map can only diverge through a bug; skip
			// rather than fail the whole listing.
			continue
		}
		snap := m.Snapshot()
		out = append(out, MarketSummary{
			ID:        snap.ID,
			Question:  snap.Question,
			State:     snap.State,
			TotalPool: int64(snap.TotalPool),
		})
	}
	return out
}
