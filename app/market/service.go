package market

import (
	"context"
	"errors"
	"fmt"

	"github.com/stakecast/stakecast/app/registry"
	"github.com/stakecast/stakecast/internal/ledger"
	"github.com/stakecast/stakecast/internal/logger"
	"github.com/stakecast/stakecast/models"
)

// service implements the Service interface. The registry's in-memory
// markets are the system of record; the repository journals accepted
// bets, authorized claims, and lifecycle events for offline audit.
type service struct {
	registry *registry.Registry
	repo     Repository
	config   *Config
	logger   logger.Logger
}

// NewService creates a new market service
func NewService(reg *registry.Registry, repo Repository, config *Config, log logger.Logger) Service {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &service{
		registry: reg,
		repo:     repo,
		config:   config,
		logger:   log,
	}
}

func (s *service) CreateMarket(ctx context.Context, creator string, req *CreateMarketRequest) (*MarketResponse, error) {
	m, err := s.registry.CreateMarket(creator, req.Question, req.OutcomeDefs(), req.GroupKeys)
	if err != nil {
		return nil, err
	}

	s.journalEvent(ctx, m.ID(), "created", creator, fmt.Sprintf("outcomes=%d", len(req.Outcomes)))

	return &MarketResponse{
		MarketSnapshot: m.Snapshot(),
		GroupKeys:      s.registry.GroupsForMarket(m.ID()),
	}, nil
}

func (s *service) PlaceBet(ctx context.Context, account string, marketID int64, req *PlaceBetRequest) (*BetResponse, error) {
	m, err := s.registry.Get(marketID)
	if err != nil {
		return nil, err
	}

	receipt := &models.BetReceipt{
		IdempotencyKey: req.IdempotencyKey,
		MarketID:       marketID,
		Account:        account,
		OutcomeID:      req.OutcomeID,
		Amount:         req.Amount,
	}

	// A keyed bet reserves its key before the pool moves. Concurrent
	// retries with the same key race on the unique index; only the
	// winning insert charges, every other caller replays the receipt.
	if req.IdempotencyKey != nil {
		if err := s.repo.CreateBetReceipt(ctx, receipt); err != nil {
			if errors.Is(err, models.ErrDuplicateIdempotencyKey) {
				existing, lookupErr := s.repo.GetReceiptByIdempotencyKey(ctx, *req.IdempotencyKey)
				if lookupErr != nil {
					return nil, lookupErr
				}
				return duplicateResponse(existing), nil
			}
			return nil, err
		}
	}

	if err := m.PlaceBet(account, req.OutcomeID, ledger.Amount(req.Amount)); err != nil {
		if req.IdempotencyKey != nil {
			s.releaseReceipt(ctx, receipt)
		}
		return nil, err
	}

	if req.IdempotencyKey == nil {
		if err := s.repo.CreateBetReceipt(ctx, receipt); err != nil {
			// The pool already moved; losing the receipt is an audit gap, not
			// a reason to reject the bet.
			s.logger.Error(fmt.Errorf("bet receipt journal write: %w", err), map[string]interface{}{
				"market_id": marketID,
				"account":   account,
			})
		}
	}

	return &BetResponse{
		ReceiptID: receipt.ID,
		MarketID:  marketID,
		OutcomeID: req.OutcomeID,
		Amount:    req.Amount,
	}, nil
}

// releaseReceipt frees an idempotency reservation whose bet was
// rejected, so the key can be retried.
func (s *service) releaseReceipt(ctx context.Context, receipt *models.BetReceipt) {
	if err := s.repo.DeleteBetReceipt(ctx, receipt.ID); err != nil {
		s.logger.Error(fmt.Errorf("bet reservation release: %w", err), map[string]interface{}{
			"receipt_id": receipt.ID.String(),
			"market_id":  receipt.MarketID,
		})
	}
}

func duplicateResponse(receipt *models.BetReceipt) *BetResponse {
	return &BetResponse{
		ReceiptID: receipt.ID,
		MarketID:  receipt.MarketID,
		OutcomeID: receipt.OutcomeID,
		Amount:    receipt.Amount,
		Duplicate: true,
	}
}

func (s *service) CloseMarket(ctx context.Context, actor string, marketID int64) (*MarketResponse, error) {
	if !s.registry.CanManage(actor) {
		return nil, models.ErrNotAuthorized
	}

	m, err := s.registry.Get(marketID)
	if err != nil {
		return nil, err
	}
	if err := m.Close(); err != nil {
		return nil, err
	}

	s.journalEvent(ctx, marketID, "closed", actor, "")

	return &MarketResponse{
		MarketSnapshot: m.Snapshot(),
		GroupKeys:      s.registry.GroupsForMarket(marketID),
	}, nil
}

func (s *service) ResolveMarket(ctx context.Context, actor string, marketID int64, req *ResolveMarketRequest) (*MarketResponse, error) {
	if !s.registry.CanManage(actor) {
		return nil, models.ErrNotAuthorized
	}

	m, err := s.registry.Get(marketID)
	if err != nil {
		return nil, err
	}
	if err := m.Resolve(req.WinningOutcomeID); err != nil {
		return nil, err
	}

	s.journalEvent(ctx, marketID, "resolved", actor, fmt.Sprintf("winning_outcome=%d", req.WinningOutcomeID))

	return &MarketResponse{
		MarketSnapshot: m.Snapshot(),
		GroupKeys:      s.registry.GroupsForMarket(marketID),
	}, nil
}

func (s *service) Claim(ctx context.Context, account string, marketID int64) (*ClaimResponse, error) {
	m, err := s.registry.Get(marketID)
	if err != nil {
		return nil, err
	}

	amount, err := m.Claim(account)
	if err != nil {
		return nil, err
	}

	winningOutcomeID, _ := m.WinningOutcome()
	record := &models.ClaimRecord{
		MarketID:  marketID,
		Account:   account,
		OutcomeID: winningOutcomeID,
		Amount:    int64(amount),
	}
	if err := s.repo.CreateClaimRecord(ctx, record); err != nil {
		s.logger.Error(fmt.Errorf("claim record journal write: %w", err), map[string]interface{}{
			"market_id": marketID,
			"account":   account,
		})
	}

	return &ClaimResponse{MarketID: marketID, Amount: int64(amount)}, nil
}

func (s *service) Claimable(_ context.Context, account string, marketID int64) (*ClaimResponse, error) {
	m, err := s.registry.Get(marketID)
	if err != nil {
		return nil, err
	}
	return &ClaimResponse{MarketID: marketID, Amount: int64(m.ClaimableAmount(account))}, nil
}

func (s *service) journalEvent(ctx context.Context, marketID int64, event, actor, detail string) {
	record := &models.MarketEvent{
		MarketID: marketID,
		Event:    event,
		Actor:    actor,
		Detail:   detail,
	}
	if err := s.repo.CreateMarketEvent(ctx, record); err != nil {
		s.logger.Error(fmt.Errorf("market event journal write: %w", err), map[string]interface{}{
			"market_id": marketID,
			"event":     event,
		})
	}
}
