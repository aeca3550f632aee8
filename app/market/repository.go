package market

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stakecast/stakecast/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new journal repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBetReceipt(ctx context.Context, receipt *models.BetReceipt) error {
	if err := receipt.Validate(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Create(receipt).Error
	if err != nil && isUniqueViolation(err) {
		return models.ErrDuplicateIdempotencyKey
	}
	return err
}

func (r *repository) DeleteBetReceipt(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.BetReceipt{}).Error
}

func (r *repository) GetReceiptByIdempotencyKey(ctx context.Context, key uuid.UUID) (*models.BetReceipt, error) {
	var receipt models.BetReceipt
	err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		First(&receipt).Error
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *repository) GetReceiptsByAccount(ctx context.Context, account string) ([]models.BetReceipt, error) {
	var receipts []models.BetReceipt
	err := r.db.WithContext(ctx).
		Where("account = ?", account).
		Order("placed_at ASC").
		Find(&receipts).Error
	if err != nil {
		return nil, err
	}
	return receipts, nil
}

func (r *repository) CreateClaimRecord(ctx context.Context, record *models.ClaimRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) CreateMarketEvent(ctx context.Context, event *models.MarketEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	type coder interface{ SQLState() string }
	var pgErr coder
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
