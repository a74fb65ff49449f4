package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"gorm.io/gorm"
)

type earningRepository struct {
	db *gorm.DB
}

func (r *earningRepository) Create(ctx context.Context, e *ledger.DailyEarning) error {
	m := &DailyEarning{
		ID:           e.ID,
		UserID:       e.UserID,
		InvestmentID: e.InvestmentID,
		Amount:       e.Amount.Amount(),
		Currency:     e.Amount.Currency().String(),
		Date:         ledger.Midnight(e.Date),
		CreatedAt:    e.CreatedAt,
	}
	return translateError(r.db.WithContext(ctx).Create(m).Error)
}

func (r *earningRepository) ExistsForInvestment(ctx context.Context, investmentID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&DailyEarning{}).
		Where("investment_id = ? AND date = ?", investmentID, ledger.Midnight(date)).
		Count(&count).Error
	return count > 0, translateError(err)
}

func (r *earningRepository) SumByUserOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&DailyEarning{}).
		Where("user_id = ? AND date = ?", userID, ledger.Midnight(date)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, translateError(err)
}

func (r *earningRepository) SumByUserSince(ctx context.Context, userID uuid.UUID, from time.Time) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&DailyEarning{}).
		Where("user_id = ? AND date >= ?", userID, ledger.Midnight(from)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, translateError(err)
}
