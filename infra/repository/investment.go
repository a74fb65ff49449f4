package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/currency"
	"github.com/yieldvault/yieldvault/pkg/domain/investment"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type investmentRepository struct {
	db *gorm.DB
}

func (r *investmentRepository) Get(ctx context.Context, id uuid.UUID) (*investment.Investment, error) {
	var m Investment
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return investmentToDomain(&m), nil
}

func (r *investmentRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*investment.Investment, error) {
	var m Investment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return investmentToDomain(&m), nil
}

func (r *investmentRepository) Create(ctx context.Context, inv *investment.Investment) error {
	return translateError(r.db.WithContext(ctx).Create(investmentToModel(inv)).Error)
}

func (r *investmentRepository) Update(ctx context.Context, inv *investment.Investment) error {
	return translateError(r.db.WithContext(ctx).Save(investmentToModel(inv)).Error)
}

func (r *investmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*investment.Investment, error) {
	var ms []Investment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&ms).Error
	return investmentsToDomain(ms, translateError(err))
}

func (r *investmentRepository) ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status investment.Status) ([]*investment.Investment, error) {
	var ms []Investment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(status)).
		Order("created_at desc").
		Find(&ms).Error
	return investmentsToDomain(ms, translateError(err))
}

func (r *investmentRepository) ListActiveEndingAfter(ctx context.Context, t time.Time) ([]*investment.Investment, error) {
	var ms []Investment
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date >= ?", string(investment.StatusActive), t).
		Find(&ms).Error
	return investmentsToDomain(ms, translateError(err))
}

func (r *investmentRepository) ListActiveMatured(ctx context.Context, t time.Time) ([]*investment.Investment, error) {
	var ms []Investment
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date < ?", string(investment.StatusActive), t).
		Find(&ms).Error
	return investmentsToDomain(ms, translateError(err))
}

func (r *investmentRepository) ListMaturingBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*investment.Investment, error) {
	var ms []Investment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND end_date BETWEEN ? AND ?",
			userID, string(investment.StatusActive), from, to).
		Order("end_date asc").
		Find(&ms).Error
	return investmentsToDomain(ms, translateError(err))
}

func (r *investmentRepository) SumPrincipalByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&Investment{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(principal), 0)").
		Scan(&sum).Error
	return sum, translateError(err)
}

func (r *investmentRepository) CountByPlan(ctx context.Context, planID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Investment{}).
		Where("plan_id = ?", planID).
		Count(&count).Error
	return count, translateError(err)
}

func investmentsToDomain(ms []Investment, err error) ([]*investment.Investment, error) {
	if err != nil {
		return nil, err
	}
	invs := make([]*investment.Investment, 0, len(ms))
	for i := range ms {
		invs = append(invs, investmentToDomain(&ms[i]))
	}
	return invs, nil
}

func investmentToDomain(m *Investment) *investment.Investment {
	code := currency.Code(m.Currency)
	return &investment.Investment{
		ID:                  m.ID,
		UserID:              m.UserID,
		PlanID:              m.PlanID,
		Principal:           money.NewFromMinor(m.Principal, code),
		StartDate:           m.StartDate,
		EndDate:             m.EndDate,
		Status:              investment.Status(m.Status),
		TotalReturn:         money.NewFromMinor(m.TotalReturn, code),
		ReferralBonusEarned: money.NewFromMinor(m.ReferralBonusEarned, code),
		IsConfirmed:         m.IsConfirmed,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func investmentToModel(inv *investment.Investment) *Investment {
	return &Investment{
		ID:                  inv.ID,
		UserID:              inv.UserID,
		PlanID:              inv.PlanID,
		Principal:           inv.Principal.Amount(),
		Currency:            inv.Principal.Currency().String(),
		StartDate:           inv.StartDate,
		EndDate:             inv.EndDate,
		Status:              string(inv.Status),
		TotalReturn:         inv.TotalReturn.Amount(),
		ReferralBonusEarned: inv.ReferralBonusEarned.Amount(),
		IsConfirmed:         inv.IsConfirmed,
		CreatedAt:           inv.CreatedAt,
		UpdatedAt:           inv.UpdatedAt,
	}
}
