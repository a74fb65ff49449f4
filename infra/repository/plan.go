package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/currency"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/domain/plan"
	"gorm.io/gorm"
)

type planRepository struct {
	db *gorm.DB
}

func (r *planRepository) Get(ctx context.Context, id uuid.UUID) (*plan.Plan, error) {
	var m Plan
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return planToDomain(&m), nil
}

func (r *planRepository) GetByName(ctx context.Context, name plan.Name) (*plan.Plan, error) {
	var m Plan
	if err := r.db.WithContext(ctx).First(&m, "name = ?", string(name)).Error; err != nil {
		return nil, translateError(err)
	}
	return planToDomain(&m), nil
}

func (r *planRepository) ListActive(ctx context.Context) ([]*plan.Plan, error) {
	var ms []Plan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("min_deposit asc").
		Find(&ms).Error
	if err != nil {
		return nil, translateError(err)
	}
	plans := make([]*plan.Plan, 0, len(ms))
	for i := range ms {
		plans = append(plans, planToDomain(&ms[i]))
	}
	return plans, nil
}

func (r *planRepository) Create(ctx context.Context, p *plan.Plan) error {
	return translateError(r.db.WithContext(ctx).Create(planToModel(p)).Error)
}

func (r *planRepository) Update(ctx context.Context, p *plan.Plan) error {
	return translateError(r.db.WithContext(ctx).Save(planToModel(p)).Error)
}

func (r *planRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Delete(&Plan{}, "id = ?", id).Error)
}

func planToDomain(m *Plan) *plan.Plan {
	return &plan.Plan{
		ID:           m.ID,
		Name:         plan.Name(m.Name),
		DailyReturn:  money.Percent(m.DailyReturn),
		MinDeposit:   money.NewFromMinor(m.MinDeposit, currency.Code(m.Currency)),
		DurationDays: m.DurationDays,
		IsActive:     m.IsActive,
		Description:  m.Description,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func planToModel(p *plan.Plan) *Plan {
	return &Plan{
		ID:           p.ID,
		Name:         string(p.Name),
		DailyReturn:  int64(p.DailyReturn),
		MinDeposit:   p.MinDeposit.Amount(),
		Currency:     p.MinDeposit.Currency().String(),
		DurationDays: p.DurationDays,
		IsActive:     p.IsActive,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
