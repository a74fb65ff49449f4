package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/domain/referral"
	"gorm.io/gorm"
)

type referralRepository struct {
	db *gorm.DB
}

func (r *referralRepository) Create(ctx context.Context, ref *referral.Referral) error {
	return translateError(r.db.WithContext(ctx).Create(referralToModel(ref)).Error)
}

func (r *referralRepository) Update(ctx context.Context, ref *referral.Referral) error {
	return translateError(r.db.WithContext(ctx).Save(referralToModel(ref)).Error)
}

func (r *referralRepository) GetByReferredUser(ctx context.Context, referredUserID uuid.UUID) (*referral.Referral, error) {
	var m Referral
	if err := r.db.WithContext(ctx).First(&m, "referred_user_id = ?", referredUserID).Error; err != nil {
		return nil, translateError(err)
	}
	return referralToDomain(&m), nil
}

func (r *referralRepository) ListUnpaidCreatedBefore(ctx context.Context, cutoff time.Time) ([]*referral.Referral, error) {
	var ms []Referral
	err := r.db.WithContext(ctx).
		Where("bonus_paid = ? AND created_at <= ?", false, cutoff).
		Find(&ms).Error
	if err != nil {
		return nil, translateError(err)
	}
	refs := make([]*referral.Referral, 0, len(ms))
	for i := range ms {
		refs = append(refs, referralToDomain(&ms[i]))
	}
	return refs, nil
}

func (r *referralRepository) CountByReferrer(ctx context.Context, referrerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Referral{}).
		Where("referrer_id = ?", referrerID).
		Count(&count).Error
	return count, translateError(err)
}

func referralToDomain(m *Referral) *referral.Referral {
	return &referral.Referral{
		ID:             m.ID,
		ReferrerID:     m.ReferrerID,
		ReferredUserID: m.ReferredUserID,
		BonusPaid:      m.BonusPaid,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func referralToModel(ref *referral.Referral) *Referral {
	return &Referral{
		ID:             ref.ID,
		ReferrerID:     ref.ReferrerID,
		ReferredUserID: ref.ReferredUserID,
		BonusPaid:      ref.BonusPaid,
		CreatedAt:      ref.CreatedAt,
		UpdatedAt:      ref.UpdatedAt,
	}
}
