package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/currency"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/domain/wallet"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type walletRepository struct {
	db *gorm.DB
}

func (r *walletRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error) {
	var m Wallet
	if err := r.db.WithContext(ctx).First(&m, "user_id = ?", userID).Error; err != nil {
		return nil, translateError(err)
	}
	return walletToDomain(&m), nil
}

// GetByUserForUpdate takes a FOR UPDATE row lock so concurrent ledger
// operations on the same wallet serialize instead of losing updates.
func (r *walletRepository) GetByUserForUpdate(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error) {
	var m Wallet
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "user_id = ?", userID).Error
	if err != nil {
		return nil, translateError(err)
	}
	return walletToDomain(&m), nil
}

func (r *walletRepository) GetByReferralCode(ctx context.Context, code string) (*wallet.Wallet, error) {
	var m Wallet
	if err := r.db.WithContext(ctx).First(&m, "referral_code = ?", code).Error; err != nil {
		return nil, translateError(err)
	}
	return walletToDomain(&m), nil
}

func (r *walletRepository) Create(ctx context.Context, w *wallet.Wallet) error {
	return translateError(r.db.WithContext(ctx).Create(walletToModel(w)).Error)
}

func (r *walletRepository) Update(ctx context.Context, w *wallet.Wallet) error {
	return translateError(r.db.WithContext(ctx).Save(walletToModel(w)).Error)
}

func walletToDomain(m *Wallet) *wallet.Wallet {
	code := currency.Code(m.Currency)
	return &wallet.Wallet{
		ID:                 m.ID,
		UserID:             m.UserID,
		Balance:            money.NewFromMinor(m.Balance, code),
		TotalEarnings:      money.NewFromMinor(m.TotalEarnings, code),
		TotalReferralBonus: money.NewFromMinor(m.TotalReferralBonus, code),
		ReferralCode:       m.ReferralCode,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func walletToModel(w *wallet.Wallet) *Wallet {
	return &Wallet{
		ID:                 w.ID,
		UserID:             w.UserID,
		Balance:            w.Balance.Amount(),
		TotalEarnings:      w.TotalEarnings.Amount(),
		TotalReferralBonus: w.TotalReferralBonus.Amount(),
		Currency:           w.Balance.Currency().String(),
		ReferralCode:       w.ReferralCode,
		CreatedAt:          w.CreatedAt,
		UpdatedAt:          w.UpdatedAt,
	}
}
