package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/currency"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type depositRepository struct {
	db *gorm.DB
}

func (r *depositRepository) Get(ctx context.Context, id uuid.UUID) (*ledger.Deposit, error) {
	var m Deposit
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return depositToDomain(&m), nil
}

// GetForUpdate locks the deposit row so a concurrent re-confirmation sees
// the already-confirmed status instead of double-crediting.
func (r *depositRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Deposit, error) {
	var m Deposit
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return depositToDomain(&m), nil
}

func (r *depositRepository) Create(ctx context.Context, d *ledger.Deposit) error {
	return translateError(r.db.WithContext(ctx).Create(depositToModel(d)).Error)
}

func (r *depositRepository) Update(ctx context.Context, d *ledger.Deposit) error {
	return translateError(r.db.WithContext(ctx).Save(depositToModel(d)).Error)
}

func (r *depositRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*ledger.Deposit, error) {
	var ms []Deposit
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}
	return depositsToDomain(ms), nil
}

func (r *depositRepository) ListByStatus(ctx context.Context, status ledger.DepositStatus, limit, offset int) ([]*ledger.Deposit, error) {
	var ms []Deposit
	q := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at desc").
		Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}
	return depositsToDomain(ms), nil
}

func depositsToDomain(ms []Deposit) []*ledger.Deposit {
	ds := make([]*ledger.Deposit, 0, len(ms))
	for i := range ms {
		ds = append(ds, depositToDomain(&ms[i]))
	}
	return ds
}

func depositToDomain(m *Deposit) *ledger.Deposit {
	return &ledger.Deposit{
		ID:           m.ID,
		UserID:       m.UserID,
		AddressID:    m.AddressID,
		Amount:       money.NewFromMinor(m.Amount, currency.Code(m.Currency)),
		AmountCrypto: money.NewFromMinor(m.AmountCrypto, currency.Code(m.CryptoCurrency)),
		TxHash:       m.TxHash,
		Status:       ledger.DepositStatus(m.Status),
		ConfirmedBy:  m.ConfirmedBy,
		ConfirmedAt:  m.ConfirmedAt,
		ReferenceID:  m.ReferenceID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func depositToModel(d *ledger.Deposit) *Deposit {
	return &Deposit{
		ID:             d.ID,
		UserID:         d.UserID,
		AddressID:      d.AddressID,
		Amount:         d.Amount.Amount(),
		Currency:       d.Amount.Currency().String(),
		AmountCrypto:   d.AmountCrypto.Amount(),
		CryptoCurrency: d.AmountCrypto.Currency().String(),
		TxHash:         d.TxHash,
		Status:         string(d.Status),
		ConfirmedBy:    d.ConfirmedBy,
		ConfirmedAt:    d.ConfirmedAt,
		ReferenceID:    d.ReferenceID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
