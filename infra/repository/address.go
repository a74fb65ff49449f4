package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/currency"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"gorm.io/gorm"
)

type addressRepository struct {
	db *gorm.DB
}

func (r *addressRepository) Get(ctx context.Context, id uuid.UUID) (*ledger.DepositAddress, error) {
	var m DepositAddress
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return addressToDomain(&m), nil
}

func (r *addressRepository) Create(ctx context.Context, a *ledger.DepositAddress) error {
	return translateError(r.db.WithContext(ctx).Create(addressToModel(a)).Error)
}

func (r *addressRepository) Update(ctx context.Context, a *ledger.DepositAddress) error {
	return translateError(r.db.WithContext(ctx).Save(addressToModel(a)).Error)
}

func (r *addressRepository) ListActive(ctx context.Context) ([]*ledger.DepositAddress, error) {
	var ms []DepositAddress
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("network asc").
		Find(&ms).Error
	if err != nil {
		return nil, translateError(err)
	}
	addrs := make([]*ledger.DepositAddress, 0, len(ms))
	for i := range ms {
		addrs = append(addrs, addressToDomain(&ms[i]))
	}
	return addrs, nil
}

func addressToDomain(m *DepositAddress) *ledger.DepositAddress {
	return &ledger.DepositAddress{
		ID:        m.ID,
		Network:   currency.Code(m.Network),
		Address:   m.Address,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func addressToModel(a *ledger.DepositAddress) *DepositAddress {
	return &DepositAddress{
		ID:        a.ID,
		Network:   a.Network.String(),
		Address:   a.Address,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
