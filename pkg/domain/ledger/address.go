package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/currency"
	"github.com/yieldvault/yieldvault/pkg/domain"
)

// DepositAddress is one of the platform's crypto receiving addresses.
// Users pick an active address for their network when filing a deposit.
type DepositAddress struct {
	ID        uuid.UUID
	Network   currency.Code
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDepositAddress registers a receiving address on a supported network.
func NewDepositAddress(network currency.Code, address string) (*DepositAddress, error) {
	if !currency.IsSupported(network) || address == "" {
		return nil, domain.ErrValidation
	}
	return &DepositAddress{
		ID:        uuid.New(),
		Network:   network,
		Address:   address,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}, nil
}
