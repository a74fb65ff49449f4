package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
)

// DepositStatus is the review state of a crypto deposit claim.
type DepositStatus string

// Deposit statuses.
const (
	DepositPending    DepositStatus = "pending"
	DepositProcessing DepositStatus = "processing"
	DepositConfirmed  DepositStatus = "confirmed"
	DepositRejected   DepositStatus = "rejected"
	DepositCompleted  DepositStatus = "completed"
)

// Deposit is a user's claim that funds were sent to one of the platform's
// receiving addresses. The transaction hash is an opaque user-supplied
// string and is never verified on-chain. Confirmation by an admin credits
// the wallet exactly once.
type Deposit struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	AddressID    uuid.UUID
	Amount       money.Money // fiat value credited on confirmation
	AmountCrypto money.Money // amount sent on the network
	TxHash       string
	Status       DepositStatus
	ConfirmedBy  *uuid.UUID
	ConfirmedAt  *time.Time
	ReferenceID  uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewDeposit files a pending deposit claim.
func NewDeposit(userID, addressID uuid.UUID, amount, amountCrypto money.Money, txHash string) (*Deposit, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	return &Deposit{
		ID:           uuid.New(),
		UserID:       userID,
		AddressID:    addressID,
		Amount:       amount,
		AmountCrypto: amountCrypto,
		TxHash:       txHash,
		Status:       DepositPending,
		ReferenceID:  uuid.New(),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Confirm marks the deposit confirmed by an admin. The caller must check
// the previously persisted status first; re-confirming reports
// ErrAlreadyConfirmed so the wallet is never credited twice.
func (d *Deposit) Confirm(adminID uuid.UUID, now time.Time) error {
	if d.Status == DepositConfirmed || d.Status == DepositCompleted {
		return domain.ErrAlreadyConfirmed
	}
	if d.Status == DepositRejected {
		return domain.ErrInvalidTransition
	}
	now = now.UTC()
	d.Status = DepositConfirmed
	d.ConfirmedBy = &adminID
	d.ConfirmedAt = &now
	d.UpdatedAt = now
	return nil
}

// Reject marks the deposit rejected. No balance changes; recovery is a
// manual re-confirmation, which is not modeled.
func (d *Deposit) Reject() error {
	if d.Status == DepositConfirmed || d.Status == DepositCompleted {
		return domain.ErrInvalidTransition
	}
	d.Status = DepositRejected
	d.UpdatedAt = time.Now().UTC()
	return nil
}
