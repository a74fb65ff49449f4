// Package ledger defines the append-only records money movements leave
// behind: transactions, deposits, daily earnings and the platform's crypto
// receiving addresses.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
)

// TxType classifies a transaction. The amount is always positive; its
// direction is implied by the type, not the sign.
type TxType string

// Transaction types.
const (
	TxDeposit    TxType = "deposit"
	TxWithdrawal TxType = "withdrawal"
	TxReturn     TxType = "return"
	TxReferral   TxType = "referral"
)

// Valid reports whether t is a known transaction type.
func (t TxType) Valid() bool {
	switch t {
	case TxDeposit, TxWithdrawal, TxReturn, TxReferral:
		return true
	}
	return false
}

// TxStatus is the settlement state of a transaction.
type TxStatus string

// Transaction statuses. A pending transaction settles to completed or
// rejected exactly once; completed and rejected never change again.
const (
	TxPending   TxStatus = "pending"
	TxCompleted TxStatus = "completed"
	TxRejected  TxStatus = "rejected"
)

// Transaction is one entry in the audit log. Rows are never mutated apart
// from the single pending → completed/rejected settlement.
type Transaction struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Type         TxType
	Amount       money.Money
	Status       TxStatus
	InvestmentID *uuid.UUID
	ReferenceID  uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewTransaction records a movement of amount for userID. investmentID may
// be nil for movements not tied to an investment.
func NewTransaction(userID uuid.UUID, txType TxType, amount money.Money, status TxStatus, investmentID *uuid.UUID) (*Transaction, error) {
	if !txType.Valid() {
		return nil, domain.ErrValidation
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	return &Transaction{
		ID:           uuid.New(),
		UserID:       userID,
		Type:         txType,
		Amount:       amount,
		Status:       status,
		InvestmentID: investmentID,
		ReferenceID:  uuid.New(),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Complete settles a pending transaction.
func (t *Transaction) Complete() error {
	if t.Status != TxPending {
		return domain.ErrInvalidTransition
	}
	t.Status = TxCompleted
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Reject settles a pending transaction as rejected.
func (t *Transaction) Reject() error {
	if t.Status != TxPending {
		return domain.ErrInvalidTransition
	}
	t.Status = TxRejected
	t.UpdatedAt = time.Now().UTC()
	return nil
}
