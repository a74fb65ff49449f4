// Package wallet defines the per-user cash balance aggregate. A wallet is
// created lazily on first access, funds investments, and receives accrual
// credits and referral bonuses. Every balance change goes through Credit or
// Debit so the non-negative invariant holds after every mutation.
package wallet

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/currency"
	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
)

// Wallet is a user's cash balance plus its informational accumulators.
//
// Invariants:
//   - Balance never goes negative; an overdraft attempt is an error, not a
//     silent negative.
//   - TotalEarnings and TotalReferralBonus only grow.
//   - ReferralCode is unique and assigned at creation.
type Wallet struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Balance            money.Money
	TotalEarnings      money.Money
	TotalReferralBonus money.Money
	ReferralCode       string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// New creates a wallet for userID with a zero balance and a fresh
// referral code.
func New(userID uuid.UUID) (*Wallet, error) {
	code, err := GenerateReferralCode()
	if err != nil {
		return nil, err
	}
	zero := money.Zero(currency.DefaultCurrency)
	return &Wallet{
		ID:                 uuid.New(),
		UserID:             userID,
		Balance:            zero,
		TotalEarnings:      zero,
		TotalReferralBonus: zero,
		ReferralCode:       code,
		CreatedAt:          time.Now().UTC(),
	}, nil
}

// GenerateReferralCode returns a short shareable invite code,
// e.g. "REF4A3F2C1B0D".
func GenerateReferralCode() (string, error) {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "REF" + strings.ToUpper(hex.EncodeToString(b)), nil
}

// Credit increases the balance by amount. The amount must be strictly
// positive and share the wallet's denomination.
func (w *Wallet) Credit(amount money.Money) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	balance, err := w.Balance.Add(amount)
	if err != nil {
		return err
	}
	w.Balance = balance
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// Debit decreases the balance by amount. Fails with ErrInsufficientFunds
// when the balance is smaller than amount, leaving the balance unchanged.
func (w *Wallet) Debit(amount money.Money) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	short, err := w.Balance.LessThan(amount)
	if err != nil {
		return err
	}
	if short {
		return domain.ErrInsufficientFunds
	}
	balance, err := w.Balance.Subtract(amount)
	if err != nil {
		return err
	}
	w.Balance = balance
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// CreditEarnings credits the balance and grows the earnings accumulator in
// the same step. Used by the accrual engine and investment completion.
func (w *Wallet) CreditEarnings(amount money.Money) error {
	if err := w.Credit(amount); err != nil {
		return err
	}
	total, err := w.TotalEarnings.Add(amount)
	if err != nil {
		return err
	}
	w.TotalEarnings = total
	return nil
}

// CreditReferralBonus credits the balance and grows the referral bonus
// accumulator in the same step.
func (w *Wallet) CreditReferralBonus(amount money.Money) error {
	if err := w.Credit(amount); err != nil {
		return err
	}
	total, err := w.TotalReferralBonus.Add(amount)
	if err != nil {
		return err
	}
	w.TotalReferralBonus = total
	return nil
}
