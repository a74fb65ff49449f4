// Package referral defines the referrer/referred relationship and its
// bonus payout rules.
package referral

import (
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
)

// MaturityDays is how long a referral must exist before its bonus is due.
const MaturityDays = 90

// DefaultBonusPercent is the referral bonus rate: 2% of the referred
// user's total invested principal.
var DefaultBonusPercent = money.NewPercent(2, 0)

// Referral links a referrer to a user who signed up with their code.
// A user is referred by at most one other user. BonusPaid moves false→true
// exactly once; re-processing a paid referral never pays again.
type Referral struct {
	ID             uuid.UUID
	ReferrerID     uuid.UUID
	ReferredUserID uuid.UUID
	BonusPaid      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// New records that referrer brought in referred. Self-referral is rejected.
func New(referrerID, referredUserID uuid.UUID) (*Referral, error) {
	if referrerID == referredUserID {
		return nil, domain.ErrValidation
	}
	return &Referral{
		ID:             uuid.New(),
		ReferrerID:     referrerID,
		ReferredUserID: referredUserID,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// Matured reports whether the relationship is at least MaturityDays old
// as of now.
func (r *Referral) Matured(now time.Time) bool {
	return !r.CreatedAt.After(now.AddDate(0, 0, -MaturityDays))
}

// Bonus computes the payout from the referred user's total invested
// principal: rate percent, truncated toward zero.
func Bonus(totalPrincipal money.Money, rate money.Percent) (money.Money, error) {
	return totalPrincipal.Percent(rate, money.RoundDown)
}

// MarkPaid fixes the bonus as paid. Paying twice reports ErrAlreadyProcessed.
func (r *Referral) MarkPaid() error {
	if r.BonusPaid {
		return domain.ErrAlreadyProcessed
	}
	r.BonusPaid = true
	r.UpdatedAt = time.Now().UTC()
	return nil
}
