package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
)

// DailyEarning is the accrual engine's idempotency record: at most one row
// exists per (investment, date), enforced by a unique constraint. Its
// presence means that investment's return for that day has been credited.
type DailyEarning struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	InvestmentID uuid.UUID
	Amount       money.Money
	Date         time.Time // date only, UTC midnight
	CreatedAt    time.Time
}

// NewDailyEarning records one day's credited return.
func NewDailyEarning(userID, investmentID uuid.UUID, amount money.Money, date time.Time) *DailyEarning {
	return &DailyEarning{
		ID:           uuid.New(),
		UserID:       userID,
		InvestmentID: investmentID,
		Amount:       amount,
		Date:         Midnight(date),
		CreatedAt:    time.Now().UTC(),
	}
}

// Midnight truncates t to its UTC date.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
