// Package plan defines the investment plan catalog entity.
package plan

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/currency"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
)

var (
	// ErrInvalidName is returned for a name outside the catalog tiers.
	ErrInvalidName = errors.New("invalid plan name")
	// ErrInvalidMinDeposit is returned when the minimum deposit is not positive.
	ErrInvalidMinDeposit = errors.New("plan minimum deposit must be positive")
	// ErrInvalidRate is returned for a negative daily return rate.
	ErrInvalidRate = errors.New("plan daily return must not be negative")
	// ErrInvalidDuration is returned for a duration below one day.
	ErrInvalidDuration = errors.New("plan duration must be at least one day")
)

// Name is the catalog tier of a plan.
type Name string

// Catalog tiers.
const (
	Basic    Name = "basic"
	Standard Name = "standard"
	Premium  Name = "premium"
)

// Valid reports whether n is a known tier.
func (n Name) Valid() bool {
	switch n {
	case Basic, Standard, Premium:
		return true
	}
	return false
}

// Display returns the human-readable tier name.
func (n Name) Display() string {
	switch n {
	case Basic:
		return "Basic Plan"
	case Standard:
		return "Standard Plan"
	case Premium:
		return "Premium Plan"
	}
	return string(n)
}

// Plan is an investment product: invest at least MinDeposit and earn
// DailyReturn percent of the principal each day for DurationDays.
//
// A plan becomes immutable in effect once investments reference it:
// deletion is forbidden while references exist, enforced at the service
// layer.
type Plan struct {
	ID           uuid.UUID
	Name         Name
	DailyReturn  money.Percent
	MinDeposit   money.Money
	DurationDays int
	IsActive     bool
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New validates and builds a Plan.
func New(name Name, dailyReturn money.Percent, minDeposit money.Money, durationDays int, description string) (*Plan, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if !minDeposit.IsPositive() {
		return nil, ErrInvalidMinDeposit
	}
	if dailyReturn.IsNegative() {
		return nil, ErrInvalidRate
	}
	if durationDays < 1 {
		return nil, ErrInvalidDuration
	}
	return &Plan{
		ID:           uuid.New(),
		Name:         name,
		DailyReturn:  dailyReturn,
		MinDeposit:   minDeposit,
		DurationDays: durationDays,
		IsActive:     true,
		Description:  description,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Accepts reports whether amount qualifies for this plan.
func (p *Plan) Accepts(amount money.Money) bool {
	below, err := amount.LessThan(p.MinDeposit)
	if err != nil {
		return false
	}
	return !below
}

// Defaults returns the seed catalog: the three tiers the platform launches
// with. Safe to apply repeatedly; seeding skips names that already exist.
func Defaults() []*Plan {
	usd := func(minor int64) money.Money {
		return money.NewFromMinor(minor, currency.DefaultCurrency)
	}
	return []*Plan{
		{
			ID:           uuid.New(),
			Name:         Basic,
			DailyReturn:  money.NewPercent(3, 0),
			MinDeposit:   usd(50_00),
			DurationDays: 30,
			IsActive:     true,
			Description:  "Basic investment plan with 3% daily returns",
		},
		{
			ID:           uuid.New(),
			Name:         Standard,
			DailyReturn:  money.NewPercent(5, 0),
			MinDeposit:   usd(100_00),
			DurationDays: 30,
			IsActive:     true,
			Description:  "Standard investment plan with 5% daily returns",
		},
		{
			ID:           uuid.New(),
			Name:         Premium,
			DailyReturn:  money.NewPercent(8, 0),
			MinDeposit:   usd(250_00),
			DurationDays: 30,
			IsActive:     true,
			Description:  "Premium investment plan with 8% daily returns",
		},
	}
}
