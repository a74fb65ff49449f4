// Package money implements the fixed-point monetary value object the ledger
// is built on. Amounts are stored as integers in the smallest unit of their
// currency (cents for USD, satoshi-scale units for crypto denominations), so
// addition and subtraction are exact and balances never drift.
package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/yieldvault/yieldvault/pkg/currency"
)

var (
	// ErrCurrencyMismatch is returned when two Money values of different
	// denominations are combined.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrOverflow is returned when an operation would exceed the int64 range.
	ErrOverflow = errors.New("amount overflows")
	// ErrPrecision is returned when a decimal amount carries more places
	// than its currency allows.
	ErrPrecision = errors.New("amount exceeds currency precision")
)

// Rounding selects how a percentage computation resolves sub-unit remainders.
//
// Daily returns use RoundHalfUp; completion totals and referral bonuses use
// RoundDown (truncation toward zero). The asymmetry is deliberate and must
// match across the accrual and completion paths.
type Rounding int

const (
	// RoundHalfUp rounds half a minor unit away from zero.
	RoundHalfUp Rounding = iota
	// RoundDown truncates toward zero.
	RoundDown
)

// Money is an immutable amount in a specific denomination.
type Money struct {
	amount   int64
	currency currency.Code
}

// New creates Money from a decimal amount in major units. The amount must
// not carry more decimal places than the currency supports.
func New(amount float64, code currency.Code) (Money, error) {
	if code == "" {
		code = currency.DefaultCurrency
	}
	if !currency.IsValidFormat(string(code)) {
		return Money{}, currency.ErrUnsupported
	}
	minor, err := toMinorUnits(amount, code)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: minor, currency: code}, nil
}

// NewFromMinor creates Money directly from an amount in minor units. It is
// intended for hydrating persisted values and for test setup.
func NewFromMinor(amount int64, code currency.Code) Money {
	if code == "" {
		code = currency.DefaultCurrency
	}
	return Money{amount: amount, currency: code}
}

// Zero returns the zero amount in the given denomination.
func Zero(code currency.Code) Money {
	return NewFromMinor(0, code)
}

func toMinorUnits(amount float64, code currency.Code) (int64, error) {
	factor := math.Pow10(currency.Decimals(code))
	scaled := amount * factor
	if scaled > float64(math.MaxInt64) || scaled < float64(math.MinInt64) {
		return 0, ErrOverflow
	}
	rounded := math.Round(scaled)
	if math.Abs(scaled-rounded) > 1e-6 {
		return 0, ErrPrecision
	}
	return int64(rounded), nil
}

// Amount returns the value in minor units.
func (m Money) Amount() int64 { return m.amount }

// Float returns the value in major units. For display only; arithmetic
// stays on the minor-unit representation.
func (m Money) Float() float64 {
	return float64(m.amount) / math.Pow10(currency.Decimals(m.currency))
}

// Currency returns the denomination.
func (m Money) Currency() currency.Code { return m.currency }

// Add returns m + other. The denominations must match.
func (m Money) Add(other Money) (Money, error) {
	if !m.SameCurrency(other) {
		return Money{}, ErrCurrencyMismatch
	}
	sum := m.amount + other.amount
	if (other.amount > 0 && sum < m.amount) || (other.amount < 0 && sum > m.amount) {
		return Money{}, ErrOverflow
	}
	return Money{amount: sum, currency: m.currency}, nil
}

// Subtract returns m - other. The denominations must match.
func (m Money) Subtract(other Money) (Money, error) {
	return m.Add(other.Negate())
}

// Negate returns -m.
func (m Money) Negate() Money {
	return Money{amount: -m.amount, currency: m.currency}
}

// Percent applies a percentage rate to the amount, resolving the sub-unit
// remainder with the given rounding policy.
func (m Money) Percent(rate Percent, rounding Rounding) (Money, error) {
	num, ok := mulInt64(m.amount, int64(rate))
	if !ok {
		return Money{}, ErrOverflow
	}
	const denom = int64(100 * percentScale)
	q, r := num/denom, num%denom
	if rounding == RoundHalfUp {
		if r*2 >= denom {
			q++
		} else if r*2 <= -denom {
			q--
		}
	}
	return Money{amount: q, currency: m.currency}, nil
}

// MulInt returns m multiplied by an integer factor, exactly.
func (m Money) MulInt(factor int64) (Money, error) {
	product, ok := mulInt64(m.amount, factor)
	if !ok {
		return Money{}, ErrOverflow
	}
	return Money{amount: product, currency: m.currency}, nil
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product := a * b
	if product/b != a {
		return 0, false
	}
	return product, true
}

// Equals reports whether two values have the same denomination and amount.
func (m Money) Equals(other Money) bool {
	return m.SameCurrency(other) && m.amount == other.amount
}

// GreaterThan reports m > other. The denominations must match.
func (m Money) GreaterThan(other Money) (bool, error) {
	if !m.SameCurrency(other) {
		return false, ErrCurrencyMismatch
	}
	return m.amount > other.amount, nil
}

// LessThan reports m < other. The denominations must match.
func (m Money) LessThan(other Money) (bool, error) {
	if !m.SameCurrency(other) {
		return false, ErrCurrencyMismatch
	}
	return m.amount < other.amount, nil
}

// SameCurrency reports whether other shares m's denomination.
func (m Money) SameCurrency(other Money) bool {
	return m.currency == other.currency
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool { return m.amount > 0 }

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool { return m.amount < 0 }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.amount == 0 }

// String formats the amount with its currency symbol at full scale.
func (m Money) String() string {
	meta, err := currency.Get(m.currency)
	if err != nil {
		return fmt.Sprintf("%d %s", m.amount, m.currency)
	}
	return fmt.Sprintf("%s%.*f", meta.Symbol, meta.Decimals, m.Float())
}
