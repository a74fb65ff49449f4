package money

import "fmt"

// percentScale is the number of minor divisions per percentage point.
// Rates are stored in hundredths of a percent so 5.25% is representable
// exactly as 525.
const percentScale = 100

// Percent is a percentage rate in hundredths of a percent.
type Percent int64

// NewPercent builds a rate from whole and fractional percentage parts,
// e.g. NewPercent(5, 25) is 5.25%.
func NewPercent(whole, hundredths int64) Percent {
	return Percent(whole*percentScale + hundredths)
}

// PercentFromFloat converts a float percentage (e.g. 5.25) to a Percent,
// rounding to the nearest hundredth of a percent.
func PercentFromFloat(v float64) Percent {
	if v < 0 {
		return Percent(int64(v*percentScale - 0.5))
	}
	return Percent(int64(v*percentScale + 0.5))
}

// Float returns the rate as a float percentage.
func (p Percent) Float() float64 { return float64(p) / percentScale }

// IsNegative reports whether the rate is below zero.
func (p Percent) IsNegative() bool { return p < 0 }

// IsZero reports whether the rate is zero.
func (p Percent) IsZero() bool { return p == 0 }

// String formats the rate with a trailing percent sign.
func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p.Float())
}
