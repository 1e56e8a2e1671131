// Package money provides cent-precision dollar amounts for bookkeeping.
// All arithmetic is done on int64 cents to avoid floating point drift.
package money

import "fmt"

// Cents is a signed dollar amount in cents.
// Positive values are inflows, negative values are outflows.
type Cents int64

// FromDollars builds Cents from whole dollars and a cent remainder.
func FromDollars(dollars int64, cents int64) Cents {
	if dollars < 0 {
		return Cents(dollars*100 - cents)
	}
	return Cents(dollars*100 + cents)
}

// String renders the amount as a decimal dollar string, e.g. "-12.34".
func (c Cents) String() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Abs returns the absolute value.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// IsPositive reports whether the amount is an inflow.
func (c Cents) IsPositive() bool { return c > 0 }

// IsNegative reports whether the amount is an outflow.
func (c Cents) IsNegative() bool { return c < 0 }

// IsZero reports whether the amount is zero.
func (c Cents) IsZero() bool { return c == 0 }
