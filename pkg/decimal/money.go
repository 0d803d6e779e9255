package decimal

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// CentPlaces is the number of decimal places kept for monetary output.
	CentPlaces = 2
	// RatioPlaces is the number of decimal places kept for ratio output.
	RatioPlaces = 4
	// InternalPrecision is the number of decimal places kept by intermediate divisions.
	InternalPrecision = 24
)

var (
	twelve = decimal.NewFromInt(12)

	// compoundCeiling bounds CompoundFactor. Past this point 1/(F-1) is far
	// below a cent for any representable loan.
	compoundCeiling = decimal.New(1, 40)
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the amount to cents, half away from zero (0.125 -> 0.13).
func (m Money) Round() Money {
	return Money{m.Decimal.Round(CentPlaces)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(twelve)}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.DivRound(twelve, InternalPrecision)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Mul multiplies by a decimal factor
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// Div divides by a decimal factor. The caller guarantees factor is non-zero.
func (m Money) Div(factor decimal.Decimal) Money {
	return Money{m.Decimal.DivRound(factor, InternalPrecision)}
}

// Float64 returns the nearest float64 for JSON output. Amounts beyond the
// float64 range come back as 0.
func (m Money) Float64() float64 {
	f, _ := m.Decimal.Float64()
	return finite(f)
}

// Sum adds up a list of amounts.
func Sum(amounts ...Money) Money {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the string representation with proper formatting
func (m Money) String() string {
	return m.Decimal.StringFixed(CentPlaces)
}

// Format formats the money amount with proper currency formatting
func (m Money) Format() string {
	return "$" + m.String()
}

// Ratio is the result of a division that may be undefined (zero denominator).
type Ratio struct {
	Value   decimal.Decimal
	Defined bool
}

// Quotient divides num by den. A zero den yields an undefined Ratio instead of panicking.
func Quotient(num, den Money) Ratio {
	if den.IsZero() {
		return Ratio{}
	}
	return Ratio{Value: num.Decimal.DivRound(den.Decimal, InternalPrecision), Defined: true}
}

// Round rounds a defined ratio to RatioPlaces; undefined ratios round to zero.
func (r Ratio) Round() decimal.Decimal {
	if !r.Defined {
		return decimal.Zero
	}
	return r.Value.Round(RatioPlaces)
}

// Float64 returns the rounded ratio as a float64, or 0 when it does not fit.
func (r Ratio) Float64() float64 {
	f, _ := r.Round().Float64()
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

// CompoundFactor returns (1+rate)^periods by exponentiation by squaring,
// rounding every product to InternalPrecision. rate must be >= 0. The
// result saturates at 1e40.
func CompoundFactor(rate decimal.Decimal, periods int64) decimal.Decimal {
	result := decimal.NewFromInt(1)
	base := result.Add(rate)
	for n := periods; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = result.Mul(base).Round(InternalPrecision)
			if result.GreaterThan(compoundCeiling) {
				return compoundCeiling
			}
		}
		if n > 1 {
			base = base.Mul(base).Round(InternalPrecision)
			if base.GreaterThan(compoundCeiling) {
				return compoundCeiling
			}
		}
	}
	return result
}
