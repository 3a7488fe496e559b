package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Amounts are bounded so a short input such as "1e3000000" cannot expand into millions of digits
const (
	maxAmountLength   = 64
	minAmountExponent = -18
	maxAmountExponent = 18
)

// maxAmountMagnitude is exclusive; it is far above any TVL or supply in base units
var maxAmountMagnitude = decimal.New(1, 30)

// DecimalFromFloat converts a wire number into a decimal, rejecting NaN, ±Inf and out-of-range values
func DecimalFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: non-finite number %v", ErrInvalidInput, f)
	}
	d := decimal.NewFromFloat(f)
	if d.Abs().GreaterThanOrEqual(maxAmountMagnitude) {
		return decimal.Zero, fmt.Errorf("%w: number %v is out of range", ErrInvalidInput, f)
	}
	return d, nil
}

// ParseAmount parses a decimal string amount coming from a client.
// At most 18 fractional digits and a magnitude below 10^30 are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	if len(s) > maxAmountLength {
		return decimal.Zero, fmt.Errorf("%w: amount is longer than %d characters", ErrInvalidInput, maxAmountLength)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", ErrInvalidInput, s)
	}
	if exp := d.Exponent(); exp < minAmountExponent || exp > maxAmountExponent {
		return decimal.Zero, fmt.Errorf("%w: amount %q is out of range", ErrInvalidInput, s)
	}
	if d.Abs().GreaterThanOrEqual(maxAmountMagnitude) {
		return decimal.Zero, fmt.Errorf("%w: amount %q is out of range", ErrInvalidInput, s)
	}
	return d, nil
}

// ScalingFactor returns 10^decimals, the number of base units per deposit unit
func ScalingFactor(decimals int32) decimal.Decimal {
	return decimal.New(1, decimals)
}
