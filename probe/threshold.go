package probe

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// ComputeThreshold scales capacity by coefficient into a warning boundary:
//
//	capacity                       if coefficient >= 1
//	ceil(capacity * coefficient)   otherwise
//
// The product is computed in decimal so that coefficients such as 0.07 are
// not skewed upward by binary rounding before the ceiling is taken. Negative
// and NaN coefficients yield 0.
func ComputeThreshold(capacity uint64, coefficient float64) uint64 {
	if coefficient >= 1 {
		return capacity
	}
	if coefficient <= 0 || math.IsNaN(coefficient) || capacity == 0 {
		return 0
	}

	c := decimal.NewFromBigInt(new(big.Int).SetUint64(capacity), 0)
	return c.Mul(decimal.NewFromFloat(coefficient)).Ceil().BigInt().Uint64()
}

var hundred = decimal.NewFromInt(100)

// percent converts a [0, 1] fraction into exact percentage points.
func percent(fraction float64) decimal.Decimal {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(fraction).Mul(hundred)
}
