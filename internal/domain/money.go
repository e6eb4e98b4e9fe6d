package domain

import (
	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the number of decimal places of the minor currency unit.
// All monetary amounts are pinned to this granularity.
const MinorUnitPlaces int32 = 2

// SplitEven divides total into n parts at minor-unit granularity. The first
// n-1 parts are floor(total/n) at MinorUnitPlaces; the last part absorbs the
// remainder so the parts reconstruct the total exactly.
func SplitEven(total decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n <= 0 || total.IsNegative() {
		return nil, ErrInvalidAmount
	}

	part := total.Div(decimal.NewFromInt(int64(n))).RoundFloor(MinorUnitPlaces)

	parts := make([]decimal.Decimal, n)
	sum := decimal.Zero
	for i := 0; i < n-1; i++ {
		parts[i] = part
		sum = sum.Add(part)
	}
	parts[n-1] = total.Sub(sum)

	return parts, nil
}

// Percent returns percentage percent of amount, rounded to the minor unit.
// Percentage is on the 0-100 scale.
func Percent(amount, percentage decimal.Decimal) decimal.Decimal {
	return amount.Mul(percentage).Div(decimal.NewFromInt(100)).Round(MinorUnitPlaces)
}
