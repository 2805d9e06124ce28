// Package money keeps every price in the application on decimal arithmetic.
package money

import (
	"bistro/shared/constant"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Round rounds half away from zero to the stored precision.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(constant.DecimalPlaces)
}

func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return Round(price.Mul(decimal.NewFromInt(int64(quantity))))
}

func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	if len(amounts) == 0 {
		return decimal.Zero
	}

	return Round(decimal.Sum(decimal.Zero, amounts...))
}

func IsNegative(amount *decimal.Decimal) bool {
	return amount != nil && amount.IsNegative()
}

// MinorUnits converts an amount to the smallest currency unit (paise, cents).
func MinorUnits(amount decimal.Decimal) int64 {
	return Round(amount).Shift(constant.DecimalPlaces).IntPart()
}
