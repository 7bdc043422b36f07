package model

import "github.com/shopspring/decimal"

// ToPaise converts a rupee amount into integer minor units for storage.
func ToPaise(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// FromPaise converts stored minor units back into a rupee amount.
func FromPaise(paise int64) decimal.Decimal {
	return decimal.New(paise, -2)
}

// NetPrice applies the discount and clamps the result at zero.
func NetPrice(price, discount decimal.Decimal) decimal.Decimal {
	net := price.Sub(discount)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// FormatAmount renders money with exactly two decimals.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
