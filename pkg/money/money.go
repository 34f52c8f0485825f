// Package money centralizes currency rounding so every engine output
// agrees on cent precision regardless of the float math that produced it.
package money

import "github.com/shopspring/decimal"

// Round rounds a currency amount to cent precision, half away from zero.
func Round(amount float64) float64 {
	v, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return v
}

// RoundPercent rounds a percentage to one decimal place, matching how
// food-cost percentages are reported on costing screens.
func RoundPercent(pct float64) float64 {
	v, _ := decimal.NewFromFloat(pct).Round(1).Float64()
	return v
}

// Mul multiplies a quantity by a unit price and rounds to cents.
func Mul(quantity, unitPrice float64) float64 {
	v, _ := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(unitPrice)).Round(2).Float64()
	return v
}
