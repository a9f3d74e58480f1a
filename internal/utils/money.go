package utils

import "github.com/shopspring/decimal"

// WeeksPerMonth is the conversion factor between weekly terms and monthly
// interest rates used across the institution's products.
var WeeksPerMonth = decimal.NewFromFloat(4.33)

// CBURate is the capital build-up set-aside taken from every loan principal.
var CBURate = decimal.NewFromFloat(0.05)

// RoundCentavos rounds a peso amount to 2 decimal places. All derived
// monetary values are rounded at the point they are computed; drift from
// independent per-column rounding is accepted, not redistributed.
func RoundCentavos(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
