// Package amount converts fiat order totals into LLD amounts. The display
// amount and the exact planck amount are both derived directly from the
// fiat total and the rate; the plancks are never re-derived from the
// display string, which would lose precision across the decimals boundary.
package amount

import "github.com/shopspring/decimal"

// LLDDecimals is the number of fractional digits of one LLD;
// 10^12 plancks = 1 LLD.
const LLDDecimals = 12

var plancksPerLLD = decimal.New(1, LLDDecimals)

// Display returns the human LLD amount for a fiat total at the given rate,
// formatted with exactly 12 fractional digits and no thousands separators.
// Rounding is half-up at the 12th fractional digit.
func Display(fiat, rate decimal.Decimal) string {
	return fiat.DivRound(rate, LLDDecimals).StringFixed(LLDDecimals)
}

// ExactPlancks returns round-half-up(fiat/rate * 10^12) as an integer
// string. This value is the sole verification target once persisted.
func ExactPlancks(fiat, rate decimal.Decimal) string {
	return fiat.Mul(plancksPerLLD).DivRound(rate, 0).String()
}
