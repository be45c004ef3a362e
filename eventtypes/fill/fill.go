// Package fill holds the simulated execution record applied to the ledger
package fill

import "github.com/shopspring/decimal"

// Notional returns the signed cash impact of the traded quantity at the
// fill price, excluding cost. Positive for buys
func (f *Fill) Notional() decimal.Decimal {
	return f.Quantity.Mul(f.Price)
}

// IsBuy returns whether the fill increased the position
func (f *Fill) IsBuy() bool {
	return f.Quantity.GreaterThan(decimal.Zero)
}
