// Package fee provides the transaction cost models applied to simulated
// fills: zero cost, a fixed charge per trade, or a charge proportional to
// traded notional
package fee

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Model estimates the transaction cost of trading a quantity of a symbol at
// a price. Quantity and notional may be signed; cost is always non-negative.
// CostFromNotional estimates from a dollar notional before any share
// quantity is known, so sizers can reserve cash for costs up front
type Model interface {
	Cost(symbol string, quantity, price decimal.Decimal) decimal.Decimal
	CostFromNotional(symbol string, notional decimal.Decimal) decimal.Decimal
}

// Zero charges nothing for any trade
type Zero struct{}

// Cost implements the Model interface
func (z Zero) Cost(_ string, _, _ decimal.Decimal) decimal.Decimal {
	return decimal.Zero
}

// CostFromNotional implements the Model interface
func (z Zero) CostFromNotional(_ string, _ decimal.Decimal) decimal.Decimal {
	return decimal.Zero
}

// PerTrade charges a fixed amount for every non-zero trade
type PerTrade struct {
	Charge decimal.Decimal
}

// Cost implements the Model interface
func (p PerTrade) Cost(_ string, quantity, _ decimal.Decimal) decimal.Decimal {
	if quantity.IsZero() {
		return decimal.Zero
	}
	return p.Charge
}

// CostFromNotional implements the Model interface
func (p PerTrade) CostFromNotional(_ string, notional decimal.Decimal) decimal.Decimal {
	if notional.IsZero() {
		return decimal.Zero
	}
	return p.Charge
}

// Percent charges a proportion of the traded notional, eg a rate of 0.001
// charges ten basis points
type Percent struct {
	Rate decimal.Decimal
}

// Cost implements the Model interface
func (p Percent) Cost(_ string, quantity, price decimal.Decimal) decimal.Decimal {
	return quantity.Abs().Mul(price).Mul(p.Rate)
}

// CostFromNotional implements the Model interface
func (p Percent) CostFromNotional(_ string, notional decimal.Decimal) decimal.Decimal {
	return notional.Abs().Mul(p.Rate)
}

// NewFromConfig builds a cost model from its config name and parameter
func NewFromConfig(name string, param decimal.Decimal) (Model, error) {
	switch strings.ToLower(name) {
	case "", "zero":
		return Zero{}, nil
	case "per_trade":
		return PerTrade{Charge: param}, nil
	case "percent":
		return Percent{Rate: param}, nil
	default:
		return nil, fmt.Errorf("unrecognised fee model %q", name)
	}
}
