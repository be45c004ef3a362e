// Package sizer converts target portfolio weights into whole-share target
// quantities. The dollar weighted variant builds long-only portfolios with a
// configurable cash buffer; the long short variant supports signed weights
// scaled to a gross leverage level
package sizer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/backtester/data"
	"github.com/quantfolio/backtester/exchange/fee"
)

// DollarWeighted sizes a long-only portfolio, retaining CashBuffer as a
// fraction of equity to absorb whole-share rounding and transaction costs
type DollarWeighted struct {
	CashBuffer decimal.Decimal
}

// TargetQuantities implements the Sizer interface
func (s DollarWeighted) TargetQuantities(
	date time.Time,
	weights map[string]decimal.Decimal,
	equity decimal.Decimal,
	prices data.Handler,
	field data.PriceField,
	costModel fee.Model,
) (map[string]decimal.Decimal, error) {
	if s.CashBuffer.IsNegative() || s.CashBuffer.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w, have %v", errInvalidCashBuffer, s.CashBuffer)
	}
	if len(weights) == 0 {
		return map[string]decimal.Decimal{}, nil
	}
	for symbol, w := range weights {
		if w.IsNegative() {
			return nil, fmt.Errorf("%w: %v has weight %v", ErrNegativeWeight, symbol, w)
		}
	}
	normalised := normalise(weights, unitSum)
	buffered := equity.Mul(decimal.NewFromInt(1).Sub(s.CashBuffer))

	target := make(map[string]decimal.Decimal, len(weights))
	for _, symbol := range sortedSymbols(normalised) {
		notional := buffered.Mul(normalised[symbol])
		price, err := prices.Price(symbol, date, field)
		if err != nil {
			return nil, err
		}
		// cost estimated from the pre-cost notional, before the share
		// quantity is known
		estCost := costModel.CostFromNotional(symbol, notional)
		target[symbol] = notional.Sub(estCost).Div(price).Floor()
	}
	return target, nil
}

// LongShort sizes a signed portfolio scaled so gross exposure equals
// GrossLeverage times equity
type LongShort struct {
	GrossLeverage decimal.Decimal
}

// TargetQuantities implements the Sizer interface
func (s LongShort) TargetQuantities(
	date time.Time,
	weights map[string]decimal.Decimal,
	equity decimal.Decimal,
	prices data.Handler,
	field data.PriceField,
	costModel fee.Model,
) (map[string]decimal.Decimal, error) {
	if s.GrossLeverage.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w, have %v", errInvalidLeverage, s.GrossLeverage)
	}
	if len(weights) == 0 {
		return map[string]decimal.Decimal{}, nil
	}
	normalised := normalise(weights, grossSum)
	levered := equity.Mul(s.GrossLeverage)

	target := make(map[string]decimal.Decimal, len(weights))
	for _, symbol := range sortedSymbols(normalised) {
		notional := levered.Mul(normalised[symbol])
		price, err := prices.Price(symbol, date, field)
		if err != nil {
			return nil, err
		}
		estCost := costModel.CostFromNotional(symbol, notional)
		if notional.IsNegative() {
			target[symbol] = notional.Add(estCost).Div(price).Ceil()
		} else {
			target[symbol] = notional.Sub(estCost).Div(price).Floor()
		}
	}
	return target, nil
}

type sumFunc func(decimal.Decimal) decimal.Decimal

func unitSum(w decimal.Decimal) decimal.Decimal  { return w }
func grossSum(w decimal.Decimal) decimal.Decimal { return w.Abs() }

// normalise rescales weights so their sum (as measured by measure) is one.
// Weights summing to zero are returned unscaled
func normalise(weights map[string]decimal.Decimal, measure sumFunc) map[string]decimal.Decimal {
	total := decimal.Zero
	for _, w := range weights {
		total = total.Add(measure(w))
	}
	out := make(map[string]decimal.Decimal, len(weights))
	for symbol, w := range weights {
		if total.IsZero() {
			out[symbol] = w
			continue
		}
		out[symbol] = w.Div(total)
	}
	return out
}

func sortedSymbols(weights map[string]decimal.Decimal) []string {
	symbols := make([]string, 0, len(weights))
	for symbol := range weights {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// NewFromConfig builds a sizer from its config name and parameter
func NewFromConfig(name string, param decimal.Decimal) (Sizer, error) {
	switch strings.ToLower(name) {
	case "", "dollar_weighted":
		return DollarWeighted{CashBuffer: param}, nil
	case "long_short":
		if param.IsZero() {
			param = decimal.NewFromInt(1)
		}
		return LongShort{GrossLeverage: param}, nil
	default:
		return nil, fmt.Errorf("unrecognised order sizer %q", name)
	}
}
