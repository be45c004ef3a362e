// Package portfolio converts trading signals into target portfolio weights
// through interchangeable optimiser variants
package portfolio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FixedWeight passes signal values through as target weights unchanged,
// pairing with strategies whose signals already are allocations
type FixedWeight struct{}

// Construct implements the Constructor interface
func (f FixedWeight) Construct(signals map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	if len(signals) == 0 {
		return nil, ErrNoSignals
	}
	weights := make(map[string]decimal.Decimal, len(signals))
	for symbol, value := range signals {
		weights[symbol] = value
	}
	return weights, nil
}

// EqualWeight assigns an identical weight to every symbol with a positive
// signal and zero to the rest. Scale stretches the per-symbol weight, eg a
// scale of 1 over four positive signals yields 0.25 each
type EqualWeight struct {
	Scale decimal.Decimal
}

// Construct implements the Constructor interface
func (e EqualWeight) Construct(signals map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	if len(signals) == 0 {
		return nil, ErrNoSignals
	}
	scale := e.Scale
	if scale.IsZero() {
		scale = decimal.NewFromInt(1)
	}
	var positive int64
	for _, value := range signals {
		if value.GreaterThan(decimal.Zero) {
			positive++
		}
	}
	weights := make(map[string]decimal.Decimal, len(signals))
	for symbol, value := range signals {
		if positive > 0 && value.GreaterThan(decimal.Zero) {
			weights[symbol] = scale.Div(decimal.NewFromInt(positive))
		} else {
			weights[symbol] = decimal.Zero
		}
	}
	return weights, nil
}

// NewFromConfig builds a constructor from its config name
func NewFromConfig(name string, scale decimal.Decimal) (Constructor, error) {
	switch strings.ToLower(name) {
	case "", "fixed_weight":
		return FixedWeight{}, nil
	case "equal_weight":
		return EqualWeight{Scale: scale}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownOptimiser, name)
	}
}
