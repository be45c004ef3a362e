// Package risk adjusts target weights for risk constraints before order
// generation. Implementations receive read-only position data and must
// return a fresh weight map
package risk

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Handler is the pluggable risk manager contract
type Handler interface {
	Adjust(weights, positions map[string]decimal.Decimal) (map[string]decimal.Decimal, error)
}

// Passthrough applies no risk adjustment
type Passthrough struct{}

// Adjust implements the Handler interface
func (p Passthrough) Adjust(weights, _ map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(weights))
	for symbol, w := range weights {
		out[symbol] = w
	}
	return out, nil
}

// ExposureCap clamps the absolute weight of any single symbol to a maximum,
// preserving the weight's sign
type ExposureCap struct {
	Cap decimal.Decimal
}

// Adjust implements the Handler interface
func (e ExposureCap) Adjust(weights, _ map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	if e.Cap.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("exposure cap must be positive, have %v", e.Cap)
	}
	out := make(map[string]decimal.Decimal, len(weights))
	for symbol, w := range weights {
		if w.Abs().GreaterThan(e.Cap) {
			if w.IsNegative() {
				out[symbol] = e.Cap.Neg()
			} else {
				out[symbol] = e.Cap
			}
			continue
		}
		out[symbol] = w
	}
	return out, nil
}

// NewFromConfig builds a risk manager from its config name and parameter
func NewFromConfig(name string, cap decimal.Decimal) (Handler, error) {
	switch strings.ToLower(name) {
	case "", "passthrough":
		return Passthrough{}, nil
	case "exposure_cap":
		return ExposureCap{Cap: cap}, nil
	default:
		return nil, fmt.Errorf("unrecognised risk manager %q", name)
	}
}
