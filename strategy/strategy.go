// Package strategy defines the pluggable signal generation contract and a
// registry mapping config names onto implementations
package strategy

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/backtester/strategy/fixedsignals"
	"github.com/quantfolio/backtester/strategy/momentum"
	"github.com/quantfolio/backtester/strategy/smacross"
)

// New builds a strategy from its config name, symbols and parameters.
// weights are only used by the fixed signals strategy; lookback only by the
// indicator driven ones
func New(name string, symbols []string, weights map[string]decimal.Decimal, lookback int) (Handler, error) {
	switch strings.ToLower(name) {
	case fixedsignals.Name:
		return fixedsignals.New(weights)
	case momentum.Name:
		return momentum.New(symbols, lookback)
	case smacross.Name:
		return smacross.New(symbols, lookback)
	default:
		return nil, fmt.Errorf("%w: %q", ErrStrategyNotFound, name)
	}
}
