// Package fixedsignals emits a constant signal per symbol regardless of
// price history, pairing with the fixed weight optimiser for static
// allocation strategies such as sixty-forty
package fixedsignals

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/backtester/data"
)

// Name is the strategy's config identifier
const Name = "fixedsignals"

var errNoSignals = errors.New("no fixed signals supplied")

// Strategy holds the constant signal per symbol
type Strategy struct {
	signals map[string]decimal.Decimal
}

// New returns a fixed signals strategy
func New(signals map[string]decimal.Decimal) (*Strategy, error) {
	if len(signals) == 0 {
		return nil, errNoSignals
	}
	copied := make(map[string]decimal.Decimal, len(signals))
	for symbol, value := range signals {
		copied[symbol] = value
	}
	return &Strategy{signals: copied}, nil
}

// Name returns the strategy's config identifier
func (s *Strategy) Name() string {
	return Name
}

// SignalsAsOf returns the configured signals unchanged
func (s *Strategy) SignalsAsOf(_ time.Time, _ data.Handler) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(s.signals))
	for symbol, value := range s.signals {
		out[symbol] = value
	}
	return out, nil
}
