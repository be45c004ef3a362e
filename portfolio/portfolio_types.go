package portfolio

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoSignals occurs when construction receives an empty signal set
	ErrNoSignals        = errors.New("no signals to construct portfolio from")
	errUnknownOptimiser = errors.New("unrecognised optimiser")
)

// Constructor converts trading signals into target portfolio weights.
// Weights are not required to sum to one; the order sizer normalises them
type Constructor interface {
	Construct(signals map[string]decimal.Decimal) (map[string]decimal.Decimal, error)
}
