package sizer

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/backtester/data"
	"github.com/quantfolio/backtester/exchange/fee"
)

var (
	// ErrNegativeWeight occurs when a long-only sizer receives a short weight
	ErrNegativeWeight    = errors.New("long-only sizing does not support negative weights")
	errInvalidCashBuffer = errors.New("cash buffer percentage must lie in [0, 1]")
	errInvalidLeverage   = errors.New("gross leverage must be positive")
)

// Sizer converts target weights and available equity into whole-share
// target quantities priced at the supplied field
type Sizer interface {
	TargetQuantities(
		date time.Time,
		weights map[string]decimal.Decimal,
		equity decimal.Decimal,
		prices data.Handler,
		field data.PriceField,
		costModel fee.Model,
	) (map[string]decimal.Decimal, error)
}
