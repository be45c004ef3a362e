package strategy

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/backtester/common"
	"github.com/quantfolio/backtester/data"
)

var (
	// ErrStrategyNotFound occurs when a config names an unknown strategy
	ErrStrategyNotFound = errors.New("strategy not found")
	// ErrInsufficientHistory occurs when a strategy requires more bars than
	// the feed can supply as of the requested date. Strategy packages wrap
	// the shared sentinel so callers can match it here
	ErrInsufficientHistory = common.ErrInsufficientHistory
)

// Handler generates trading signals from historical data as of a date.
// Signal values are strategy specific; the portfolio constructor decides how
// they map to weights
type Handler interface {
	Name() string
	SignalsAsOf(date time.Time, d data.Handler) (map[string]decimal.Decimal, error)
}
