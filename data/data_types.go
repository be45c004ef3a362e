package data

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceField selects which bar price a lookup returns
type PriceField uint8

const (
	// Open is the bar's opening price
	Open PriceField = iota
	// High is the bar's highest price
	High
	// Low is the bar's lowest price
	Low
	// Close is the bar's closing price
	Close
)

// String implements the stringer interface
func (p PriceField) String() string {
	switch p {
	case Open:
		return "open"
	case High:
		return "high"
	case Low:
		return "low"
	case Close:
		return "close"
	default:
		return "unknown"
	}
}

// Bar is a single daily OHLCV candle
type Bar struct {
	Date   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

// Handler is the read-only bar feed contract consumed by the engine and the
// pluggable strategy components. Lookups are synchronous against a
// pre-fetched in-memory snapshot
type Handler interface {
	Price(symbol string, date time.Time, field PriceField) (decimal.Decimal, error)
	History(symbol string, asOf time.Time, n int) ([]Bar, error)
	Symbols() []string
}

// Snapshot is the in-memory Handler implementation backing a backtest run
type Snapshot struct {
	bars  map[string][]Bar
	index map[string]map[time.Time]int
}
