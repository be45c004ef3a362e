// Package momentum scores each symbol by its trailing total return over a
// lookback window, smoothed with a simple moving average of closes. Higher
// momentum receives a larger signal; symbols in a downtrend score zero
package momentum

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/gct-ta/indicators"

	"github.com/quantfolio/backtester/common"
	"github.com/quantfolio/backtester/data"
)

// Name is the strategy's config identifier
const Name = "momentum"

var (
	errNoSymbols       = errors.New("no symbols supplied")
	errInvalidLookback = errors.New("lookback must be at least 2 bars")
)

// Strategy scores symbols by trailing return
type Strategy struct {
	symbols  []string
	lookback int
}

// New returns a momentum strategy over the supplied symbols
func New(symbols []string, lookback int) (*Strategy, error) {
	if len(symbols) == 0 {
		return nil, errNoSymbols
	}
	if lookback < 2 {
		return nil, errInvalidLookback
	}
	return &Strategy{symbols: symbols, lookback: lookback}, nil
}

// Name returns the strategy's config identifier
func (s *Strategy) Name() string {
	return Name
}

// SignalsAsOf scores each symbol by its smoothed trailing return over the
// lookback window as of the supplied date
func (s *Strategy) SignalsAsOf(date time.Time, d data.Handler) (map[string]decimal.Decimal, error) {
	signals := make(map[string]decimal.Decimal, len(s.symbols))
	for _, symbol := range s.symbols {
		history, err := d.History(symbol, date, s.lookback)
		if err != nil {
			return nil, err
		}
		if len(history) < s.lookback {
			return nil, fmt.Errorf("%w: %v bars for %v as of %v, need %v",
				common.ErrInsufficientHistory, len(history), symbol,
				date.Format(common.DateFormat), s.lookback)
		}
		closes := make([]float64, len(history))
		for i := range history {
			closes[i], _ = history[i].Close.Float64()
		}
		// smooth the latest close to dampen single-bar spikes
		smoothed := indicators.SMA(closes, 2)
		first := closes[0]
		last := smoothed[len(smoothed)-1]
		if first <= 0 || last <= first {
			signals[symbol] = decimal.Zero
			continue
		}
		signals[symbol] = decimal.NewFromFloat(last/first - 1)
	}
	return signals, nil
}
