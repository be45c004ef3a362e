// Package smacross signals long when a symbol's latest close sits above its
// simple moving average and flat otherwise, a trend-following filter
package smacross

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
const Name = "smacross"

var (
	errNoSymbols     = errors.New("no symbols supplied")
	errInvalidPeriod = errors.New("sma period must be at least 2 bars")
)

// Strategy compares each symbol's close against its moving average
type Strategy struct {
	symbols []string
	period  int
}

// New returns an sma crossover strategy over the supplied symbols
func New(symbols []string, period int) (*Strategy, error) {
	if len(symbols) == 0 {
		return nil, errNoSymbols
	}
	if period < 2 {
		return nil, errInvalidPeriod
	}
	return &Strategy{symbols: symbols, period: period}, nil
}

// Name returns the strategy's config identifier
func (s *Strategy) Name() string {
	return Name
}

// SignalsAsOf emits 1 for each symbol trading above its moving average as
// of the supplied date and 0 otherwise
func (s *Strategy) SignalsAsOf(date time.Time, d data.Handler) (map[string]decimal.Decimal, error) {
	signals := make(map[string]decimal.Decimal, len(s.symbols))
	for _, symbol := range s.symbols {
		history, err := d.History(symbol, date, s.period)
		if err != nil {
			return nil, err
		}
		if len(history) < s.period {
			return nil, fmt.Errorf("%w: %v bars for %v as of %v, need %v",
				common.ErrInsufficientHistory, len(history), symbol,
				date.Format(common.DateFormat), s.period)
		}
		closes := make([]float64, len(history))
		for i := range history {
			closes[i], _ = history[i].Close.Float64()
		}
		sma := indicators.SMA(closes, s.period)
		latestAverage := sma[len(sma)-1]
		if closes[len(closes)-1] > latestAverage {
			signals[symbol] = decimal.NewFromInt(1)
		} else {
			signals[symbol] = decimal.Zero
		}
	}
	return signals, nil
}
