// Package data supplies daily OHLCV bars to the simulation through a
// lookup-by-date contract. Sources load bars once up front into a Snapshot;
// the simulation itself never performs I/O
package data

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/backtester/common"
)

// NewSnapshot returns an empty bar snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		bars:  make(map[string][]Bar),
		index: make(map[string]map[time.Time]int),
	}
}

// AddBar inserts a bar for a symbol, replacing any existing bar on the same
// date. Bars are kept date ordered
func (s *Snapshot) AddBar(symbol string, b Bar) {
	b.Date = common.DateOf(b.Date)
	if s.index[symbol] == nil {
		s.index[symbol] = make(map[time.Time]int)
	}
	if i, ok := s.index[symbol][b.Date]; ok {
		s.bars[symbol][i] = b
		return
	}
	s.bars[symbol] = append(s.bars[symbol], b)
	sort.Slice(s.bars[symbol], func(i, j int) bool {
		return s.bars[symbol][i].Date.Before(s.bars[symbol][j].Date)
	})
	for i := range s.bars[symbol] {
		s.index[symbol][s.bars[symbol][i].Date] = i
	}
}

// Price returns the requested price field for a symbol on a date
func (s *Snapshot) Price(symbol string, date time.Time, field PriceField) (decimal.Decimal, error) {
	i, ok := s.index[symbol][common.DateOf(date)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w for %v on %v",
			common.ErrMissingPriceData, symbol, date.Format(common.DateFormat))
	}
	b := s.bars[symbol][i]
	switch field {
	case Open:
		return b.Open, nil
	case High:
		return b.High, nil
	case Low:
		return b.Low, nil
	case Close:
		return b.Close, nil
	default:
		return decimal.Zero, fmt.Errorf("unrecognised price field %v", field)
	}
}

// History returns up to n bars for a symbol dated at or before asOf, oldest
// first. Fewer than n bars are returned when insufficient history exists
func (s *Snapshot) History(symbol string, asOf time.Time, n int) ([]Bar, error) {
	all, ok := s.bars[symbol]
	if !ok {
		return nil, fmt.Errorf("%w for %v", common.ErrMissingPriceData, symbol)
	}
	cutoff := common.DateOf(asOf)
	end := sort.Search(len(all), func(i int) bool {
		return all[i].Date.After(cutoff)
	})
	start := end - n
	if start < 0 {
		start = 0
	}
	out := make([]Bar, end-start)
	copy(out, all[start:end])
	return out, nil
}

// Symbols returns every symbol present in the snapshot, sorted
func (s *Snapshot) Symbols() []string {
	symbols := make([]string, 0, len(s.bars))
	for symbol := range s.bars {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
