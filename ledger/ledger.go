// Package ledger tracks cash, positions and the daily equity curve of a
// simulated portfolio. Fill application is atomic: a batch either commits
// in full or leaves the ledger untouched
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/backtester/common"
	"github.com/quantfolio/backtester/data"
	"github.com/quantfolio/backtester/eventtypes/fill"
	"github.com/quantfolio/backtester/log"
)

// New returns a ledger holding only the supplied starting cash
func New(initialCash decimal.Decimal) *Ledger {
	return &Ledger{
		initialCash: initialCash,
		cash:        initialCash,
		positions:   make(map[string]decimal.Decimal),
	}
}

// Cash returns the current cash balance
func (l *Ledger) Cash() decimal.Decimal {
	return l.cash
}

// InitialCash returns the cash the ledger was created with
func (l *Ledger) InitialCash() decimal.Decimal {
	return l.initialCash
}

// Position returns the signed quantity held for a symbol
func (l *Ledger) Position(symbol string) decimal.Decimal {
	return l.positions[symbol]
}

// Symbols returns every symbol with a non-zero position, sorted
func (l *Ledger) Symbols() []string {
	symbols := make([]string, 0, len(l.positions))
	for symbol, qty := range l.positions {
		if !qty.IsZero() {
			symbols = append(symbols, symbol)
		}
	}
	sort.Strings(symbols)
	return symbols
}

// Snapshot returns a read-only copy of current cash and positions
func (l *Ledger) Snapshot() Snapshot {
	positions := make(map[string]decimal.Decimal, len(l.positions))
	for symbol, qty := range l.positions {
		if !qty.IsZero() {
			positions[symbol] = qty
		}
	}
	return Snapshot{Cash: l.cash, Positions: positions}
}

// ApplyFills updates positions and cash from a batch of fills as a single
// atomic unit. Buying decreases cash by quantity multiplied by price, and
// every fill's cost is deducted. A validation failure on any fill leaves
// the ledger in its pre-batch state
func (l *Ledger) ApplyFills(fills []fill.Fill) error {
	staged := make(map[string]decimal.Decimal, len(l.positions))
	for symbol, qty := range l.positions {
		staged[symbol] = qty
	}
	stagedCash := l.cash

	for i := range fills {
		if err := validateFill(&fills[i]); err != nil {
			return err
		}
		staged[fills[i].Symbol] = staged[fills[i].Symbol].Add(fills[i].Quantity)
		stagedCash = stagedCash.Sub(fills[i].Notional()).Sub(fills[i].Cost)
	}

	l.positions = staged
	l.cash = stagedCash
	for i := range fills {
		log.Debugf(log.Ledger, "applied fill %v %v x %v @ %v cost %v",
			fills[i].Symbol, fills[i].Quantity, fills[i].Price, fills[i].Cost, fills[i].Time)
	}
	return nil
}

func validateFill(f *fill.Fill) error {
	if f.Symbol == "" {
		return fmt.Errorf("%w: fill with empty symbol", common.ErrLedgerConsistency)
	}
	if f.Quantity.IsZero() {
		return fmt.Errorf("%w: zero quantity fill for %v", common.ErrLedgerConsistency, f.Symbol)
	}
	if f.Price.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: non-positive fill price %v for %v",
			common.ErrLedgerConsistency, f.Price, f.Symbol)
	}
	if f.Cost.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: negative fill cost %v for %v",
			common.ErrLedgerConsistency, f.Cost, f.Symbol)
	}
	return nil
}

// MarkToMarket values every held position at the date's closing price and
// appends one equity curve point. A missing price for any held symbol fails
// the valuation without recording a point
func (l *Ledger) MarkToMarket(date time.Time, prices data.Handler) (decimal.Decimal, error) {
	if prices == nil {
		return decimal.Zero, common.ErrNilArguments
	}
	if len(l.curve) > 0 && !date.After(l.curve[len(l.curve)-1].Date) {
		return decimal.Zero, fmt.Errorf("%w: equity point %v not after %v",
			common.ErrLedgerConsistency,
			date.Format(common.DateFormat),
			l.curve[len(l.curve)-1].Date.Format(common.DateFormat))
	}

	equity := l.cash
	for _, symbol := range l.Symbols() {
		price, err := prices.Price(symbol, date, data.Close)
		if err != nil {
			return decimal.Zero, err
		}
		equity = equity.Add(l.positions[symbol].Mul(price))
	}
	l.curve = append(l.curve, EquityPoint{Date: common.DateOf(date), Equity: equity})
	return equity, nil
}

// EquityCurve returns a copy of the daily equity observations recorded so far
func (l *Ledger) EquityCurve() []EquityPoint {
	curve := make([]EquityPoint, len(l.curve))
	copy(curve, l.curve)
	return curve
}

// TotalEquity values the snapshot at the date's prices using the supplied
// field, without recording an equity point
func (s Snapshot) TotalEquity(date time.Time, prices data.Handler, field data.PriceField) (decimal.Decimal, error) {
	if prices == nil {
		return decimal.Zero, common.ErrNilArguments
	}
	equity := s.Cash
	symbols := make([]string, 0, len(s.Positions))
	for symbol := range s.Positions {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	for _, symbol := range symbols {
		price, err := prices.Price(symbol, date, field)
		if err != nil {
			return decimal.Zero, err
		}
		equity = equity.Add(s.Positions[symbol].Mul(price))
	}
	return equity, nil
}
