// Package exchange turns target portfolio weights into simulated fills. It
// sizes whole-share target quantities from available equity, derives signed
// deltas against current positions, suppresses trades below a minimum size
// and applies the transaction cost model to each resulting fill
package exchange

import (
	"fmt"
	"sort"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/quantfolio/backtester/data"
	"github.com/quantfolio/backtester/eventtypes/fill"
	"github.com/quantfolio/backtester/eventtypes/order"
	"github.com/quantfolio/backtester/ledger"
	"github.com/quantfolio/backtester/log"
)

// ExecuteRebalance produces the fills that move the portfolio in snap
// towards the supplied target weights at the date's execution price.
// Held symbols absent from the target are liquidated. Skipped trades are
// returned alongside the fills for observability
func (e *Exchange) ExecuteRebalance(
	date time.Time,
	weights map[string]decimal.Decimal,
	snap ledger.Snapshot,
	prices data.Handler,
) ([]fill.Fill, []SkippedOrder, error) {
	equity, err := snap.TotalEquity(date, prices, e.PriceField)
	if err != nil {
		return nil, nil, fmt.Errorf("valuing portfolio for execution: %w", err)
	}
	target, err := e.Sizer.TargetQuantities(date, weights, equity, prices, e.PriceField, e.CostModel)
	if err != nil {
		return nil, nil, err
	}

	var fills []fill.Fill
	var skipped []SkippedOrder
	for _, symbol := range unionSymbols(target, snap.Positions) {
		delta := target[symbol].Sub(snap.Positions[symbol])
		if delta.IsZero() {
			continue
		}
		if delta.Abs().LessThan(e.MinimumTradeSize) {
			skipped = append(skipped, SkippedOrder{
				Symbol:   symbol,
				Quantity: delta,
				Reason:   fmt.Sprintf("delta %v below minimum trade size %v", delta, e.MinimumTradeSize),
			})
			log.Debugf(log.Exchange, "skipping %v delta %v below minimum trade size", symbol, delta)
			continue
		}
		price, err := prices.Price(symbol, date, e.PriceField)
		if err != nil {
			return nil, nil, err
		}
		f, err := e.fillOrder(symbol, delta, price, date)
		if err != nil {
			return nil, nil, err
		}
		fills = append(fills, f)
	}
	log.Debugf(log.Exchange, "rebalance on %v produced %v fill(s), %v skipped",
		date.Format("2006-01-02"), len(fills), len(skipped))
	return fills, skipped, nil
}

func (e *Exchange) fillOrder(symbol string, quantity, price decimal.Decimal, t time.Time) (fill.Fill, error) {
	o, err := order.New(symbol, quantity, t)
	if err != nil {
		return fill.Fill{}, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return fill.Fill{}, err
	}
	return fill.Fill{
		ID:       id,
		OrderID:  o.ID,
		Symbol:   o.Symbol,
		Quantity: o.Quantity,
		Price:    price,
		Cost:     e.CostModel.Cost(o.Symbol, o.Quantity, price),
		Time:     t,
	}, nil
}

func unionSymbols(target, held map[string]decimal.Decimal) []string {
	seen := make(map[string]bool, len(target)+len(held))
	var symbols []string
	for symbol := range target {
		if !seen[symbol] {
			seen[symbol] = true
			symbols = append(symbols, symbol)
		}
	}
	for symbol := range held {
		if !seen[symbol] {
			seen[symbol] = true
			symbols = append(symbols, symbol)
		}
	}
	sort.Strings(symbols)
	return symbols
}
