package exchange

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/backtester/common"
	"github.com/quantfolio/backtester/data"
	"github.com/quantfolio/backtester/exchange/fee"
	"github.com/quantfolio/backtester/exchange/sizer"
	"github.com/quantfolio/backtester/ledger"
)

var testDate = time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)

func snapshot(prices map[string]float64) *data.Snapshot {
	snap := data.NewSnapshot()
	for symbol, p := range prices {
		snap.AddBar(symbol, data.Bar{
			Date:   testDate,
			Open:   decimal.NewFromFloat(p),
			High:   decimal.NewFromFloat(p),
			Low:    decimal.NewFromFloat(p),
			Close:  decimal.NewFromFloat(p),
			Volume: decimal.NewFromInt(1),
		})
	}
	return snap
}

func newExchange() *Exchange {
	return &Exchange{
		Sizer:      sizer.DollarWeighted{},
		CostModel:  fee.Zero{},
		PriceField: data.Close,
	}
}

func TestExecuteRebalanceInitial(t *testing.T) {
	t.Parallel()
	prices := snapshot(map[string]float64{"SPY": 380, "AGG": 98})
	l := ledger.New(decimal.NewFromInt(100000))

	fills, skipped, err := newExchange().ExecuteRebalance(testDate, map[string]decimal.Decimal{
		"SPY": decimal.NewFromFloat(0.6),
		"AGG": decimal.NewFromFloat(0.4),
	}, l.Snapshot(), prices)
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 0 {
		t.Errorf("expected no skips received %v", skipped)
	}
	if len(fills) != 2 {
		t.Fatalf("expected %v received %v", 2, len(fills))
	}
	// symbols are processed in sorted order
	if fills[0].Symbol != "AGG" || fills[1].Symbol != "SPY" {
		t.Errorf("unexpected fill order %v %v", fills[0].Symbol, fills[1].Symbol)
	}
	// 100000 * 0.6 / 380 = 157.89 -> 157
	if !fills[1].Quantity.Equal(decimal.NewFromInt(157)) {
		t.Errorf("expected %v received %v", 157, fills[1].Quantity)
	}
	if !fills[1].Price.Equal(decimal.NewFromInt(380)) {
		t.Errorf("expected %v received %v", 380, fills[1].Price)
	}
}

func TestExecuteRebalanceLiquidatesDropped(t *testing.T) {
	t.Parallel()
	prices := snapshot(map[string]float64{"SPY": 100, "AGG": 100})
	l := ledger.New(decimal.NewFromInt(0))
	// hold AGG only, then target SPY only
	snap := l.Snapshot()
	snap.Positions["AGG"] = decimal.NewFromInt(50)

	fills, _, err := newExchange().ExecuteRebalance(testDate, map[string]decimal.Decimal{
		"SPY": decimal.NewFromInt(1),
	}, snap, prices)
	if err != nil {
		t.Fatal(err)
	}
	if len(fills) != 2 {
		t.Fatalf("expected %v received %v", 2, len(fills))
	}
	if fills[0].Symbol != "AGG" || !fills[0].Quantity.Equal(decimal.NewFromInt(-50)) {
		t.Errorf("expected AGG liquidation received %v %v", fills[0].Symbol, fills[0].Quantity)
	}
	if fills[1].Symbol != "SPY" || !fills[1].Quantity.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected SPY purchase received %v %v", fills[1].Symbol, fills[1].Quantity)
	}
}

func TestExecuteRebalanceSkipsSmallDeltas(t *testing.T) {
	t.Parallel()
	prices := snapshot(map[string]float64{"SPY": 100})
	l := ledger.New(decimal.NewFromInt(0))
	snap := l.Snapshot()
	snap.Positions["SPY"] = decimal.NewFromInt(98)
	snap.Cash = decimal.NewFromInt(200)

	e := newExchange()
	e.MinimumTradeSize = decimal.NewFromInt(5)
	fills, skipped, err := e.ExecuteRebalance(testDate, map[string]decimal.Decimal{
		"SPY": decimal.NewFromInt(1),
	}, snap, prices)
	if err != nil {
		t.Fatal(err)
	}
	if len(fills) != 0 {
		t.Errorf("expected no fills received %v", len(fills))
	}
	if len(skipped) != 1 {
		t.Fatalf("expected %v received %v", 1, len(skipped))
	}
	// equity 10000 -> target 100 shares, delta 2 below the minimum of 5
	if skipped[0].Symbol != "SPY" || !skipped[0].Quantity.Equal(decimal.NewFromInt(2)) {
		t.Errorf("unexpected skip %+v", skipped[0])
	}
	if skipped[0].Reason == "" {
		t.Error("expected a reason on the skipped order")
	}
}

func TestExecuteRebalanceAppliesCost(t *testing.T) {
	t.Parallel()
	prices := snapshot(map[string]float64{"SPY": 100})
	l := ledger.New(decimal.NewFromInt(10000))

	e := newExchange()
	e.CostModel = fee.Percent{Rate: decimal.NewFromFloat(0.001)}
	fills, _, err := e.ExecuteRebalance(testDate, map[string]decimal.Decimal{
		"SPY": decimal.NewFromInt(1),
	}, l.Snapshot(), prices)
	if err != nil {
		t.Fatal(err)
	}
	if len(fills) != 1 {
		t.Fatalf("expected %v received %v", 1, len(fills))
	}
	expectedCost := fills[0].Quantity.Mul(fills[0].Price).Mul(decimal.NewFromFloat(0.001))
	if !fills[0].Cost.Equal(expectedCost) {
		t.Errorf("expected %v received %v", expectedCost, fills[0].Cost)
	}
}

func TestExecuteRebalanceMissingPrice(t *testing.T) {
	t.Parallel()
	prices := snapshot(map[string]float64{"SPY": 100})
	l := ledger.New(decimal.NewFromInt(10000))

	_, _, err := newExchange().ExecuteRebalance(testDate, map[string]decimal.Decimal{
		"SPY": decimal.NewFromFloat(0.5),
		"GLD": decimal.NewFromFloat(0.5),
	}, l.Snapshot(), prices)
	if !errors.Is(err, common.ErrMissingPriceData) {
		t.Errorf("expected %v received %v", common.ErrMissingPriceData, err)
	}
}
