package exchange

import (
	"github.com/shopspring/decimal"

	"github.com/quantfolio/backtester/data"
	"github.com/quantfolio/backtester/exchange/fee"
	"github.com/quantfolio/backtester/exchange/sizer"
)

// SkippedOrder records a computed trade that was not executed, so callers
// can observe churn suppression rather than have it disappear silently
type SkippedOrder struct {
	Symbol   string
	Quantity decimal.Decimal
	Reason   string
}

// Exchange simulates order execution against the bar feed during a
// rebalance event
type Exchange struct {
	// Sizer converts target weights into whole-share target quantities
	Sizer sizer.Sizer
	// CostModel estimates the transaction cost per fill
	CostModel fee.Model
	// PriceField selects the execution price, market open or close
	PriceField data.PriceField
	// MinimumTradeSize suppresses deltas below this share count
	MinimumTradeSize decimal.Decimal
}
