package statistics

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	errCurveTooShort = errors.New("equity curve needs at least two points")
)

// tradingDaysPerYear annualises daily observations
const tradingDaysPerYear = 252

// Summary holds performance statistics computed from a completed run's
// equity curve
type Summary struct {
	StartDate           time.Time       `json:"start-date"`
	EndDate             time.Time       `json:"end-date"`
	TradingDays         int             `json:"trading-days"`
	InitialEquity       decimal.Decimal `json:"initial-equity"`
	FinalEquity         decimal.Decimal `json:"final-equity"`
	TotalReturn         decimal.Decimal `json:"total-return"`
	CAGR                decimal.Decimal `json:"cagr"`
	SharpeRatio         decimal.Decimal `json:"sharpe-ratio"`
	SortinoRatio        decimal.Decimal `json:"sortino-ratio"`
	MaxDrawdown         decimal.Decimal `json:"max-drawdown"`
	MaxDrawdownDuration int             `json:"max-drawdown-duration-days"`
}
