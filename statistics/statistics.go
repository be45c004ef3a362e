// Package statistics turns a completed run's equity curve into performance
// measures: total return, CAGR, annualised Sharpe and Sortino ratios and
// the maximum peak-to-trough drawdown with its duration. The curve is
// guaranteed gap-free and date ordered by the ledger, so no missing-day
// handling is needed here
package statistics

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/backtester/ledger"
	"github.com/quantfolio/backtester/log"
)

// Calculate computes a performance summary from an equity curve
func Calculate(curve []ledger.EquityPoint) (*Summary, error) {
	if len(curve) < 2 {
		return nil, errCurveTooShort
	}
	equity := make([]float64, len(curve))
	for i := range curve {
		equity[i], _ = curve[i].Equity.Float64()
	}
	returns := dailyReturns(equity)

	s := &Summary{
		StartDate:     curve[0].Date,
		EndDate:       curve[len(curve)-1].Date,
		TradingDays:   len(curve),
		InitialEquity: curve[0].Equity,
		FinalEquity:   curve[len(curve)-1].Equity,
	}
	if equity[0] != 0 {
		s.TotalReturn = s.FinalEquity.Sub(s.InitialEquity).Div(s.InitialEquity)
		s.CAGR = decimal.NewFromFloat(cagr(equity))
	}
	s.SharpeRatio = decimal.NewFromFloat(sharpe(returns))
	s.SortinoRatio = decimal.NewFromFloat(sortino(returns))
	dd, duration := maxDrawdown(equity)
	s.MaxDrawdown = decimal.NewFromFloat(dd)
	s.MaxDrawdownDuration = duration
	return s, nil
}

func dailyReturns(equity []float64) []float64 {
	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		if equity[i-1] == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, equity[i]/equity[i-1]-1)
	}
	return returns
}

// cagr compounds the total growth factor over the run's length in
// 252-day years
func cagr(equity []float64) float64 {
	years := float64(len(equity)) / tradingDaysPerYear
	growth := equity[len(equity)-1] / equity[0]
	if growth <= 0 {
		return -1
	}
	return math.Pow(growth, 1/years) - 1
}

// sharpe annualises mean daily return over its standard deviation against a
// zero benchmark. A flat curve yields zero rather than a division by zero
func sharpe(returns []float64) float64 {
	sd := stddev(returns)
	if sd == 0 {
		return 0
	}
	return math.Sqrt(tradingDaysPerYear) * mean(returns) / sd
}

// sortino penalises only downside deviation. With no negative days the
// ratio is unbounded and reported as zero
func sortino(returns []float64) float64 {
	var downside []float64
	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	sd := stddev(downside)
	if sd == 0 {
		return 0
	}
	return math.Sqrt(tradingDaysPerYear) * mean(returns) / sd
}

// maxDrawdown returns the deepest peak-to-trough loss as a positive
// fraction of the peak, with the longest below-peak stretch in days
func maxDrawdown(equity []float64) (float64, int) {
	var deepest float64
	var duration, current int
	peak := equity[0]
	for i := range equity {
		if equity[i] >= peak {
			peak = equity[i]
			current = 0
			continue
		}
		current++
		if current > duration {
			duration = current
		}
		if peak > 0 {
			dd := (peak - equity[i]) / peak
			if dd > deepest {
				deepest = dd
			}
		}
	}
	return deepest, duration
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var total float64
	for _, x := range xs {
		total += x
	}
	return total / float64(len(xs))
}

func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		ss += (x - m) * (x - m)
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// Serialise renders the summary as indented JSON
func (s *Summary) Serialise() (string, error) {
	out, err := json.MarshalIndent(s, "", " ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// PrintResult logs the summary's headline figures
func (s *Summary) PrintResult() {
	log.Infof(log.Report, "%v to %v over %v trading day(s)",
		s.StartDate.Format("2006-01-02"), s.EndDate.Format("2006-01-02"), s.TradingDays)
	log.Infof(log.Report, "initial equity %v final equity %v",
		s.InitialEquity.StringFixed(2), s.FinalEquity.StringFixed(2))
	log.Infof(log.Report, "total return %v%% cagr %v%%",
		s.TotalReturn.Mul(decimal.NewFromInt(100)).StringFixed(2),
		s.CAGR.Mul(decimal.NewFromInt(100)).StringFixed(2))
	log.Infof(log.Report, "sharpe %v sortino %v",
		s.SharpeRatio.StringFixed(2), s.SortinoRatio.StringFixed(2))
	log.Infof(log.Report, "max drawdown %v%% over %v day(s)",
		s.MaxDrawdown.Mul(decimal.NewFromInt(100)).StringFixed(2), s.MaxDrawdownDuration)
}
