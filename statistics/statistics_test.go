package statistics

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/backtester/ledger"
)

func curveFrom(start time.Time, values ...float64) []ledger.EquityPoint {
	curve := make([]ledger.EquityPoint, len(values))
	for i, v := range values {
		curve[i] = ledger.EquityPoint{
			Date:   start.AddDate(0, 0, i),
			Equity: decimal.NewFromFloat(v),
		}
	}
	return curve
}

func TestCalculateTooShort(t *testing.T) {
	t.Parallel()
	if _, err := Calculate(nil); !errors.Is(err, errCurveTooShort) {
		t.Errorf("expected %v received %v", errCurveTooShort, err)
	}
	one := curveFrom(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), 100000)
	if _, err := Calculate(one); !errors.Is(err, errCurveTooShort) {
		t.Errorf("expected %v received %v", errCurveTooShort, err)
	}
}

func TestCalculateFlatCurve(t *testing.T) {
	t.Parallel()
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	s, err := Calculate(curveFrom(start, 100000, 100000, 100000, 100000))
	if err != nil {
		t.Fatalf("expected no error received %v", err)
	}
	if !s.TotalReturn.IsZero() {
		t.Errorf("expected zero total return received %v", s.TotalReturn)
	}
	if !s.SharpeRatio.IsZero() {
		t.Errorf("expected zero sharpe received %v", s.SharpeRatio)
	}
	if !s.SortinoRatio.IsZero() {
		t.Errorf("expected zero sortino received %v", s.SortinoRatio)
	}
	if !s.MaxDrawdown.IsZero() {
		t.Errorf("expected zero drawdown received %v", s.MaxDrawdown)
	}
	if s.TradingDays != 4 {
		t.Errorf("expected 4 trading days received %v", s.TradingDays)
	}
}

func TestCalculateMonotoneGrowth(t *testing.T) {
	t.Parallel()
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	s, err := Calculate(curveFrom(start, 100000, 101000, 102010, 103030.1))
	if err != nil {
		t.Fatalf("expected no error received %v", err)
	}
	if !s.TotalReturn.GreaterThan(decimal.Zero) {
		t.Errorf("expected positive total return received %v", s.TotalReturn)
	}
	if !s.CAGR.GreaterThan(decimal.Zero) {
		t.Errorf("expected positive cagr received %v", s.CAGR)
	}
	if !s.MaxDrawdown.IsZero() {
		t.Errorf("expected zero drawdown received %v", s.MaxDrawdown)
	}
	if s.MaxDrawdownDuration != 0 {
		t.Errorf("expected zero drawdown duration received %v", s.MaxDrawdownDuration)
	}
	if !s.SortinoRatio.IsZero() {
		t.Errorf("expected zero sortino with no losing days received %v", s.SortinoRatio)
	}
}

func TestCalculateDrawdown(t *testing.T) {
	t.Parallel()
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	s, err := Calculate(curveFrom(start, 100, 110, 99, 88, 110, 120))
	if err != nil {
		t.Fatalf("expected no error received %v", err)
	}
	expected := (110.0 - 88.0) / 110.0
	got, _ := s.MaxDrawdown.Float64()
	if math.Abs(got-expected) > 1e-12 {
		t.Errorf("expected drawdown %v received %v", expected, got)
	}
	if s.MaxDrawdownDuration != 2 {
		t.Errorf("expected drawdown duration 2 received %v", s.MaxDrawdownDuration)
	}
	if !s.SharpeRatio.GreaterThan(decimal.Zero) {
		t.Errorf("expected positive sharpe received %v", s.SharpeRatio)
	}
	if s.SortinoRatio.IsZero() {
		t.Errorf("expected non-zero sortino received %v", s.SortinoRatio)
	}
}

func TestCalculateCAGRFullYear(t *testing.T) {
	t.Parallel()
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	values := make([]float64, 252)
	for i := range values {
		values[i] = 100000 * math.Pow(1.1, float64(i)/251)
	}
	s, err := Calculate(curveFrom(start, values...))
	if err != nil {
		t.Fatalf("expected no error received %v", err)
	}
	got, _ := s.CAGR.Float64()
	if math.Abs(got-0.1) > 1e-6 {
		t.Errorf("expected cagr near 0.1 received %v", got)
	}
}

func TestSerialise(t *testing.T) {
	t.Parallel()
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	s, err := Calculate(curveFrom(start, 100, 110, 99))
	if err != nil {
		t.Fatalf("expected no error received %v", err)
	}
	out, err := s.Serialise()
	if err != nil {
		t.Fatalf("expected no error received %v", err)
	}
	for _, field := range []string{"total-return", "cagr", "sharpe-ratio", "max-drawdown"} {
		if !strings.Contains(out, field) {
			t.Errorf("expected serialised output to contain %q", field)
		}
	}
}
