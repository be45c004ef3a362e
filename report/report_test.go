package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/backtester/ledger"
	"github.com/quantfolio/backtester/statistics"
)

func testResults(t *testing.T) (*statistics.Summary, []ledger.EquityPoint) {
	t.Helper()
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	curve := []ledger.EquityPoint{
		{Date: start, Equity: decimal.NewFromInt(100000)},
		{Date: start.AddDate(0, 0, 1), Equity: decimal.NewFromInt(101000)},
		{Date: start.AddDate(0, 0, 2), Equity: decimal.NewFromInt(99500)},
	}
	summary, err := statistics.Calculate(curve)
	if err != nil {
		t.Fatalf("expected no error received %v", err)
	}
	return summary, curve
}

func TestNew(t *testing.T) {
	t.Parallel()
	summary, curve := testResults(t)
	if _, err := New(nil, curve); !errors.Is(err, errNothingToReport) {
		t.Errorf("expected %v received %v", errNothingToReport, err)
	}
	if _, err := New(summary, nil); !errors.Is(err, errNothingToReport) {
		t.Errorf("expected %v received %v", errNothingToReport, err)
	}
	if _, err := New(summary, curve); err != nil {
		t.Errorf("expected no error received %v", err)
	}
}

func TestStatsEndpoint(t *testing.T) {
	t.Parallel()
	summary, curve := testResults(t)
	s, err := New(summary, curve)
	if err != nil {
		t.Fatalf("expected no error received %v", err)
	}
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/stats")
	if err != nil {
		t.Fatalf("expected no error received %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %v received %v", http.StatusOK, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected content type application/json received %v", ct)
	}
	var got statistics.Summary
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("expected no error received %v", err)
	}
	if got.TradingDays != 3 {
		t.Errorf("expected 3 trading days received %v", got.TradingDays)
	}
	if !got.FinalEquity.Equal(decimal.NewFromInt(99500)) {
		t.Errorf("expected final equity 99500 received %v", got.FinalEquity)
	}
}

func TestEquityEndpoint(t *testing.T) {
	t.Parallel()
	summary, curve := testResults(t)
	s, err := New(summary, curve)
	if err != nil {
		t.Fatalf("expected no error received %v", err)
	}
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/equity")
	if err != nil {
		t.Fatalf("expected no error received %v", err)
	}
	defer resp.Body.Close()
	var got []ledger.EquityPoint
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("expected no error received %v", err)
	}
	if len(got) != len(curve) {
		t.Fatalf("expected %v points received %v", len(curve), len(got))
	}
	for i := range got {
		if !got[i].Equity.Equal(curve[i].Equity) {
			t.Errorf("expected equity %v received %v", curve[i].Equity, got[i].Equity)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()
	summary, curve := testResults(t)
	s, err := New(summary, curve)
	if err != nil {
		t.Fatalf("expected no error received %v", err)
	}
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/stats", "application/json", nil)
	if err != nil {
		t.Fatalf("expected no error received %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected status %v received %v", http.StatusMethodNotAllowed, resp.StatusCode)
	}
}
