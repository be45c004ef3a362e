package smacross

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/backtester/common"
	"github.com/quantfolio/backtester/data"
)

func snapshotWithCloses(symbol string, closes []float64) *data.Snapshot {
	snap := data.NewSnapshot()
	d := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	for _, c := range closes {
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, 1)
		}
		snap.AddBar(symbol, data.Bar{
			Date:   d,
			Open:   decimal.NewFromFloat(c),
			High:   decimal.NewFromFloat(c + 1),
			Low:    decimal.NewFromFloat(c - 1),
			Close:  decimal.NewFromFloat(c),
			Volume: decimal.NewFromInt(1000),
		})
		d = d.AddDate(0, 0, 1)
	}
	return snap
}

func TestSignalsAsOf(t *testing.T) {
	t.Parallel()
	// close rising well above its average
	snap := snapshotWithCloses("SPY", []float64{100, 100, 100, 100, 100, 100, 100, 100, 120, 150})
	s, err := New([]string{"SPY"}, 5)
	if err != nil {
		t.Fatal(err)
	}
	asOf := time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)
	signals, err := s.SignalsAsOf(asOf, snap)
	if err != nil {
		t.Fatal(err)
	}
	if !signals["SPY"].Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected %v received %v", 1, signals["SPY"])
	}

	// close collapsing below its average
	snap = snapshotWithCloses("SPY", []float64{150, 150, 150, 150, 150, 150, 150, 150, 120, 90})
	signals, err = s.SignalsAsOf(asOf, snap)
	if err != nil {
		t.Fatal(err)
	}
	if !signals["SPY"].IsZero() {
		t.Errorf("expected %v received %v", 0, signals["SPY"])
	}
}

func TestSignalsAsOfInsufficientHistory(t *testing.T) {
	t.Parallel()
	snap := snapshotWithCloses("SPY", []float64{100, 101})
	s, err := New([]string{"SPY"}, 5)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.SignalsAsOf(time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), snap)
	if !errors.Is(err, common.ErrInsufficientHistory) {
		t.Errorf("expected %v received %v", common.ErrInsufficientHistory, err)
	}
}
