package data

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/quantfolio/backtester/common"
)

func bar(day int, close float64) Bar {
	return Bar{
		Date:   time.Date(2023, 1, day, 0, 0, 0, 0, time.UTC),
		Open:   decimal.NewFromFloat(close - 1),
		High:   decimal.NewFromFloat(close + 2),
		Low:    decimal.NewFromFloat(close - 2),
		Close:  decimal.NewFromFloat(close),
		Volume: decimal.NewFromInt(1000),
	}
}

func TestPrice(t *testing.T) {
	t.Parallel()
	s := NewSnapshot()
	s.AddBar("SPY", bar(3, 380))
	s.AddBar("SPY", bar(4, 382))

	p, err := s.Price("SPY", time.Date(2023, 1, 4, 21, 0, 0, 0, time.UTC), Close)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Equal(decimal.NewFromInt(382)) {
		t.Errorf("expected %v received %v", 382, p)
	}

	p, err = s.Price("SPY", time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), Open)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Equal(decimal.NewFromInt(379)) {
		t.Errorf("expected %v received %v", 379, p)
	}

	_, err = s.Price("SPY", time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), Close)
	if !errors.Is(err, common.ErrMissingPriceData) {
		t.Errorf("expected %v received %v", common.ErrMissingPriceData, err)
	}
	_, err = s.Price("AGG", time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), Close)
	if !errors.Is(err, common.ErrMissingPriceData) {
		t.Errorf("expected %v received %v", common.ErrMissingPriceData, err)
	}
}

func TestHistory(t *testing.T) {
	t.Parallel()
	s := NewSnapshot()
	for i, d := range []int{3, 4, 5, 6, 9} {
		s.AddBar("SPY", bar(d, 380+float64(i)))
	}

	h, err := s.History("SPY", time.Date(2023, 1, 6, 0, 0, 0, 0, time.UTC), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(h) != 3 {
		t.Fatalf("expected %v received %v", 3, len(h))
	}
	if h[0].Date.Day() != 4 || h[2].Date.Day() != 6 {
		t.Errorf("unexpected window %v to %v", h[0].Date, h[2].Date)
	}

	// more bars requested than available
	h, err = s.History("SPY", time.Date(2023, 1, 4, 0, 0, 0, 0, time.UTC), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(h) != 2 {
		t.Errorf("expected %v received %v", 2, len(h))
	}

	_, err = s.History("AGG", time.Date(2023, 1, 4, 0, 0, 0, 0, time.UTC), 1)
	if !errors.Is(err, common.ErrMissingPriceData) {
		t.Errorf("expected %v received %v", common.ErrMissingPriceData, err)
	}
}

func TestAddBarReplaces(t *testing.T) {
	t.Parallel()
	s := NewSnapshot()
	s.AddBar("SPY", bar(3, 380))
	s.AddBar("SPY", bar(3, 400))
	p, err := s.Price("SPY", time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), Close)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected %v received %v", 400, p)
	}
	h, err := s.History("SPY", time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(h) != 1 {
		t.Errorf("expected %v received %v", 1, len(h))
	}
}

func TestSymbols(t *testing.T) {
	t.Parallel()
	s := NewSnapshot()
	s.AddBar("SPY", bar(3, 380))
	s.AddBar("AGG", bar(3, 98))
	symbols := s.Symbols()
	if len(symbols) != 2 || symbols[0] != "AGG" || symbols[1] != "SPY" {
		t.Errorf("unexpected symbols %v", symbols)
	}
}
