package fixedsignals

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSignalsAsOf(t *testing.T) {
	t.Parallel()
	s, err := New(map[string]decimal.Decimal{
		"SPY": decimal.NewFromFloat(0.6),
		"AGG": decimal.NewFromFloat(0.4),
	})
	if err != nil {
		t.Fatal(err)
	}
	signals, err := s.SignalsAsOf(time.Now(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !signals["SPY"].Equal(decimal.NewFromFloat(0.6)) {
		t.Errorf("expected %v received %v", 0.6, signals["SPY"])
	}

	// callers must not be able to mutate the strategy's config
	signals["SPY"] = decimal.Zero
	again, err := s.SignalsAsOf(time.Now(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !again["SPY"].Equal(decimal.NewFromFloat(0.6)) {
		t.Error("signal map mutation leaked into strategy")
	}
}

func TestNewEmpty(t *testing.T) {
	t.Parallel()
	if _, err := New(nil); err == nil {
		t.Error("expected error for empty signals")
	}
}
