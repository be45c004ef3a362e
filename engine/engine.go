// Package engine orchestrates a backtest run: one pass over the business
// days in the run window, driving the rebalance pipeline on scheduled days
// and marking the ledger to market on every day so the equity curve keeps
// daily granularity between rebalances
package engine

import (
	"fmt"
	"time"

	"github.com/quantfolio/backtester/calendar"
	"github.com/quantfolio/backtester/common"
	"github.com/quantfolio/backtester/exchange"
	"github.com/quantfolio/backtester/log"
	"github.com/quantfolio/backtester/rebalance"
)

// New wires a backtest over [start, end] with the supplied cadence policy
// and collaborators. The rebalance schedule is generated once up front
func New(
	start, end time.Time,
	policy rebalance.Policy,
	preMarket bool,
	bt BackTest,
) (*BackTest, error) {
	if bt.Strategy == nil || bt.Constructor == nil || bt.Risk == nil ||
		bt.Exchange == nil || bt.Ledger == nil || bt.Data == nil {
		return nil, errNilHandler
	}
	days, err := calendar.BusinessDays(start, end)
	if err != nil {
		return nil, err
	}
	stamps, err := rebalance.Generate(start, end, policy, preMarket)
	if err != nil {
		return nil, err
	}
	bt.days = days
	bt.rebalances = make(map[time.Time]time.Time, len(stamps))
	for i := range stamps {
		bt.rebalances[common.DateOf(stamps[i])] = stamps[i]
	}
	bt.state = NotStarted
	return &bt, nil
}

// State returns the run's lifecycle state
func (bt *BackTest) State() State {
	return bt.state
}

// SkippedOrders returns every trade suppressed during the run
func (bt *BackTest) SkippedOrders() []exchange.SkippedOrder {
	out := make([]exchange.SkippedOrder, len(bt.skipped))
	copy(out, bt.skipped)
	return out
}

// Run executes the simulation. On failure the engine transitions to Aborted
// and returns the error with the triggering date attached; ledger state up
// to the last successful day remains inspectable
func (bt *BackTest) Run() error {
	if bt.state != NotStarted {
		return errAlreadyRun
	}
	bt.state = Running
	log.Infof(log.Engine, "starting run over %v business day(s), %v scheduled rebalance(s)",
		len(bt.days), len(bt.rebalances))

	for _, day := range bt.days {
		if err := bt.step(day); err != nil {
			bt.state = Aborted
			return fmt.Errorf("%v: %w", day.Format(common.DateFormat), err)
		}
	}
	bt.state = Completed
	log.Infof(log.Engine, "run completed, final equity %v", finalEquity(bt))
	return nil
}

func (bt *BackTest) step(day time.Time) error {
	if ts, due := bt.rebalances[day]; due {
		if err := bt.processRebalance(ts); err != nil {
			return err
		}
	}
	_, err := bt.Ledger.MarkToMarket(day, bt.Data)
	return err
}

func (bt *BackTest) processRebalance(ts time.Time) error {
	signals, err := bt.Strategy.SignalsAsOf(ts, bt.Data)
	if err != nil {
		return fmt.Errorf("generating signals: %w", err)
	}
	weights, err := bt.Constructor.Construct(signals)
	if err != nil {
		return fmt.Errorf("constructing target weights: %w", err)
	}
	snap := bt.Ledger.Snapshot()
	adjusted, err := bt.Risk.Adjust(weights, snap.Positions)
	if err != nil {
		return fmt.Errorf("adjusting weights for risk: %w", err)
	}
	fills, skipped, err := bt.Exchange.ExecuteRebalance(ts, adjusted, snap, bt.Data)
	if err != nil {
		return fmt.Errorf("executing rebalance: %w", err)
	}
	bt.skipped = append(bt.skipped, skipped...)
	if len(fills) == 0 {
		return nil
	}
	return bt.Ledger.ApplyFills(fills)
}

func finalEquity(bt *BackTest) string {
	curve := bt.Ledger.EquityCurve()
	if len(curve) == 0 {
		return "n/a"
	}
	return curve[len(curve)-1].Equity.StringFixed(2)
}
