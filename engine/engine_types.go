package engine

import (
	"errors"
	"time"

	"github.com/quantfolio/backtester/data"
	"github.com/quantfolio/backtester/exchange"
	"github.com/quantfolio/backtester/ledger"
	"github.com/quantfolio/backtester/portfolio"
	"github.com/quantfolio/backtester/risk"
	"github.com/quantfolio/backtester/strategy"
)

// State tracks a backtest run's lifecycle
type State uint8

const (
	// NotStarted is the state before Run is called
	NotStarted State = iota
	// Running is the state while the day loop is in progress
	Running
	// Completed is the terminal state of a successful run
	Completed
	// Aborted is the terminal state reached when a day cannot be processed
	Aborted
)

// String implements the stringer interface
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

var (
	errAlreadyRun = errors.New("backtest has already been run")
	errNilHandler = errors.New("backtest requires every collaborator to be set")
)

// BackTest drives the daily simulation. It owns the ledger exclusively for
// the duration of the run and holds no business logic beyond sequencing and
// error propagation
type BackTest struct {
	Strategy    strategy.Handler
	Constructor portfolio.Constructor
	Risk        risk.Handler
	Exchange    *exchange.Exchange
	Ledger      *ledger.Ledger
	Data        data.Handler

	days       []time.Time
	rebalances map[time.Time]time.Time
	state      State
	skipped    []exchange.SkippedOrder
}
