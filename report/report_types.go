package report

import (
	"errors"
	"net/http"
	"time"

	"github.com/quantfolio/backtester/ledger"
	"github.com/quantfolio/backtester/statistics"
)

var errNothingToReport = errors.New("report requires a summary and an equity curve")

// Server exposes a finished run's results over HTTP
type Server struct {
	summary *statistics.Summary
	curve   []ledger.EquityPoint
	http    *http.Server
}

const shutdownTimeout = 5 * time.Second
