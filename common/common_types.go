package common

import "errors"

var (
	// ErrInvalidDateRange occurs when a start date is after its end date
	ErrInvalidDateRange = errors.New("start date cannot be after end date")
	// ErrInvalidCadenceParameter occurs when a rebalance cadence is malformed
	ErrInvalidCadenceParameter = errors.New("invalid cadence parameter")
	// ErrMissingPriceData occurs when a price is unavailable for a symbol on a
	// date where it is required for valuation or execution
	ErrMissingPriceData = errors.New("missing price data")
	// ErrLedgerConsistency occurs when a ledger invariant is violated,
	// indicating a programming defect rather than bad input
	ErrLedgerConsistency = errors.New("ledger consistency violation")
	// ErrNilArguments occurs when a required argument is nil
	ErrNilArguments = errors.New("received nil argument(s)")
	// ErrInsufficientHistory occurs when a strategy requires more bars than
	// the feed can supply as of the requested date
	ErrInsufficientHistory = errors.New("insufficient price history")
)

// SimpleTimeFormat is the format used when rendering simulation timestamps
const SimpleTimeFormat = "2006-01-02 15:04:05"

// DateFormat is the format used for calendar dates in configs and data files
const DateFormat = "2006-01-02"
