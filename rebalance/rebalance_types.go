package rebalance

import "time"

// Cadence defines how frequently a portfolio rebalance is scheduled
type Cadence uint8

const (
	// Daily schedules a rebalance on every business day in range
	Daily Cadence = iota
	// Weekly schedules a rebalance once per week on a configured weekday
	Weekly
	// EndOfMonth schedules a rebalance on the last business day of each month
	EndOfMonth
	// FirstOfMonth schedules a rebalance on the first business day of each month
	FirstOfMonth
	// BuyAndHold schedules a single rebalance at the start of the range
	BuyAndHold
)

const (
	dailyStr        = "daily"
	weeklyStr       = "weekly"
	endOfMonthStr   = "end_of_month"
	firstOfMonthStr = "first_of_month"
	buyAndHoldStr   = "buy_and_hold"
)

// Policy holds a cadence along with any cadence-specific parameters
type Policy struct {
	Cadence Cadence
	// Weekday is the three-letter business day abbreviation used by the
	// Weekly cadence, eg "FRI". Ignored by all other cadences
	Weekday string
}

var weekdays = map[string]time.Weekday{
	"MON": time.Monday,
	"TUE": time.Tuesday,
	"WED": time.Wednesday,
	"THU": time.Thursday,
	"FRI": time.Friday,
}
