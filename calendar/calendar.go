// Package calendar provides business-day enumeration and market clock
// resolution for daily simulations. Weekends are excluded; regional market
// holidays are not modelled. The market open and close instants are fixed
// UTC offsets (14:30 and 21:00) and deliberately do not track the exchange's
// daylight-saving shifts, so simulated times deviate from true local market
// time for part of the year.
package calendar

import (
	"fmt"
	"time"

	"github.com/quantfolio/backtester/common"
)

const (
	// MarketOpenHour is the exchange opening hour in UTC
	MarketOpenHour = 14
	// MarketOpenMinute is the exchange opening minute in UTC
	MarketOpenMinute = 30
	// MarketCloseHour is the exchange closing hour in UTC
	MarketCloseHour = 21
)

// BusinessDays enumerates every Monday-Friday calendar day in [start, end]
// inclusive, normalized to midnight UTC
func BusinessDays(start, end time.Time) ([]time.Time, error) {
	if start.After(end) {
		return nil, fmt.Errorf("%w: %v after %v",
			common.ErrInvalidDateRange,
			start.Format(common.DateFormat),
			end.Format(common.DateFormat))
	}
	var days []time.Time
	for d := common.DateOf(start); !d.After(common.DateOf(end)); d = d.AddDate(0, 0, 1) {
		if common.IsBusinessDay(d) {
			days = append(days, d)
		}
	}
	return days, nil
}

// MarketTime resolves a calendar day to the market-open or market-close
// instant in UTC
func MarketTime(day time.Time, preMarket bool) time.Time {
	d := common.DateOf(day)
	if preMarket {
		return d.Add(MarketOpenHour*time.Hour + MarketOpenMinute*time.Minute)
	}
	return d.Add(MarketCloseHour * time.Hour)
}

// LastBusinessDayOfMonth returns the final Monday-Friday day of the month
// containing day
func LastBusinessDayOfMonth(day time.Time) time.Time {
	d := common.DateOf(day)
	eom := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
	for !common.IsBusinessDay(eom) {
		eom = eom.AddDate(0, 0, -1)
	}
	return eom
}

// FirstBusinessDayOfMonth returns the first Monday-Friday day of the month
// containing day
func FirstBusinessDayOfMonth(day time.Time) time.Time {
	d := common.DateOf(day)
	som := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !common.IsBusinessDay(som) {
		som = som.AddDate(0, 0, 1)
	}
	return som
}
