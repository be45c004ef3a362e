// Package rebalance generates the ordered sequence of timestamps on which a
// backtest run recomputes its target portfolio. Generation is deterministic:
// identical inputs always yield an identical sequence, with every timestamp
// normalized to the same market-open or market-close instant in UTC.
package rebalance

import (
	"fmt"
	"strings"
	"time"

	"github.com/quantfolio/backtester/calendar"
	"github.com/quantfolio/backtester/common"
	"github.com/quantfolio/backtester/log"
)

// ParseCadence converts a config string into a Cadence
func ParseCadence(s string) (Cadence, error) {
	switch strings.ToLower(s) {
	case dailyStr:
		return Daily, nil
	case weeklyStr:
		return Weekly, nil
	case endOfMonthStr:
		return EndOfMonth, nil
	case firstOfMonthStr:
		return FirstOfMonth, nil
	case buyAndHoldStr:
		return BuyAndHold, nil
	default:
		return 0, fmt.Errorf("%w: unrecognised cadence %q", common.ErrInvalidCadenceParameter, s)
	}
}

// String implements the stringer interface
func (c Cadence) String() string {
	switch c {
	case Daily:
		return dailyStr
	case Weekly:
		return weeklyStr
	case EndOfMonth:
		return endOfMonthStr
	case FirstOfMonth:
		return firstOfMonthStr
	case BuyAndHold:
		return buyAndHoldStr
	default:
		return "unknown"
	}
}

// Generate produces the ordered, duplicate-free rebalance timestamps for the
// policy within [start, end]. preMarket selects the market-open instant,
// otherwise the market-close instant is used
func Generate(start, end time.Time, p Policy, preMarket bool) ([]time.Time, error) {
	if start.After(end) {
		return nil, fmt.Errorf("%w: %v after %v",
			common.ErrInvalidDateRange,
			start.Format(common.DateFormat),
			end.Format(common.DateFormat))
	}
	var stamps []time.Time
	var err error
	switch p.Cadence {
	case Daily:
		stamps, err = daily(start, end, preMarket)
	case Weekly:
		stamps, err = weekly(start, end, p.Weekday, preMarket)
	case EndOfMonth:
		stamps, err = monthly(start, end, preMarket, calendar.LastBusinessDayOfMonth)
	case FirstOfMonth:
		stamps, err = monthly(start, end, preMarket, calendar.FirstBusinessDayOfMonth)
	case BuyAndHold:
		stamps, err = buyAndHold(start, end, preMarket)
	default:
		return nil, fmt.Errorf("%w: unrecognised cadence variant %d", common.ErrInvalidCadenceParameter, p.Cadence)
	}
	if err != nil {
		return nil, err
	}
	log.Debugf(log.Scheduler, "%v cadence scheduled %v rebalance(s) over %v to %v",
		p.Cadence, len(stamps), start.Format(common.DateFormat), end.Format(common.DateFormat))
	return stamps, nil
}

// buyAndHold schedules the single rebalance on the first business day of
// the window, so a run starting on a weekend still trades
func buyAndHold(start, end time.Time, preMarket bool) ([]time.Time, error) {
	d, e := common.DateOf(start), common.DateOf(end)
	for !common.IsBusinessDay(d) {
		d = d.AddDate(0, 0, 1)
		if d.After(e) {
			return nil, fmt.Errorf("%w: no business day between %v and %v",
				common.ErrInvalidDateRange,
				start.Format(common.DateFormat),
				end.Format(common.DateFormat))
		}
	}
	return []time.Time{calendar.MarketTime(d, preMarket)}, nil
}

func daily(start, end time.Time, preMarket bool) ([]time.Time, error) {
	days, err := calendar.BusinessDays(start, end)
	if err != nil {
		return nil, err
	}
	stamps := make([]time.Time, len(days))
	for i := range days {
		stamps[i] = calendar.MarketTime(days[i], preMarket)
	}
	return stamps, nil
}

func weekly(start, end time.Time, weekday string, preMarket bool) ([]time.Time, error) {
	wd, ok := weekdays[strings.ToUpper(weekday)]
	if !ok {
		return nil, fmt.Errorf("%w: weekday %q is not recognised or not a valid business day",
			common.ErrInvalidCadenceParameter, weekday)
	}
	var stamps []time.Time
	for d := common.DateOf(start); !d.After(common.DateOf(end)); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == wd {
			stamps = append(stamps, calendar.MarketTime(d, preMarket))
		}
	}
	return stamps, nil
}

func monthly(start, end time.Time, preMarket bool, pick func(time.Time) time.Time) ([]time.Time, error) {
	var stamps []time.Time
	s, e := common.DateOf(start), common.DateOf(end)
	for m := time.Date(s.Year(), s.Month(), 1, 0, 0, 0, 0, time.UTC); !m.After(e); m = m.AddDate(0, 1, 0) {
		d := pick(m)
		if d.Before(s) || d.After(e) {
			continue
		}
		stamps = append(stamps, calendar.MarketTime(d, preMarket))
	}
	return stamps, nil
}
