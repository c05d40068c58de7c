package view

import (
	"time"

	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

type Timeframe int

const (
	TimeframeAll Timeframe = iota
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeThisYear
)

var timeframes = []Timeframe{TimeframeAll, TimeframeThisMonth, TimeframeLastMonth, TimeframeThisYear}

func (t Timeframe) String() string {
	switch t {
	case TimeframeAll:
		return "All Time"
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeThisYear:
		return "This Year"
	}

	return "Unknown"
}

// Next cycles through the timeframes.
func (t Timeframe) Next() Timeframe {
	return timeframes[(int(t)+1)%len(timeframes)]
}

// DateRange returns inclusive YYYY-MM-DD bounds for t relative to now, or
// nils for TimeframeAll.
func (t Timeframe) DateRange(now time.Time) (*string, *string) {
	var start, end time.Time

	switch t {
	case TimeframeThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, -1)
	case TimeframeLastMonth:
		start = time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, -1)
	case TimeframeThisYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end = time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
	default:
		return nil, nil
	}

	s, e := start.Format(transaction.DateLayout), end.Format(transaction.DateLayout)

	return &s, &e
}
