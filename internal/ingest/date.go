package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

const minYear = 1900

type fieldOrder int

const (
	orderYMD fieldOrder = iota
	orderDMY
)

type datePattern struct {
	re    *regexp.Regexp
	order fieldOrder
}

// datePatterns are tried in order and the first valid match wins. Day/month
// strings are always read day first: there is no locale input, so 03/04/2024
// is 3 April.
var datePatterns = []datePattern{
	{regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`), orderYMD},
	{regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`), orderDMY},
	{regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`), orderDMY},
	{regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`), orderDMY},
	{regexp.MustCompile(`^(\d{4})/(\d{2})/(\d{2})$`), orderYMD},
}

// fallbackLayouts cover exports that carry a time or a month name.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02.01.2006",
	"2006.01.02",
	"02-Jan-2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC1123,
}

// NormalizeDate converts a date literal to YYYY-MM-DD. It reports false when
// the literal is not a real calendar date from 1900 onwards.
func NormalizeDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}

		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		c, _ := strconv.Atoi(m[3])

		year, month, day := a, b, c
		if p.order == orderDMY {
			year, month, day = c, b, a
		}

		if iso, ok := calendarDate(year, month, day); ok {
			return iso, true
		}
	}

	if strings.Contains(s, "/") {
		return slashDate(s)
	}

	for _, layout := range fallbackLayouts {
		t, err := time.Parse(layout, s)
		if err == nil && t.Year() >= minYear {
			return t.Format(transaction.DateLayout), true
		}
	}

	return "", false
}

// slashDate reads any three slash-separated numbers as day/month/year.
func slashDate(s string) (string, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return "", false
	}

	var nums [3]int

	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return "", false
		}

		nums[i] = n
	}

	return calendarDate(nums[2], nums[1], nums[0])
}

// calendarDate validates ranges and rejects dates that do not survive a
// round trip through time.Date (31 April, 29 February in common years).
func calendarDate(year, month, day int) (string, bool) {
	if year < minYear || month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}

	return t.Format(transaction.DateLayout), true
}
