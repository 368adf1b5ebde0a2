package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	e "github.com/eximware/erp-data-api/errors"
)

const (
	dayFormat       = "2006-01-02"
	timestampFormat = "2006-01-02 15:04:05"
)

// DateSpan is the normalized form of a date-valued filter input: a
// half-open period [Start, End) in the reference location. Day-granular
// inputs ("today", "15-08-2025") yield 24h spans; "this week" and
// "this month" yield the full period.
type DateSpan struct {
	Start time.Time
	End   time.Time
}

func (s DateSpan) StartDate() string {
	return s.Start.Format(dayFormat)
}

// LastDate is the final calendar day inside the span, for inclusive
// date-truncated comparisons.
func (s DateSpan) LastDate() string {
	return s.End.AddDate(0, 0, -1).Format(dayFormat)
}

func (s DateSpan) StartTimestamp() string {
	return s.Start.Format(timestampFormat)
}

func (s DateSpan) EndTimestamp() string {
	return s.End.Format(timestampFormat)
}

func (s DateSpan) SingleDay() bool {
	return s.End.Equal(s.Start.AddDate(0, 0, 1))
}

var relativeDateExpr = regexp.MustCompile(`^(\d+)\s+(day|week|month)s?\s+ago$`)

// Literal formats accepted for date values, tried in order. Ambiguous
// inputs like "05-06-2025" resolve by the first matching layout
// (day-month-year).
var literalDateLayouts = []string{
	"02-01-2006",
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"01-02-2006",
	"01/02/2006",
}

// ResolveDateSpan normalizes a raw filter value targeting a date-classified
// field. It accepts the symbolic vocabulary (today, yesterday, tomorrow,
// this week, last week, this month, "<n> days|weeks|months ago") and the
// literal layouts above. Anything else is an UnparsableDateError; the
// engine never guesses.
func ResolveDateSpan(raw interface{}, now time.Time) (DateSpan, error) {
	str, ok := raw.(string)
	if !ok {
		return DateSpan{}, e.NewUnparsableDateError(fmt.Sprintf("%v", raw))
	}

	trimmed := strings.TrimSpace(str)
	value := strings.ToLower(trimmed)
	today := startOfDay(now)

	switch value {
	case "today":
		return daySpan(today), nil
	case "yesterday":
		return daySpan(today.AddDate(0, 0, -1)), nil
	case "tomorrow":
		return daySpan(today.AddDate(0, 0, 1)), nil
	case "this week":
		start := startOfWeek(today)
		return DateSpan{Start: start, End: start.AddDate(0, 0, 7)}, nil
	case "last week":
		start := startOfWeek(today).AddDate(0, 0, -7)
		return DateSpan{Start: start, End: start.AddDate(0, 0, 7)}, nil
	case "this month":
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return DateSpan{Start: start, End: start.AddDate(0, 1, 0)}, nil
	}

	if match := relativeDateExpr.FindStringSubmatch(value); match != nil {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			return DateSpan{}, e.NewUnparsableDateError(str)
		}
		switch match[2] {
		case "day":
			return daySpan(today.AddDate(0, 0, -n)), nil
		case "week":
			return daySpan(today.AddDate(0, 0, -7*n)), nil
		case "month":
			// Months step back in 30-day increments. This is an approximation,
			// not calendar arithmetic.
			return daySpan(today.AddDate(0, 0, -30*n)), nil
		}
	}

	for _, layout := range literalDateLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, now.Location()); err == nil {
			return daySpan(parsed), nil
		}
	}

	return DateSpan{}, e.NewUnparsableDateError(str)
}

func daySpan(day time.Time) DateSpan {
	return DateSpan{Start: day, End: day.AddDate(0, 0, 1)}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek anchors weeks on Monday.
func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
