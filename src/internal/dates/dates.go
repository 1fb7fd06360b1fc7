package dates

import (
	"fmt"
	"strings"
	"time"
)

// Precision says how much of a parsed date was actually present in the input.
type Precision int

const (
	PrecisionYear Precision = iota + 1
	PrecisionMonth
	PrecisionDay
)

// Date is a parsed calendar date, always in UTC.
type Date struct {
	Time      time.Time
	Precision Precision
}

var layouts = []struct {
	layout string
	prec   Precision
}{
	{time.RFC3339Nano, PrecisionDay},
	{time.RFC3339, PrecisionDay},
	{"2006-01-02T15:04:05", PrecisionDay},
	{"2006-01-02T15:04", PrecisionDay},
	{"2006-01-02 15:04:05", PrecisionDay},
	{"2006-01-02T15:04:05Z0700", PrecisionDay},
	{"2006-01-02", PrecisionDay},
	{"2006/01/02", PrecisionDay},
	{time.RFC1123Z, PrecisionDay},
	{time.RFC1123, PrecisionDay},
	{"January 2, 2006", PrecisionDay},
	{"Jan 2, 2006", PrecisionDay},
	{"2 January 2006", PrecisionDay},
	{"2006-01", PrecisionMonth},
	{"January 2006", PrecisionMonth},
	{"2006", PrecisionYear},
}

// Parse reads an ISO-like date string. Offsets are honoured and the result is
// converted to UTC, so "2020-12-31T23:00:00-05:00" lands in 2021.
func Parse(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	for _, l := range layouts {
		if t, err := time.Parse(l.layout, s); err == nil {
			return Date{Time: t.UTC(), Precision: l.prec}, true
		}
	}
	return Date{}, false
}

// Year returns the UTC calendar year of a date string; malformed input is absent.
func Year(s string) (int, bool) {
	d, ok := Parse(s)
	if !ok {
		return 0, false
	}
	return d.Time.Year(), true
}

// APA renders the parenthetical date body: "2021", "2021, March" or "2021, March 15".
func APA(d Date) string {
	t := d.Time
	switch d.Precision {
	case PrecisionDay:
		return fmt.Sprintf("%d, %s %d", t.Year(), t.Month(), t.Day())
	case PrecisionMonth:
		return fmt.Sprintf("%d, %s", t.Year(), t.Month())
	default:
		return fmt.Sprintf("%d", t.Year())
	}
}

// maxYear bounds ExtractYear so the result does not depend on the clock.
const maxYear = 2100

// ExtractYear scans a string and returns a plausible 4-digit year if found.
func ExtractYear(s string) int {
	s = strings.TrimSpace(s)
	for i := 0; i+4 <= len(s); i++ {
		if !isDigits(s[i : i+4]) {
			continue
		}
		if i > 0 && isDigits(s[i-1:i]) {
			continue
		}
		var y int
		if _, err := fmt.Sscanf(s[i:i+4], "%d", &y); err == nil {
			if y >= 1000 && y <= maxYear {
				return y
			}
		}
	}
	return 0
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
