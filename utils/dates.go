package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateFragment matches every date encoding seen on DD-214s and VA letters.
// It has no capture groups so it can be embedded in larger patterns.
const DateFragment = `(?:\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}|\d{4}\s?\d{2}\s?\d{2}|\d{1,2}\s+[A-Za-z]{3,9}\.?\s+\d{2,4}|[A-Za-z]{3,9}\.?\s+\d{1,2},?\s+\d{4})`

// YearPivot splits two-digit years: below it is 20xx, at or above it is 19xx.
const YearPivot = 50

const isoDate = "2006-01-02"

var (
	reMDY       = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`)
	reYMD       = regexp.MustCompile(`^(\d{4})\s?(\d{2})\s?(\d{2})$`)
	reDayMonY   = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,9})\.?\s+(\d{2}|\d{4})$`)
	reMonDayY   = regexp.MustCompile(`^([A-Za-z]{3,9})\.?\s+(\d{1,2}),?\s+(\d{4})$`)
	monthPrefix = map[string]time.Month{
		"jan": time.January, "feb": time.February, "mar": time.March,
		"apr": time.April, "may": time.May, "jun": time.June,
		"jul": time.July, "aug": time.August, "sep": time.September,
		"oct": time.October, "nov": time.November, "dec": time.December,
	}
)

// ParseDate accepts MM/DD/YYYY (also '-' or '.' separated, two-digit years),
// YYYYMMDD with optional spaces, DD MON YYYY and Month D, YYYY.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	numeric := strings.NewReplacer("-", "/", ".", "/").Replace(s)
	if m := reMDY.FindStringSubmatch(numeric); m != nil {
		return buildDate(expandYear(m[3]), atoi(m[1]), atoi(m[2]))
	}
	if m := reYMD.FindStringSubmatch(s); m != nil {
		return buildDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := reDayMonY.FindStringSubmatch(s); m != nil {
		month, ok := lookupMonth(m[2])
		if !ok {
			return time.Time{}, false
		}
		return buildDate(expandYear(m[3]), int(month), atoi(m[1]))
	}
	if m := reMonDayY.FindStringSubmatch(s); m != nil {
		month, ok := lookupMonth(m[1])
		if !ok {
			return time.Time{}, false
		}
		return buildDate(atoi(m[3]), int(month), atoi(m[2]))
	}
	return time.Time{}, false
}

// NormalizeDate returns s as YYYY-MM-DD, or "" when it is not a date.
func NormalizeDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return t.Format(isoDate)
}

func expandYear(y string) int {
	n := atoi(y)
	if len(y) == 2 {
		if n < YearPivot {
			return 2000 + n
		}
		return 1900 + n
	}
	return n
}

func lookupMonth(name string) (time.Month, bool) {
	if len(name) < 3 {
		return 0, false
	}
	m, ok := monthPrefix[strings.ToLower(name[:3])]
	return m, ok
}

// buildDate rejects values time.Date would silently roll over (e.g. Feb 30).
func buildDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1900 || year > 2100 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
