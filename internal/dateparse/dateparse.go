// Package dateparse converts the date shapes found in consular documents
// into canonical ISO dates.
package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/amondji/docextract/internal/textnorm"
)

// Context disambiguates two-digit years. Birth dates lie in the past,
// expiry dates mostly in the near future.
type Context int

const (
	ContextAuto Context = iota
	ContextBirth
	ContextExpiry
)

// expiryHorizonYears bounds how far ahead an expiry date may plausibly be.
const expiryHorizonYears = 15

var months = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
	"JANUARY": 1, "FEBRUARY": 2, "MARCH": 3, "APRIL": 4, "JUNE": 6,
	"JULY": 7, "AUGUST": 8, "SEPTEMBER": 9, "OCTOBER": 10,
	"NOVEMBER": 11, "DECEMBER": 12,
	"JANVIER": 1, "JANV": 1, "FEVRIER": 2, "FEV": 2, "MARS": 3,
	"AVRIL": 4, "AVR": 4, "MAI": 5, "JUIN": 6, "JUILLET": 7, "JUIL": 7,
	"AOUT": 8, "SEPTEMBRE": 9, "SEPT": 9, "OCTOBRE": 10,
	"NOVEMBRE": 11, "DECEMBRE": 12,
}

// monthAlt lists month tokens longest-first so the regexp engine prefers
// full names over their abbreviations.
const monthAlt = `SEPTEMBRE|NOVEMBRE|DECEMBRE|FEBRUARY|NOVEMBER|DECEMBER|SEPTEMBER|JANVIER|FEVRIER|JUILLET|OCTOBRE|JANUARY|OCTOBER|AUGUST|AVRIL|MARCH|APRIL|JUIN|JUIL|JANV|SEPT|AOUT|MARS|JUNE|JULY|JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC|FEV|AVR|MAI`

var (
	reNumericDMY = regexp.MustCompile(`(\d{2})[/.\-](\d{2})[/.\-](\d{4})`)
	reNumericYMD = regexp.MustCompile(`(\d{4})[/.\-](\d{2})[/.\-](\d{2})`)
	reYYMMDD     = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})$`)
	reDayNameY4  = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(` + monthAlt + `)[A-Z]*\.?\s+(\d{4})`)
	reNameDayY4  = regexp.MustCompile(`(?i)\b(` + monthAlt + `)[A-Z]*\.?\s+(\d{1,2}),?\s+(\d{4})`)
	reDayNameY2  = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(` + monthAlt + `)[A-Z]*\.?\s+(\d{2})\b`)
)

// Parse tries each recognized date shape in order and returns the first
// calendar-valid ISO date. The boolean is false when nothing matched;
// callers treat that as "field not extracted".
func Parse(text string, ctx Context, now time.Time) (string, bool) {
	text = textnorm.StripAccents(strings.TrimSpace(text))

	if m := reNumericDMY.FindStringSubmatch(text); m != nil {
		if iso, ok := isoDate(atoi(m[3]), atoi(m[2]), atoi(m[1])); ok {
			return iso, true
		}
	}
	if m := reNumericYMD.FindStringSubmatch(text); m != nil {
		if iso, ok := isoDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
			return iso, true
		}
	}
	if m := reYYMMDD.FindStringSubmatch(text); m != nil {
		year := resolveYear(atoi(m[1]), atoi(m[2]), atoi(m[3]), ctx, now)
		if iso, ok := isoDate(year, atoi(m[2]), atoi(m[3])); ok {
			return iso, true
		}
	}
	if m := reDayNameY4.FindStringSubmatch(text); m != nil {
		if iso, ok := isoDate(atoi(m[3]), monthNumber(m[2]), atoi(m[1])); ok {
			return iso, true
		}
	}
	if m := reNameDayY4.FindStringSubmatch(text); m != nil {
		if iso, ok := isoDate(atoi(m[3]), monthNumber(m[1]), atoi(m[2])); ok {
			return iso, true
		}
	}
	if m := reDayNameY2.FindStringSubmatch(text); m != nil {
		month := monthNumber(m[2])
		year := resolveYear(atoi(m[3]), month, atoi(m[1]), ctx, now)
		if iso, ok := isoDate(year, month, atoi(m[1])); ok {
			return iso, true
		}
	}
	return "", false
}

// ParseYYMMDD resolves a bare six-digit MRZ date.
func ParseYYMMDD(s string, ctx Context, now time.Time) (string, bool) {
	m := reYYMMDD.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	year := resolveYear(atoi(m[1]), atoi(m[2]), atoi(m[3]), ctx, now)
	return isoDate(year, atoi(m[2]), atoi(m[3]))
}

// resolveYear maps a two-digit year onto a century.
//
// Birth dates cannot be in the future: try the 2000s first and fall back a
// century when that overshoots "now". Expiry dates sit in the 2000s unless
// that lands more than the horizon beyond "now" (long-expired documents do
// turn up). Auto uses a sliding pivot of max(30, current two-digit year + 10).
func resolveYear(yy, month, day int, ctx Context, now time.Time) int {
	switch ctx {
	case ContextBirth:
		year := 2000 + yy
		if time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).After(now) {
			year -= 100
		}
		return year
	case ContextExpiry:
		year := 2000 + yy
		horizon := now.AddDate(expiryHorizonYears, 0, 0)
		if time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).After(horizon) {
			year -= 100
		}
		return year
	default:
		pivot := now.Year() % 100 + 10
		if pivot < 30 {
			pivot = 30
		}
		if yy > pivot {
			return 1900 + yy
		}
		return 2000 + yy
	}
}

// isoDate formats the components, rejecting impossible calendar dates.
func isoDate(year, month, day int) (string, bool) {
	if year < 1000 || month < 1 || month > 12 || day < 1 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

func monthNumber(token string) int {
	key := textnorm.StripAccents(strings.ToUpper(token))
	if n, ok := months[key]; ok {
		return n
	}
	if len(key) > 3 {
		if n, ok := months[key[:3]]; ok {
			return n
		}
	}
	return 0
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
