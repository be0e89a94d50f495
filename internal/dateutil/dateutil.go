// Package dateutil normalizes the date shapes the form can produce and
// computes trip-day spans. Parse failures degrade to empty strings or zero
// counts; nothing in this package panics or returns an error.
package dateutil

import (
	"fmt"
	"math"
	"strings"
	"time"
)

var weekdayKanji = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// Normalize converts a date value to the canonical YYYY/MM/DD display form.
// It accepts a time.Time, an ISO-like or slash-delimited string, or an epoch
// value in milliseconds. A string already containing "/" passes through
// unchanged. Unparseable input yields "".
func Normalize(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case time.Time:
		if d.IsZero() {
			return ""
		}
		return d.Format("2006/01/02")
	case string:
		return normalizeString(d)
	case int:
		return fromEpochMillis(int64(d))
	case int64:
		return fromEpochMillis(d)
	case float64:
		return fromEpochMillis(int64(d))
	default:
		return normalizeString(fmt.Sprint(v))
	}
}

func normalizeString(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// Truncate a time component, then swap ISO dashes for slashes.
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, "-", "/")
}

func fromEpochMillis(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).Format("2006/01/02")
}

// WithWeekday formats a date as YYYY/MM/DD(曜) for document rendering. Input
// that cannot be parsed comes back normalized but without a weekday suffix;
// already-suffixed strings pass through unchanged.
func WithWeekday(v any) string {
	if s, ok := v.(string); ok && strings.Contains(s, "(") {
		return s
	}
	if t, ok := v.(time.Time); ok {
		if t.IsZero() {
			return ""
		}
		return fmt.Sprintf("%s(%s)", t.Format("2006/01/02"), weekdayKanji[int(t.Weekday())])
	}
	normalized := Normalize(v)
	t, ok := parse(normalized)
	if !ok {
		return normalized
	}
	return fmt.Sprintf("%s(%s)", t.Format("2006/01/02"), weekdayKanji[int(t.Weekday())])
}

// TripDays returns the inclusive day count of the trip: ceil of the span plus
// one, never less than 1 when both dates parse (a same-day trip is one day).
// A missing or unparseable date yields 0.
func TripDays(departure, ret string) int {
	d, r, ok := parsePair(departure, ret)
	if !ok {
		return 0
	}
	diff := int(math.Ceil(r.Sub(d).Hours() / 24))
	if diff+1 < 1 {
		return 1
	}
	return diff + 1
}

// LodgingNights returns the number of nights: one less than the trip days,
// floored at zero.
func LodgingNights(departure, ret string) int {
	d, r, ok := parsePair(departure, ret)
	if !ok {
		return 0
	}
	nights := int(math.Floor(r.Sub(d).Hours() / 24))
	if nights < 0 {
		return 0
	}
	return nights
}

func parsePair(departure, ret string) (time.Time, time.Time, bool) {
	if departure == "" || ret == "" {
		return time.Time{}, time.Time{}, false
	}
	d, ok := parse(Normalize(departure))
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	r, ok := parse(Normalize(ret))
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return d, r, true
}

func parse(s string) (time.Time, bool) {
	for _, layout := range []string{"2006/01/02", "2006/1/2"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
