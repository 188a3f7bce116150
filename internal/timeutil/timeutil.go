// FilePath: internal/timeutil/timeutil.go

// Package timeutil holds the zone-aware date helpers the reporting layer
// depends on. All bucketing math goes through *time.Location values so zones
// with non-integer or DST-varying offsets stay correct; raw Unix arithmetic
// is never used for local-day or local-hour boundaries.
package timeutil

import (
	"math"
	"sync"
	"time"

	"github.com/agrosense/agrohub/internal/errors"
)

const isoDateLayout = "2006-01-02"

// instantLayouts are accepted for from/to parameters that omit a UTC offset.
// Offset-less values resolve in the caller's timezone, not UTC.
var instantLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

var (
	locationMu    sync.RWMutex
	locationCache = map[string]*time.Location{}
)

// ResolveZone loads an IANA timezone by name, caching resolved locations.
func ResolveZone(name string) (*time.Location, error) {
	locationMu.RLock()
	loc, ok := locationCache[name]
	locationMu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.NewValidationError("unknown timezone: "+name, err)
	}

	locationMu.Lock()
	locationCache[name] = loc
	locationMu.Unlock()
	return loc, nil
}

// TruncateToHour truncates an instant to the top of its hour as observed in
// the given zone. The result is still an absolute instant.
func TruncateToHour(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, loc)
}

// StartOfDay returns the local midnight containing t in the given zone.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DayWindow returns the half-open [start, end) window of the local calendar
// day containing t.
func DayWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// MonthWindow returns the half-open [start, end) window of the local calendar
// month, along with the number of days in that month.
func MonthWindow(year int, month time.Month, loc *time.Location) (time.Time, time.Time, int) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	return start, end, days
}

// ToZonedISO renders an instant as an ISO-8601 string in the given zone,
// without fractional seconds ("Z" for UTC, "+hh:mm"/"-hh:mm" otherwise).
func ToZonedISO(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.RFC3339)
}

// ParseLocalDate parses a YYYY-MM-DD string as a calendar date in the given
// zone and returns the local midnight of that date.
func ParseLocalDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(isoDateLayout, value, loc)
	if err != nil {
		return time.Time{}, errors.NewValidationError("invalid date, expected YYYY-MM-DD: "+value, err)
	}
	return t, nil
}

// ParseInstant parses an ISO-8601 datetime. An explicit offset is honored;
// offset-less values are interpreted in the given zone. The result is
// normalized to UTC.
func ParseInstant(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.NewValidationError("invalid ISO datetime: "+value, nil)
}

// ISOWeekday returns the ISO weekday index of t in the given zone
// (1 = Monday .. 7 = Sunday).
func ISOWeekday(t time.Time, loc *time.Location) int {
	wd := int(t.In(loc).Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

var spanishWeekdays = [8]string{
	"", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo",
}

// WeekdayName returns the localized weekday name for an ISO weekday index.
func WeekdayName(isoWeekday int) string {
	if isoWeekday < 1 || isoWeekday > 7 {
		return ""
	}
	return spanishWeekdays[isoWeekday]
}

// Round2 rounds to two decimal places, the precision contract of every
// report payload.
func Round2(value float64) float64 {
	return RoundTo(value, 2)
}

// RoundTo rounds half away from zero to the given number of decimals.
func RoundTo(value float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(value*shift) / shift
}
