// Package stats turns help-channel questions into the category counts, time series and
// contributor leaderboards shown on the dashboard. Everything here is pure computation
// over in-memory collections; identity lookups are reached only through ProfileResolver.
package stats

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Unit is a calendar granularity used to bucket questions.
type Unit string

const (
	UnitDays   Unit = "days"
	UnitWeeks  Unit = "weeks"
	UnitMonths Unit = "months"
	UnitYears  Unit = "years"
)

// ErrUnsupportedUnit is returned for granularities other than days, weeks, months and years.
var ErrUnsupportedUnit = errors.New("unsupported time unit")

// ParseUnit accepts singular or plural unit names in any case.
func ParseUnit(s string) (Unit, error) {
	u := normalize(Unit(strings.ToLower(strings.TrimSpace(s))))
	switch u {
	case UnitDays, UnitWeeks, UnitMonths, UnitYears:
		return u, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedUnit, s)
}

func normalize(u Unit) Unit {
	switch u {
	case "day":
		return UnitDays
	case "week":
		return UnitWeeks
	case "month":
		return UnitMonths
	case "year":
		return UnitYears
	}
	return u
}

// RoundUp moves t forward to the next boundary of unit, or leaves it alone when it
// already sits on one. Weeks start on Monday. Time of day and location are kept.
func RoundUp(unit Unit, t time.Time) (time.Time, error) {
	switch normalize(unit) {
	case UnitDays:
		return t, nil
	case UnitWeeks:
		shift := (8 - int(t.Weekday())) % 7
		return t.AddDate(0, 0, shift), nil
	case UnitMonths:
		if t.Day() == 1 {
			return t, nil
		}
		return time.Date(t.Year(), t.Month()+1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()), nil
	case UnitYears:
		if t.Month() == time.January && t.Day() == 1 {
			return t, nil
		}
		return time.Date(t.Year()+1, time.January, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()), nil
	}
	return t, fmt.Errorf("%w: %q", ErrUnsupportedUnit, unit)
}

// Advance adds exactly one unit to t. Month and year steps follow time.AddDate,
// so Jan 31 plus one month normalizes into March.
func Advance(unit Unit, t time.Time) (time.Time, error) {
	switch normalize(unit) {
	case UnitDays:
		return t.AddDate(0, 0, 1), nil
	case UnitWeeks:
		return t.AddDate(0, 0, 7), nil
	case UnitMonths:
		return t.AddDate(0, 1, 0), nil
	case UnitYears:
		return t.AddDate(1, 0, 0), nil
	}
	return t, fmt.Errorf("%w: %q", ErrUnsupportedUnit, unit)
}
