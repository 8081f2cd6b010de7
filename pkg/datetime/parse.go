// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/fincast/assumptions/pkg/constants"
)

const (
	// DateLayout is the format expected for dates entered on the form.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseOrZero parses a form date, yielding the zero time for empty or
// malformed input. A blank purchase or start date means "start of forecast"
// and is resolved downstream by the engine.
func ParseOrZero(dateStr string) time.Time {
	if dateStr == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}
	}
	return t
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// DateBeforeDate returns true if firstDate is strictly before secondDate.
func DateBeforeDate(firstDate string, secondDate string) (bool, error) {
	firstDateT, err := time.Parse(DateLayout, firstDate)
	if err != nil {
		return false, err
	}
	secondDateT, err := time.Parse(DateLayout, secondDate)
	if err != nil {
		return false, err
	}
	return firstDateT.Before(secondDateT), nil
}
