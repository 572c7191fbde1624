// Package datetime provides month-label parsing and manipulation utilities.
package datetime

import (
	"time"

	"github.com/riskintel/dpd-analytics/pkg/constants"
)

// MonthLayouts are the label formats accepted in input headers and
// observation labels, tried in order.
var MonthLayouts = []string{
	constants.MonthLayout, // 2006-01
	"Jan-06",
	"Jan-2006",
	"01/2006",
	"2006/01",
}

// ParseMonth parses a month label in any of the accepted layouts.
func ParseMonth(label string) (time.Time, error) {
	var firstErr error
	for _, layout := range MonthLayouts {
		t, err := time.Parse(layout, label)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// MustParseMonth parses a month label and panics on error. This is intended
// for use in tests where the label is known to be valid.
func MustParseMonth(label string) time.Time {
	t, err := ParseMonth(label)
	if err != nil {
		panic(err)
	}
	return t
}

// IsMonthLabel reports whether label parses in any accepted layout.
func IsMonthLabel(label string) bool {
	_, err := ParseMonth(label)
	return err == nil
}

// CalendarMonth returns the calendar month number (1-12) encoded in label,
// or false when the label does not parse.
func CalendarMonth(label string) (int, bool) {
	t, err := ParseMonth(label)
	if err != nil {
		return 0, false
	}
	return int(t.Month()), true
}

// OffsetMonth returns the label offset by the given number of months
// relative to the given label, formatted in the canonical layout.
func OffsetMonth(label string, months int) (string, error) {
	t, err := ParseMonth(label)
	if err != nil {
		return label, err
	}
	return t.AddDate(0, months, 0).Format(constants.MonthLayout), nil
}
