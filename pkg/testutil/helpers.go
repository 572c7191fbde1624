// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/riskintel/dpd-analytics/pkg/constants"
	"github.com/riskintel/dpd-analytics/pkg/datetime"
	"github.com/riskintel/dpd-analytics/pkg/series"
)

// MonthLabels returns n consecutive month labels starting at start, which
// must be in the 2006-01 layout. It panics on a malformed start so test
// fixtures fail loudly.
func MonthLabels(start string, n int) []string {
	t := datetime.MustParseMonth(start)
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		labels[i] = t.AddDate(0, i, 0).Format(constants.MonthLayout)
	}
	return labels
}

// SeriesFrom builds an AccountSeries from month-by-month DPD values starting
// at start; nil entries are absent months.
func SeriesFrom(accountID, start string, values []*float64) series.AccountSeries {
	labels := MonthLabels(start, len(values))
	observations := make([]series.Observation, len(values))
	for i, v := range values {
		observations[i] = series.Observation{Month: labels[i]}
		if v != nil {
			observations[i].DPD = *v
			observations[i].Present = true
		}
	}
	return series.AccountSeries{AccountID: accountID, Observations: observations}
}

// DPD wraps a value for use with SeriesFrom.
func DPD(v float64) *float64 {
	return &v
}

// CloseEnough reports whether two floats are within tolerance of each other.
func CloseEnough(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
