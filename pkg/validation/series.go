package validation

import (
	"fmt"
	"time"

	"github.com/riskintel/dpd-analytics/pkg/constants"
	"github.com/riskintel/dpd-analytics/pkg/datetime"
	"github.com/riskintel/dpd-analytics/pkg/series"
)

// ValidateSeries performs soft validation of an account series and returns
// warnings. None of these conditions abort an analysis; the engine degrades
// to neutral defaults where data is missing.
func ValidateSeries(account series.AccountSeries) []string {
	var warnings []string

	if account.AccountID == "" {
		warnings = append(warnings, "account has an empty identifier")
	}
	if len(account.Observations) == 0 {
		warnings = append(warnings, fmt.Sprintf("account %s has no months at all", account.AccountID))
		return warnings
	}
	if !account.HasObservations() {
		warnings = append(warnings, fmt.Sprintf("account %s has no observed DPD values; profile will be neutral", account.AccountID))
	}

	warnings = append(warnings, checkChronology(account)...)

	return warnings
}

// checkChronology warns when parseable month labels are out of order or skip
// months; the engine assumes a fixed monthly cadence.
func checkChronology(account series.AccountSeries) []string {
	var warnings []string
	var previous time.Time
	havePrevious := false

	for _, obs := range account.Observations {
		current, err := datetime.ParseMonth(obs.Month)
		if err != nil {
			continue
		}
		if havePrevious {
			expected := previous.AddDate(0, 1, 0)
			if !current.Equal(expected) {
				warnings = append(warnings, fmt.Sprintf("account %s: month %s does not follow %s at monthly cadence",
					account.AccountID, obs.Month, previous.Format(constants.MonthLayout)))
			}
		}
		previous = current
		havePrevious = true
	}

	return warnings
}
