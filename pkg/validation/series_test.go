package validation

import (
	"strings"
	"testing"

	"github.com/riskintel/dpd-analytics/pkg/testutil"
)

func TestValidateSeriesClean(t *testing.T) {
	account := testutil.SeriesFrom("LN-1", "2024-01", []*float64{
		testutil.DPD(0), testutil.DPD(30), testutil.DPD(0),
	})
	if warnings := ValidateSeries(account); len(warnings) != 0 {
		t.Errorf("ValidateSeries() = %v, expected no warnings", warnings)
	}
}

func TestValidateSeriesEmptyIdentifier(t *testing.T) {
	account := testutil.SeriesFrom("", "2024-01", []*float64{testutil.DPD(0)})
	warnings := ValidateSeries(account)
	if len(warnings) == 0 || !strings.Contains(warnings[0], "empty identifier") {
		t.Errorf("ValidateSeries() = %v, expected an empty-identifier warning", warnings)
	}
}

func TestValidateSeriesNoObservations(t *testing.T) {
	account := testutil.SeriesFrom("LN-2", "2024-01", []*float64{nil, nil})
	warnings := ValidateSeries(account)
	found := false
	for _, warning := range warnings {
		if strings.Contains(warning, "no observed DPD values") {
			found = true
		}
	}
	if !found {
		t.Errorf("ValidateSeries() = %v, expected a no-observations warning", warnings)
	}
}

func TestValidateSeriesNoMonths(t *testing.T) {
	account := testutil.SeriesFrom("LN-3", "2024-01", nil)
	warnings := ValidateSeries(account)
	if len(warnings) == 0 || !strings.Contains(warnings[0], "no months") {
		t.Errorf("ValidateSeries() = %v, expected a no-months warning", warnings)
	}
}

func TestValidateSeriesBrokenCadence(t *testing.T) {
	account := testutil.SeriesFrom("LN-4", "2024-01", []*float64{
		testutil.DPD(0), testutil.DPD(0), testutil.DPD(0),
	})
	// Skip a month to break the cadence.
	account.Observations[2].Month = "2024-05"

	warnings := ValidateSeries(account)
	found := false
	for _, warning := range warnings {
		if strings.Contains(warning, "monthly cadence") {
			found = true
		}
	}
	if !found {
		t.Errorf("ValidateSeries() = %v, expected a cadence warning", warnings)
	}
}

func TestValidateSeriesIgnoresUnparseableLabels(t *testing.T) {
	account := testutil.SeriesFrom("LN-5", "2024-01", []*float64{testutil.DPD(0), testutil.DPD(0)})
	account.Observations[0].Month = "m1"
	account.Observations[1].Month = "m2"

	if warnings := ValidateSeries(account); len(warnings) != 0 {
		t.Errorf("ValidateSeries() = %v, expected no warnings for unparseable labels", warnings)
	}
}
