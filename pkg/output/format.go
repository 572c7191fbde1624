// Package output provides utilities for formatting and displaying risk
// profiles.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/riskintel/dpd-analytics/internal/analysis"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, profiles []analysis.RiskProfile) {
	p := message.NewPrinter(language.English)
	for i, profile := range profiles {
		fmt.Fprintf(w, "--- Risk profile for account %s ---\n", profile.AccountID)
		fmt.Fprintf(w, "Metric                | Value\n")
		fmt.Fprintf(w, "______                | _____\n")
		fmt.Fprintf(w, "Loan Status           | %s\n", profile.LoanStatus)
		fmt.Fprintf(w, "Risk Tier             | %s\n", profile.RiskTier)
		fmt.Fprintf(w, "Active Tenure         | %d months\n", profile.ActiveTenure)
		_, _ = p.Fprintf(w, "Maximum DPD           | %.0f days\n", profile.Statistics.Max)
		_, _ = p.Fprintf(w, "Mean DPD              | %.2f\n", profile.Statistics.Mean)
		_, _ = p.Fprintf(w, "Cumulative DPD        | %.0f\n", profile.Statistics.CumulativeDPD)
		fmt.Fprintf(w, "Delinquency Density   | %.1f%%\n", 100*profile.Statistics.PropDelinquent)
		fmt.Fprintf(w, "Trend Slope           | %+.3f /month\n", profile.Trend.Slope)
		fmt.Fprintf(w, "Episodes              | %d\n", profile.Cures.Episodes)
		fmt.Fprintf(w, "Cure Rate             | %.2f\n", profile.Cures.CureRate)
		fmt.Fprintf(w, "Recurrence Rate       | %.2f\n", profile.Cures.RecurrenceRate)
		fmt.Fprintf(w, "Seasonal Strength     | %.3f\n", profile.Seasonality.Strength)
		if profile.Seasonality.PeakMonth > 0 {
			fmt.Fprintf(w, "Peak / Trough Month   | %d / %d\n", profile.Seasonality.PeakMonth, profile.Seasonality.TroughMonth)
		}
		if i < len(profiles)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

// csvColumns is the flat tabular projection of a profile used by CsvFormat.
var csvColumns = []string{
	"account", "loan_status", "risk_tier", "active_tenure",
	"mean", "median", "mode", "min", "max", "range", "std_dev",
	"skewness", "kurtosis", "coef_variation",
	"prop_delinquent", "delinquent_count", "cumulative_dpd",
	"slope", "autocorrelation",
	"episodes", "hard_cures", "sustained_cures", "recurrences",
	"cure_rate", "avg_time_to_cure", "recurrence_rate",
	"seasonal_strength", "peak_month", "trough_month",
}

// CsvFormat writes one row per profile in comma-separated value format.
func CsvFormat(w io.Writer, profiles []analysis.RiskProfile) {
	header := make([]string, len(csvColumns))
	for i, col := range csvColumns {
		header[i] = fmt.Sprintf("%q", col)
	}
	fmt.Fprintf(w, "%s\n", strings.Join(header, ","))

	for _, p := range profiles {
		s := p.Statistics
		c := p.Cures
		fmt.Fprintf(w, "%q,%q,%q,%d", p.AccountID, p.LoanStatus, p.RiskTier, p.ActiveTenure)
		fmt.Fprintf(w, ",%.4f,%.4f,%.4f,%.4f,%.4f,%.4f,%.4f", s.Mean, s.Median, s.Mode, s.Min, s.Max, s.Range, s.StdDev)
		fmt.Fprintf(w, ",%.4f,%.4f,%.4f", s.Skewness, s.Kurtosis, s.CoefVariation)
		fmt.Fprintf(w, ",%.4f,%d,%.4f", s.PropDelinquent, s.DelinquentCount, s.CumulativeDPD)
		fmt.Fprintf(w, ",%.4f,%.4f", p.Trend.Slope, p.Trend.Autocorrelation)
		fmt.Fprintf(w, ",%d,%d,%d,%d", c.Episodes, c.HardCures, c.SustainedCures, c.Recurrences)
		fmt.Fprintf(w, ",%.4f,%.4f,%.4f", c.CureRate, c.AvgTimeToCure, c.RecurrenceRate)
		fmt.Fprintf(w, ",%.4f,%d,%d", p.Seasonality.Strength, p.Seasonality.PeakMonth, p.Seasonality.TroughMonth)
		fmt.Fprintf(w, "\n")
	}
}

// JSONFormat writes the full profile batch as indented JSON.
func JSONFormat(w io.Writer, profiles []analysis.RiskProfile) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(profiles); err != nil {
		return fmt.Errorf("failed to encode profiles: %w", err)
	}
	return nil
}
