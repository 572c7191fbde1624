// Package trend fits linear and serial-correlation trend measures over an
// active-window DPD series.
package trend

import (
	"math"

	"github.com/riskintel/dpd-analytics/pkg/constants"
	"github.com/riskintel/dpd-analytics/pkg/mathutil"
)

// Trend holds the fitted trend measures for one active window.
type Trend struct {
	Slope           float64   `json:"slope"`
	Autocorrelation float64   `json:"autocorrelation"`
	Rolling3M       []float64 `json:"rolling3m,omitempty"`
}

// Estimate computes the OLS slope of DPD against 0-based month index, the
// lag-1 autocorrelation, and the rolling 3-month mean series. All measures
// degrade to 0 rather than NaN on short or zero-variance inputs.
func Estimate(values []float64) Trend {
	return Trend{
		Slope:           Slope(values),
		Autocorrelation: Autocorrelation(values),
		Rolling3M:       RollingMean(values, constants.RollingWindowMonths),
	}
}

// Slope fits an ordinary-least-squares line of values against their 0-based
// index and returns its slope, or 0 when fewer than two samples exist.
func Slope(values []float64) float64 {
	n := len(values)
	if n <= 1 {
		return 0
	}

	xMean := float64(n-1) / 2
	yMean := mathutil.Mean(values)

	num := 0.0
	den := 0.0
	for i, y := range values {
		dx := float64(i) - xMean
		num += dx * (y - yMean)
		den += dx * dx
	}
	if mathutil.IsZero(den) {
		return 0
	}
	return num / den
}

// Autocorrelation returns the lag-1 Pearson correlation between the series
// and itself shifted by one month. Short or zero-variance inputs return 0.
func Autocorrelation(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	lead := values[:n-1]
	lag := values[1:]
	leadMean := mathutil.Mean(lead)
	lagMean := mathutil.Mean(lag)

	num := 0.0
	leadVar := 0.0
	lagVar := 0.0
	for i := range lead {
		dl := lead[i] - leadMean
		dg := lag[i] - lagMean
		num += dl * dg
		leadVar += dl * dl
		lagVar += dg * dg
	}

	den := math.Sqrt(leadVar * lagVar)
	if mathutil.IsZero(den) {
		return 0
	}
	return num / den
}

// RollingMean returns the trailing mean over a fixed window; positions with an
// incomplete leading window report 0, matching the smoothed series shown to
// report consumers.
func RollingMean(values []float64, window int) []float64 {
	if len(values) == 0 || window <= 0 {
		return nil
	}
	out := make([]float64, len(values))
	running := 0.0
	for i, v := range values {
		running += v
		if i >= window {
			running -= values[i-window]
		}
		if i >= window-1 {
			out[i] = running / float64(window)
		}
	}
	return out
}
