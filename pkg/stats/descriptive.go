// Package stats computes descriptive statistics over an account's
// active-window DPD series.
package stats

import (
	"math"
	"sort"

	"github.com/riskintel/dpd-analytics/pkg/constants"
	"github.com/riskintel/dpd-analytics/pkg/mathutil"
)

// Descriptive holds location, spread, and shape statistics for one active
// window. Every field degrades to exactly 0 when the window is too short or
// the variance is degenerate; no field is ever NaN.
type Descriptive struct {
	Mean            float64 `json:"mean"`
	Median          float64 `json:"median"`
	Mode            float64 `json:"mode"`
	Min             float64 `json:"min"`
	Max             float64 `json:"max"`
	Range           float64 `json:"range"`
	StdDev          float64 `json:"stdDev"`
	Skewness        float64 `json:"skewness"`
	Kurtosis        float64 `json:"kurtosis"`
	CoefVariation   float64 `json:"coefVariation"`
	PropDelinquent  float64 `json:"propDelinquent"`
	DelinquentCount int     `json:"delinquentCount"`
	CumulativeDPD   float64 `json:"cumulativeDpd"`
}

// Compute derives the full descriptive profile of values. An empty input
// returns the zero value.
func Compute(values []float64) Descriptive {
	n := len(values)
	if n == 0 {
		return Descriptive{}
	}

	d := Descriptive{
		Mean:          mathutil.Mean(values),
		Median:        median(values),
		Mode:          mode(values),
		Min:           values[0],
		Max:           values[0],
		CumulativeDPD: mathutil.Sum(values),
	}

	for _, v := range values {
		if v < d.Min {
			d.Min = v
		}
		if v > d.Max {
			d.Max = v
		}
		if mathutil.IsPositive(v) {
			d.DelinquentCount++
		}
	}
	d.Range = d.Max - d.Min
	d.PropDelinquent = float64(d.DelinquentCount) / float64(n)

	d.StdDev = sampleStdDev(values, d.Mean)
	if !mathutil.IsZero(d.Mean) && !mathutil.IsZero(d.StdDev) {
		d.CoefVariation = d.StdDev / d.Mean
	}
	d.Skewness = skewness(values, d.Mean, d.StdDev)
	d.Kurtosis = kurtosis(values, d.Mean, d.StdDev)

	return d
}

// median returns the middle value of the sorted input (mean of the two middle
// values for even lengths).
func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// mode returns the most frequent value; ties break toward the largest value.
func mode(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best := values[0]
	bestCount := 0
	for v, count := range counts {
		if count > bestCount || (count == bestCount && v > best) {
			best = v
			bestCount = count
		}
	}
	return best
}

// sampleStdDev uses the n-1 denominator and requires at least two samples.
func sampleStdDev(values []float64, mean float64) float64 {
	n := len(values)
	if n < constants.MinSamplesStdDev {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// skewness is the third standardized moment; it requires at least three
// samples and a non-degenerate standard deviation.
func skewness(values []float64, mean, stdDev float64) float64 {
	n := len(values)
	if n < constants.MinSamplesSkewness || mathutil.IsZero(stdDev) {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		z := (v - mean) / stdDev
		sum += z * z * z
	}
	return mathutil.SanitizeFloat(sum / float64(n))
}

// kurtosis is the excess fourth standardized moment; it requires at least four
// samples and a non-degenerate standard deviation.
func kurtosis(values []float64, mean, stdDev float64) float64 {
	n := len(values)
	if n < constants.MinSamplesKurtosis || mathutil.IsZero(stdDev) {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		z := (v - mean) / stdDev
		sum += z * z * z * z
	}
	return mathutil.SanitizeFloat(sum/float64(n) - 3)
}
