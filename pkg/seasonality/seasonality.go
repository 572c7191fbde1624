// Package seasonality aggregates an active-window DPD series by calendar
// month to expose seasonal delinquency patterns.
package seasonality

import (
	"math"

	"github.com/riskintel/dpd-analytics/pkg/mathutil"
)

// Profile holds the calendar-month aggregation for one account. Calendar
// months with no observations are absent from the maps rather than
// zero-filled.
type Profile struct {
	MonthlyAverage map[int]float64 `json:"monthlyAverage"`
	SeasonalIndex  map[int]float64 `json:"seasonalIndex"`
	Strength       float64         `json:"strength"`
	PeakMonth      int             `json:"peakMonth"`
	TroughMonth    int             `json:"troughMonth"`
}

// Build aggregates values by their calendar month (1-12). values and
// calendarMonths are parallel slices; observations whose month number falls
// outside 1-12 are ignored.
func Build(values []float64, calendarMonths []int) Profile {
	p := Profile{
		MonthlyAverage: make(map[int]float64),
		SeasonalIndex:  make(map[int]float64),
	}
	if len(values) == 0 || len(values) != len(calendarMonths) {
		return p
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for i, v := range values {
		m := calendarMonths[i]
		if m < 1 || m > 12 {
			continue
		}
		sums[m] += v
		counts[m]++
	}
	if len(counts) == 0 {
		return p
	}

	overall := mathutil.Mean(values)
	for m, sum := range sums {
		avg := sum / float64(counts[m])
		p.MonthlyAverage[m] = avg
		if mathutil.IsZero(overall) {
			p.SeasonalIndex[m] = 100
		} else {
			p.SeasonalIndex[m] = 100 * avg / overall
		}
	}

	p.Strength = strength(p.MonthlyAverage)
	p.PeakMonth, p.TroughMonth = extremes(p.SeasonalIndex)

	return p
}

// strength is the coefficient of variation across the represented monthly
// averages; fewer than two represented months yields 0.
func strength(monthly map[int]float64) float64 {
	if len(monthly) < 2 {
		return 0
	}

	sum := 0.0
	for _, avg := range monthly {
		sum += avg
	}
	mean := sum / float64(len(monthly))
	if mathutil.IsZero(mean) {
		return 0
	}

	sumSq := 0.0
	for _, avg := range monthly {
		diff := avg - mean
		sumSq += diff * diff
	}
	stdDev := math.Sqrt(sumSq / float64(len(monthly)-1))
	return mathutil.SanitizeFloat(stdDev / mean)
}

// extremes returns the months holding the highest and lowest seasonal index;
// ties break toward the earlier calendar month for determinism.
func extremes(index map[int]float64) (peak, trough int) {
	for m := 1; m <= 12; m++ {
		v, ok := index[m]
		if !ok {
			continue
		}
		if peak == 0 || v > index[peak] {
			peak = m
		}
		if trough == 0 || v < index[trough] {
			trough = m
		}
	}
	return peak, trough
}
