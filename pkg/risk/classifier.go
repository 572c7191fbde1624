// Package risk maps peak delinquency to a discrete risk tier.
package risk

import (
	"github.com/riskintel/dpd-analytics/pkg/constants"
)

// TierTable is a monotonic threshold table: thresholds are strictly
// descending and each maps to the label at the same position. A max DPD at or
// above a threshold takes that threshold's label; below every threshold the
// account is Current.
type TierTable struct {
	Thresholds []float64
	Labels     []string
}

// DefaultTierTable returns the canonical four-tier table: 90+ / 60+ / 30+ /
// Current.
func DefaultTierTable() TierTable {
	return TierTable{
		Thresholds: append([]float64(nil), constants.DefaultTierThresholds...),
		Labels:     append([]string(nil), constants.DefaultTierLabels...),
	}
}

// Valid reports whether the table is usable: equal lengths, at least one
// band, and strictly descending non-negative thresholds.
func (t TierTable) Valid() bool {
	if len(t.Thresholds) == 0 || len(t.Thresholds) != len(t.Labels) {
		return false
	}
	for i, threshold := range t.Thresholds {
		if threshold < 0 {
			return false
		}
		if i > 0 && threshold >= t.Thresholds[i-1] {
			return false
		}
	}
	return true
}

// Classify returns the tier for the worst DPD ever observed. hasObservations
// distinguishes a clean account (tier Current) from one with no data at all
// (tier NA). An invalid table falls back to the default.
func (t TierTable) Classify(maxDPD float64, hasObservations bool) string {
	if !hasObservations {
		return constants.TierNotAvailable
	}
	if !t.Valid() {
		t = DefaultTierTable()
	}
	for i, threshold := range t.Thresholds {
		if maxDPD >= threshold {
			return t.Labels[i]
		}
	}
	return constants.TierCurrent
}
