// Package cures scans an active-window DPD series for delinquency episodes,
// hard cures, sustained cures, and recurrences.
package cures

import (
	"github.com/riskintel/dpd-analytics/pkg/constants"
	"github.com/riskintel/dpd-analytics/pkg/mathutil"
)

// Summary characterizes the dynamics of entering and leaving delinquency for
// one account.
type Summary struct {
	Episodes       int       `json:"episodes"`
	HardCures      int       `json:"hardCures"`
	SustainedCures int       `json:"sustainedCures"`
	Recurrences    int       `json:"recurrences"`
	TimeToCure     []int     `json:"timeToCure,omitempty"`
	CureRate       float64   `json:"cureRate"`
	AvgTimeToCure  float64   `json:"avgTimeToCure"`
	RecurrenceRate float64   `json:"recurrenceRate"`
	LookaheadUsed  int       `json:"lookaheadUsed"`
}

// Scan walks the series with a two-state machine (Current when DPD = 0,
// Delinquent when DPD > 0) using the default 3-month post-cure lookahead.
func Scan(values []float64) Summary {
	return ScanWithLookahead(values, constants.DefaultLookaheadMonths)
}

// ScanWithLookahead is Scan with an explicit post-cure lookahead window.
//
// An episode opens on entry into delinquency, including a delinquent first
// month. A hard cure closes an episode on the first zero month after a
// delinquent run and records the run length as a time-to-cure sample. An
// episode still open at series end counts toward Episodes only.
//
// The lookahead window after a cure at position i is [i+1, i+lookahead],
// clipped to series bounds: any delinquent month inside it is a recurrence,
// an all-zero window is a sustained cure. The clipped window is evaluated
// over whatever months are actually available, so a cure in the final months
// still resolves; a cure on the very last month has nothing to contradict it
// and counts as sustained.
func ScanWithLookahead(values []float64, lookahead int) Summary {
	if lookahead <= 0 {
		lookahead = constants.DefaultLookaheadMonths
	}
	summary := Summary{LookaheadUsed: lookahead}
	if len(values) == 0 {
		return summary
	}

	delinquent := mathutil.IsPositive(values[0])
	runLength := 0
	if delinquent {
		summary.Episodes++
		runLength = 1
	}

	for i := 1; i < len(values); i++ {
		positive := mathutil.IsPositive(values[i])
		switch {
		case !delinquent && positive:
			summary.Episodes++
			delinquent = true
			runLength = 1
		case delinquent && positive:
			runLength++
		case delinquent && !positive:
			summary.HardCures++
			summary.TimeToCure = append(summary.TimeToCure, runLength)
			summary.resolveCure(values, i, lookahead)
			delinquent = false
			runLength = 0
		}
	}

	if summary.Episodes > 0 {
		summary.CureRate = float64(summary.HardCures) / float64(summary.Episodes)
	}
	if len(summary.TimeToCure) > 0 {
		total := 0
		for _, t := range summary.TimeToCure {
			total += t
		}
		summary.AvgTimeToCure = float64(total) / float64(len(summary.TimeToCure))
	}
	if summary.HardCures > 0 {
		summary.RecurrenceRate = float64(summary.Recurrences) / float64(summary.HardCures)
	}

	return summary
}

// resolveCure classifies the cure at position cureIdx as sustained or
// recurred by inspecting the clipped lookahead window.
func (s *Summary) resolveCure(values []float64, cureIdx, lookahead int) {
	end := cureIdx + lookahead
	if end > len(values)-1 {
		end = len(values) - 1
	}
	for i := cureIdx + 1; i <= end; i++ {
		if mathutil.IsPositive(values[i]) {
			s.Recurrences++
			return
		}
	}
	s.SustainedCures++
}
