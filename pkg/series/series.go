// Package series defines the data structures for a monthly days-past-due
// history and includes functions for lifecycle segmentation.
package series

import (
	"github.com/riskintel/dpd-analytics/pkg/constants"
	"github.com/riskintel/dpd-analytics/pkg/datetime"
)

// Segment labels one month of an account's lifecycle.
type Segment string

// Lifecycle segments in their fixed chronological order. NotDisbursed precedes
// the first observed month, Settled follows the last observed month, and
// everything between (inclusive) is Active.
const (
	SegmentNotDisbursed Segment = "NotDisbursed"
	SegmentActive       Segment = "Active"
	SegmentSettled      Segment = "Settled"
)

// Observation is one month of raw input: a month label plus a DPD value that
// may be absent. Absence means "no data for this month" and is distinct from
// DPD = 0, which means the account was current.
type Observation struct {
	Month   string  `json:"month"`
	DPD     float64 `json:"dpd"`
	Present bool    `json:"present"`
}

// AccountSeries is the raw input for one account: an identifier, optional
// passthrough balance figures, and a chronological fixed-cadence sequence of
// monthly observations.
type AccountSeries struct {
	AccountID      string        `json:"accountId"`
	SanctionedAmt  float64       `json:"sanctionedAmount,omitempty"`
	OutstandingBal float64       `json:"outstandingBalance,omitempty"`
	Observations   []Observation `json:"observations"`
}

// Normalized is the gap-aware view of an AccountSeries: per-month lifecycle
// segments plus the active-window DPD values with absent months treated as 0.
type Normalized struct {
	Segments     []Segment
	ActiveSeries []float64
	ActiveMonths []string
	FirstActive  int
	LastActive   int
}

// HasObservations reports whether any month carries a present DPD value.
func (s AccountSeries) HasObservations() bool {
	for _, obs := range s.Observations {
		if obs.Present {
			return true
		}
	}
	return false
}

// Normalize segments the series into NotDisbursed/Active/Settled runs and
// extracts the ActiveSeries. A series with no present observation is entirely
// NotDisbursed with an empty ActiveSeries; FirstActive and LastActive are -1
// in that case.
func Normalize(s AccountSeries) Normalized {
	n := Normalized{
		Segments:    make([]Segment, len(s.Observations)),
		FirstActive: -1,
		LastActive:  -1,
	}

	for i, obs := range s.Observations {
		if !obs.Present {
			continue
		}
		if n.FirstActive == -1 {
			n.FirstActive = i
		}
		n.LastActive = i
	}

	if n.FirstActive == -1 {
		for i := range n.Segments {
			n.Segments[i] = SegmentNotDisbursed
		}
		return n
	}

	for i := range s.Observations {
		switch {
		case i < n.FirstActive:
			n.Segments[i] = SegmentNotDisbursed
		case i > n.LastActive:
			n.Segments[i] = SegmentSettled
		default:
			n.Segments[i] = SegmentActive
		}
	}

	n.ActiveSeries = make([]float64, 0, n.LastActive-n.FirstActive+1)
	n.ActiveMonths = make([]string, 0, n.LastActive-n.FirstActive+1)
	for i := n.FirstActive; i <= n.LastActive; i++ {
		value := 0.0
		if s.Observations[i].Present {
			value = s.Observations[i].DPD
		}
		n.ActiveSeries = append(n.ActiveSeries, value)
		n.ActiveMonths = append(n.ActiveMonths, s.Observations[i].Month)
	}

	return n
}

// LoanStatus derives the account's current status from the segmentation:
// Active when the active window reaches the final month, Settled when the
// account went quiet before series end, NotDisbursed when nothing was ever
// observed.
func (n Normalized) LoanStatus() string {
	if n.FirstActive == -1 {
		return constants.StatusNotDisbursed
	}
	if n.LastActive == len(n.Segments)-1 {
		return constants.StatusActive
	}
	return constants.StatusSettled
}

// CalendarMonths maps each active-window month to its calendar month number
// (1-12). Labels parseable in the standard layouts contribute their real
// calendar month; anything else falls back to position within the active
// window modulo 12.
func (n Normalized) CalendarMonths() []int {
	months := make([]int, len(n.ActiveMonths))
	for i, label := range n.ActiveMonths {
		if m, ok := datetime.CalendarMonth(label); ok {
			months[i] = m
		} else {
			months[i] = i%constants.MonthsPerYear + 1
		}
	}
	return months
}
