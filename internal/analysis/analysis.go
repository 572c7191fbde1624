// Package analysis defines the risk profile produced for each account and
// includes the engine that assembles it from the component packages.
package analysis

import (
	"sync"

	"github.com/riskintel/dpd-analytics/pkg/constants"
	"github.com/riskintel/dpd-analytics/pkg/cures"
	"github.com/riskintel/dpd-analytics/pkg/risk"
	"github.com/riskintel/dpd-analytics/pkg/seasonality"
	"github.com/riskintel/dpd-analytics/pkg/series"
	"github.com/riskintel/dpd-analytics/pkg/stats"
	"github.com/riskintel/dpd-analytics/pkg/trend"
	"go.uber.org/zap"
)

// RiskProfile is the engine's sole output: a plain immutable aggregate of the
// lifecycle segmentation, descriptive statistics, trend, cure dynamics,
// seasonality, and risk tier for one account. It carries no behavior and is
// safe to serialize to any tabular or document format.
type RiskProfile struct {
	AccountID      string              `json:"accountId"`
	SanctionedAmt  float64             `json:"sanctionedAmount,omitempty"`
	OutstandingBal float64             `json:"outstandingBalance,omitempty"`
	LoanStatus     string              `json:"loanStatus"`
	RiskTier       string              `json:"riskTier"`
	Segments       []series.Segment    `json:"segments"`
	ActiveTenure   int                 `json:"activeTenure"`
	Statistics     stats.Descriptive   `json:"statistics"`
	Trend          trend.Trend         `json:"trend"`
	Cures          cures.Summary       `json:"cures"`
	Seasonality    seasonality.Profile `json:"seasonality"`
}

// Options carries the tunable analysis policy.
type Options struct {
	Lookahead int
	TierTable risk.TierTable
}

// Engine assembles risk profiles. It holds only read-only policy and a
// logger, so one engine may serve any number of concurrent Analyze calls.
type Engine struct {
	logger    *zap.Logger
	lookahead int
	tierTable risk.TierTable
}

// NewEngine creates an analysis engine with the given logger and options.
// If logger is nil, it will use a no-op logger to prevent panics. Zero-valued
// options fall back to the canonical defaults.
func NewEngine(logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Lookahead <= 0 {
		opts.Lookahead = constants.DefaultLookaheadMonths
	}
	if !opts.TierTable.Valid() {
		opts.TierTable = risk.DefaultTierTable()
	}
	return &Engine{
		logger:    logger,
		lookahead: opts.Lookahead,
		tierTable: opts.TierTable,
	}
}

// Analyze derives the risk profile for one account. It is a deterministic
// function of its input: the same series always yields an identical profile,
// and the input is never mutated.
func (e *Engine) Analyze(account series.AccountSeries) RiskProfile {
	normalized := series.Normalize(account)

	profile := RiskProfile{
		AccountID:      account.AccountID,
		SanctionedAmt:  account.SanctionedAmt,
		OutstandingBal: account.OutstandingBal,
		LoanStatus:     normalized.LoanStatus(),
		Segments:       normalized.Segments,
		ActiveTenure:   len(normalized.ActiveSeries),
	}

	if len(normalized.ActiveSeries) == 0 {
		// Never-disbursed account: neutral defaults everywhere.
		profile.RiskTier = e.tierTable.Classify(0, false)
		profile.Seasonality = seasonality.Build(nil, nil)
		e.logger.Debug("no observations present, returning neutral profile",
			zap.String("op", "analysis.Analyze"),
			zap.String("account", account.AccountID),
		)
		return profile
	}

	profile.Statistics = stats.Compute(normalized.ActiveSeries)
	profile.Trend = trend.Estimate(normalized.ActiveSeries)
	profile.Cures = cures.ScanWithLookahead(normalized.ActiveSeries, e.lookahead)
	profile.Seasonality = seasonality.Build(normalized.ActiveSeries, normalized.CalendarMonths())
	profile.RiskTier = e.tierTable.Classify(profile.Statistics.Max, true)

	e.logger.Debug("assembled risk profile",
		zap.String("op", "analysis.Analyze"),
		zap.String("account", account.AccountID),
		zap.String("status", profile.LoanStatus),
		zap.String("tier", profile.RiskTier),
		zap.Int("activeTenure", profile.ActiveTenure),
	)

	return profile
}

// AnalyzeBatch analyzes accounts independently in parallel and returns the
// profiles in input order. Accounts share no state, so no coordination beyond
// the final join is needed.
func (e *Engine) AnalyzeBatch(accounts []series.AccountSeries) []RiskProfile {
	profiles := make([]RiskProfile, len(accounts))
	var wg sync.WaitGroup
	for i := range accounts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			profiles[i] = e.Analyze(accounts[i])
		}(i)
	}
	wg.Wait()
	return profiles
}
