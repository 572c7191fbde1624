package risk

// GlossaryEntry documents one reported metric for export consumers.
type GlossaryEntry struct {
	Metric     string `json:"metric"`
	Definition string `json:"definition"`
	Logic      string `json:"logic"`
}

// Glossary returns the metric glossary shipped alongside reports so export
// layers do not hard-code metric descriptions.
func Glossary() []GlossaryEntry {
	return []GlossaryEntry{
		{"Delinquency Density", "Payment failure frequency", "Count(DPD>0)/Months"},
		{"Maximum DPD", "Worst delinquency observed", "Max(DPD)"},
		{"Sticky Bucket", "Peak delinquency band", "Regulatory buckets"},
		{"Rolling 3M Avg", "Smoothed delinquency trend", "Mean(last 3)"},
		{"Cumulative DPD", "Lifetime delinquency volume", "Sum(DPD)"},
		{"Cure Rate", "Share of episodes that returned to current", "HardCures/Episodes"},
		{"Recurrence Rate", "Share of cures that relapsed in the lookahead window", "Recurrences/HardCures"},
		{"Seasonal Strength", "Dispersion of delinquency across calendar months", "CV(monthly averages)"},
	}
}
