// Package constants provides shared constants for the dpd-analytics application.
package constants

// MonthLayout is the month label format expected in input files and is also the
// output date format.
const MonthLayout = "2006-01"

// Analysis constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DefaultLookaheadMonths is the post-cure window inspected for sustained
	// cures and recurrences
	DefaultLookaheadMonths = 3

	// RollingWindowMonths is the window for the smoothed DPD trend series
	RollingWindowMonths = 3

	// MinSamplesStdDev is the minimum active-window length for a sample
	// standard deviation
	MinSamplesStdDev = 2

	// MinSamplesSkewness is the minimum active-window length for skewness
	MinSamplesSkewness = 3

	// MinSamplesKurtosis is the minimum active-window length for kurtosis
	MinSamplesKurtosis = 4
)

// Risk tier defaults; thresholds are descending and each maps to the label at
// the same position. Max DPD below the last threshold falls into TierCurrent.
var (
	DefaultTierThresholds = []float64{90, 60, 30}
	DefaultTierLabels     = []string{"90+", "60+", "30+"}
)

const (
	// TierCurrent is the tier for accounts that never exceeded the lowest
	// delinquency threshold
	TierCurrent = "Current"

	// TierNotAvailable is the tier reported when no observation exists
	TierNotAvailable = "NA"
)

// Loan status labels derived from lifecycle segmentation
const (
	StatusActive       = "Active"
	StatusSettled      = "Settled"
	StatusNotDisbursed = "NotDisbursed"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for CSV
	// files (1 MB)
	DefaultMaxUploadSizeBytes int64 = 1024 * 1024

	// DefaultMaxSeriesMonths caps the number of month columns accepted from a
	// single upload
	DefaultMaxSeriesMonths = 600
)

// Numeric policy constants
const (
	// FloatTolerance is the tolerance for floating point comparisons against
	// zero; DPD values are whole day counts so anything smaller is noise
	FloatTolerance = 1e-9
)
