// Package validation provides validation helpers for CLI options and input
// series.
package validation

import (
	"fmt"

	"github.com/riskintel/dpd-analytics/pkg/constants"
)

// ValidateOutputFormat checks that the requested output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("invalid output format %s, must be one of: %s, %s, %s",
		format, constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON)
}
