// Package ingest reads tabular delinquency files into typed account series.
// Column-position access to the spreadsheet layout is confined to this
// boundary; everything downstream of it works on series.AccountSeries.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/riskintel/dpd-analytics/pkg/constants"
	"github.com/riskintel/dpd-analytics/pkg/datetime"
	"github.com/riskintel/dpd-analytics/pkg/series"
	"go.uber.org/zap"
)

// Expected layout: a header row with an account-id column, optional leading
// numeric passthrough columns (sanctioned amount, outstanding balance), then
// one column per month in chronological order. Month columns are detected by
// parsing header labels; when no label parses, the original fixed layout of
// three leading columns is assumed.
const fixedLeadingColumns = 3

// Reader parses delinquency CSV files.
type Reader struct {
	logger         *zap.Logger
	missingMarkers map[string]struct{}
}

// NewReader creates a CSV reader. If logger is nil, it will use a no-op
// logger to prevent panics. missingMarkers lists cell values treated as
// "no data" in addition to the empty cell.
func NewReader(logger *zap.Logger, missingMarkers []string) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	markers := make(map[string]struct{}, len(missingMarkers))
	for _, m := range missingMarkers {
		markers[strings.ToUpper(strings.TrimSpace(m))] = struct{}{}
	}
	return &Reader{logger: logger, missingMarkers: markers}
}

// ReadFile reads all account series from the CSV file at path.
func (r *Reader) ReadFile(path string) ([]series.AccountSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return r.ReadAll(file)
}

// ReadAll reads all account series from src. Malformed numeric cells are
// rejected here; the analytics engine never sees invalid input.
func (r *Reader) ReadAll(src io.Reader) ([]series.AccountSeries, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	monthStart, err := locateMonthColumns(header)
	if err != nil {
		return nil, err
	}
	monthLabels := header[monthStart:]
	if len(monthLabels) > constants.DefaultMaxSeriesMonths {
		return nil, fmt.Errorf("input has %d month columns, exceeding the limit of %d", len(monthLabels), constants.DefaultMaxSeriesMonths)
	}
	if err := checkUniqueMonths(monthLabels); err != nil {
		return nil, err
	}

	var accounts []series.AccountSeries
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", rowNum+1, err)
		}
		rowNum++

		account, err := r.parseRow(record, monthStart, monthLabels, rowNum)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	r.logger.Debug("ingested delinquency file",
		zap.String("op", "ingest.ReadAll"),
		zap.Int("accounts", len(accounts)),
		zap.Int("months", len(monthLabels)),
	)

	return accounts, nil
}

func (r *Reader) parseRow(record []string, monthStart int, monthLabels []string, rowNum int) (series.AccountSeries, error) {
	var account series.AccountSeries
	if len(record) != monthStart+len(monthLabels) {
		return account, fmt.Errorf("row %d has %d columns, expected %d", rowNum, len(record), monthStart+len(monthLabels))
	}

	account.AccountID = strings.TrimSpace(record[0])
	if account.AccountID == "" {
		return account, fmt.Errorf("row %d has an empty account identifier", rowNum)
	}

	// Passthrough balance columns, when present, sit between the account id
	// and the first month column.
	if monthStart > 1 {
		amount, err := r.parsePassthrough(record[1], rowNum, 2)
		if err != nil {
			return account, err
		}
		account.SanctionedAmt = amount
	}
	if monthStart > 2 {
		balance, err := r.parsePassthrough(record[2], rowNum, 3)
		if err != nil {
			return account, err
		}
		account.OutstandingBal = balance
	}

	account.Observations = make([]series.Observation, len(monthLabels))
	for i, label := range monthLabels {
		cell := strings.TrimSpace(record[monthStart+i])
		obs := series.Observation{Month: label}
		if !r.isMissing(cell) {
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return account, fmt.Errorf("row %d column %q: invalid DPD value %q: %w", rowNum, label, cell, err)
			}
			if value < 0 {
				return account, fmt.Errorf("row %d column %q: DPD cannot be negative, got %v", rowNum, label, value)
			}
			obs.DPD = value
			obs.Present = true
		}
		account.Observations[i] = obs
	}

	return account, nil
}

func (r *Reader) parsePassthrough(cell string, rowNum, colNum int) (float64, error) {
	cell = strings.TrimSpace(cell)
	if r.isMissing(cell) {
		return 0, nil
	}
	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d column %d: invalid numeric value %q: %w", rowNum, colNum, cell, err)
	}
	return value, nil
}

func (r *Reader) isMissing(cell string) bool {
	if cell == "" {
		return true
	}
	_, ok := r.missingMarkers[strings.ToUpper(cell)]
	return ok
}

// locateMonthColumns returns the index of the first month column. Header
// labels that parse as month labels win; otherwise the fixed three-column
// leading layout is assumed.
func locateMonthColumns(header []string) (int, error) {
	if len(header) < 2 {
		return 0, fmt.Errorf("header has %d columns, need an account id and at least one month", len(header))
	}
	for i := 1; i < len(header); i++ {
		if datetime.IsMonthLabel(strings.TrimSpace(header[i])) {
			return i, nil
		}
	}
	if len(header) <= fixedLeadingColumns {
		return 0, fmt.Errorf("no month columns found in header")
	}
	return fixedLeadingColumns, nil
}

func checkUniqueMonths(labels []string) error {
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		key := strings.TrimSpace(label)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate month column %q", label)
		}
		seen[key] = struct{}{}
	}
	return nil
}
