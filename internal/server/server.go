// Package server exposes the analytics engine over HTTP for external
// rendering and export collaborators. Every request is stateless: one upload
// in, one profile batch out, nothing retained between calls.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/riskintel/dpd-analytics/internal/analysis"
	"github.com/riskintel/dpd-analytics/internal/config"
	"github.com/riskintel/dpd-analytics/pkg/ingest"
	"github.com/riskintel/dpd-analytics/pkg/series"
	"github.com/riskintel/dpd-analytics/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	engine        *analysis.Engine
	conf          *config.Configuration
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the analysis API.
func NewHandler(logger *zap.Logger, conf *config.Configuration, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		conf = &config.Configuration{}
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger: logger,
		engine: analysis.NewEngine(logger, analysis.Options{
			Lookahead: conf.Lookahead(),
			TierTable: conf.TierTable(),
		}),
		conf:          conf,
		maxUploadSize: conf.MaxUploadBytes(),
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Analysis API endpoint (CSV file upload)
	mux.HandleFunc("/api/analyze", h.handleAnalyzeUpload)

	// Analysis API endpoint for pre-typed series batches
	mux.HandleFunc("/api/analyze/json", h.handleAnalyzeJSON)

	// Active analysis policy for consumers that mirror the classification
	mux.HandleFunc("/api/policy", h.handlePolicy)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type analyzeResponse struct {
	RequestID string                 `json:"requestId"`
	Profiles  []analysis.RiskProfile `json:"profiles"`
	Warnings  []string               `json:"warnings,omitempty"`
	Duration  string                 `json:"duration"`
}

func (h *handler) handleAnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	requestID := uuid.NewString()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), requestID)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), requestID)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing delinquency file", requestID)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleAnalyzeUpload"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read upload: %v", err), requestID)
		return
	}

	reader := ingest.NewReader(h.logger, h.conf.MissingMarkers())
	accounts, err := reader.ReadAll(&buf)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse delinquency file: %v", err), requestID)
		return
	}

	h.runAnalysis(w, accounts, start, requestID, "server.handleAnalyzeUpload")
}

func (h *handler) handleAnalyzeJSON(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	requestID := uuid.NewString()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	var accounts []series.AccountSeries
	if err := json.NewDecoder(r.Body).Decode(&accounts); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode series batch: %v", err), requestID)
		return
	}

	h.runAnalysis(w, accounts, start, requestID, "server.handleAnalyzeJSON")
}

func (h *handler) runAnalysis(w http.ResponseWriter, accounts []series.AccountSeries, start time.Time, requestID, op string) {
	if len(accounts) == 0 {
		h.respondError(w, http.StatusBadRequest, "no accounts in request", requestID)
		return
	}

	var warnings []string
	for _, account := range accounts {
		warnings = append(warnings, validation.ValidateSeries(account)...)
	}

	profiles := h.engine.AnalyzeBatch(accounts)

	h.logger.Info("analysis request complete",
		zap.String("op", op),
		zap.String("requestId", requestID),
		zap.Int("accounts", len(accounts)),
		zap.Duration("duration", time.Since(start)),
	)

	h.writeJSON(w, http.StatusOK, analyzeResponse{
		RequestID: requestID,
		Profiles:  profiles,
		Warnings:  warnings,
		Duration:  time.Since(start).String(),
	})
}

func (h *handler) handlePolicy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	table := h.conf.TierTable()
	policy := map[string]interface{}{
		"lookaheadMonths": h.conf.Lookahead(),
		"tierThresholds":  table.Thresholds,
		"tierLabels":      table.Labels,
		"missingMarkers":  h.conf.MissingMarkers(),
	}

	data, err := yaml.Marshal(policy)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode policy: %v", err), uuid.NewString())
		return
	}

	w.Header().Set("Content-Type", "application/x-yaml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write policy response", zap.Error(err))
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg, requestID string) {
	h.logger.Error("analysis request failed",
		zap.String("op", "server"),
		zap.String("requestId", requestID),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg, "requestId": requestID})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
