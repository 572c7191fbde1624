package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskintel/dpd-analytics/internal/config"
	"go.uber.org/zap"
)

func newTestHandler() http.Handler {
	return NewHandler(zap.NewNop(), &config.Configuration{}, "test")
}

func TestHandleAnalyzeJSON(t *testing.T) {
	body := `[
		{
			"accountId": "LN-1",
			"observations": [
				{"month": "2024-01", "dpd": 0, "present": true},
				{"month": "2024-02", "dpd": 95, "present": true},
				{"month": "2024-03", "dpd": 0, "present": true}
			]
		}
	]`

	req := httptest.NewRequest(http.MethodPost, "/api/analyze/json", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp analyzeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.RequestID == "" {
		t.Errorf("response missing requestId")
	}
	if len(resp.Profiles) != 1 {
		t.Fatalf("profiles = %d, expected 1", len(resp.Profiles))
	}
	if resp.Profiles[0].RiskTier != "90+" {
		t.Errorf("RiskTier = %s, expected 90+", resp.Profiles[0].RiskTier)
	}
	if resp.Profiles[0].LoanStatus != "Active" {
		t.Errorf("LoanStatus = %s, expected Active", resp.Profiles[0].LoanStatus)
	}
}

func TestHandleAnalyzeJSONEmptyBatch(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze/json", strings.NewReader(`[]`))
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400 for an empty batch", rec.Code)
	}
}

func TestHandleAnalyzeJSONMalformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze/json", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400 for malformed JSON", rec.Code)
	}
}

func TestHandleAnalyzeUpload(t *testing.T) {
	csvData := strings.Join([]string{
		"Account,Sanctioned,Outstanding,2024-01,2024-02,2024-03",
		"ACC1,100000,50000,0,45,0",
	}, "\n")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "portfolio.csv")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(csvData)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp analyzeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Profiles) != 1 {
		t.Fatalf("profiles = %d, expected 1", len(resp.Profiles))
	}
	if resp.Profiles[0].RiskTier != "30+" {
		t.Errorf("RiskTier = %s, expected 30+", resp.Profiles[0].RiskTier)
	}
	if resp.Profiles[0].SanctionedAmt != 100000 {
		t.Errorf("SanctionedAmt = %v, expected 100000", resp.Profiles[0].SanctionedAmt)
	}
}

func TestHandleAnalyzeUploadMissingFile(t *testing.T) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400 for a missing file", rec.Code)
	}
}

func TestHandleAnalyzeUploadBadCSV(t *testing.T) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("file", "bad.csv")
	_, _ = part.Write([]byte("Account,2024-01\nACC1,notanumber"))
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400 for a malformed CSV", rec.Code)
	}
}

func TestHandleVersion(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode version response: %v", err)
	}
	if payload["version"] != "test" {
		t.Errorf("version = %s, expected test", payload["version"])
	}
}

func TestHandlePolicy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/policy", nil)
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	body := rec.Body.String()
	for _, field := range []string{"lookaheadMonths", "tierThresholds", "tierLabels"} {
		if !strings.Contains(body, field) {
			t.Errorf("policy response missing %s; body: %s", field, body)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/analyze"},
		{http.MethodGet, "/api/analyze/json"},
		{http.MethodPost, "/api/policy"},
		{http.MethodPost, "/api/version"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			newTestHandler().ServeHTTP(rec, req)
			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, expected 405", rec.Code)
			}
		})
	}
}

func TestNewHandlerNilDefaults(t *testing.T) {
	// Nil logger and config must not panic.
	handler := NewHandler(nil, nil, "")
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode version response: %v", err)
	}
	if payload["version"] != "dev" {
		t.Errorf("version = %s, expected dev fallback", payload["version"])
	}
}
