package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"testing"

	"github.com/akachour/wird/internal/api/dto"
	"github.com/akachour/wird/internal/core/domain"
)

func TestCompletionReport(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	env.signup(t, "ali", "secret123")
	env.signup(t, "fatima", "secret456")
	aliToken := env.login(t, "ali", "secret123")
	fatimaToken := env.login(t, "fatima", "secret456")
	adminToken := env.login(t, "admin", "admin123")

	// ali: 3 of 4 completed; fatima: 0 of 1
	for _, completed := range []bool{true, true, false, true} {
		env.submitEntry(t, aliToken, dto.CreateEntryRequest{SalahCompleted: completed})
	}
	env.submitEntry(t, fatimaToken, dto.CreateEntryRequest{SalahCompleted: false})

	w := env.makeRequest(t, http.MethodGet, "/admin/reports/completion", nil, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.CompletionReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if rate := resp.CompletionRate["ali"]; math.Abs(rate-75.0) > 0.0001 {
		t.Errorf("expected 75.0 for ali, got %v", rate)
	}
	if rate := resp.CompletionRate["fatima"]; math.Abs(rate) > 0.0001 {
		t.Errorf("expected 0.0 for fatima, got %v", rate)
	}

	// Users without entries are absent, not reported as zero
	if _, present := resp.CompletionRate["admin"]; present {
		t.Error("expected admin to be absent from the report")
	}
}

func TestCompletionReportEmptyLedger(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	adminToken := env.login(t, "admin", "admin123")

	w := env.makeRequest(t, http.MethodGet, "/admin/reports/completion", nil, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp dto.CompletionReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.CompletionRate) != 0 {
		t.Errorf("expected an empty report, got %v", resp.CompletionRate)
	}
}

func TestTotalsReport(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	env.signup(t, "ali", "secret123")
	env.signup(t, "fatima", "secret456")
	aliToken := env.login(t, "ali", "secret123")
	fatimaToken := env.login(t, "fatima", "secret456")
	adminToken := env.login(t, "admin", "admin123")

	env.submitEntry(t, aliToken, dto.CreateEntryRequest{AlAsaasCount: 10, FatihaCount: 3})
	env.submitEntry(t, aliToken, dto.CreateEntryRequest{AlAsaasCount: 5, ZikrMufrithCount: 100})
	env.submitEntry(t, fatimaToken, dto.CreateEntryRequest{AlAsaasCount: 7, MarbootaShareefCount: 2})

	w := env.makeRequest(t, http.MethodGet, "/admin/reports/totals", nil, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.TotalsReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if len(resp.Totals) != len(domain.CounterNames) {
		t.Fatalf("expected %d counters, got %d", len(domain.CounterNames), len(resp.Totals))
	}
	if got := resp.Totals[domain.CounterAlAsaas]["ali"]; got != 15 {
		t.Errorf("expected al_asaas_count 15 for ali, got %d", got)
	}
	if got := resp.Totals[domain.CounterAlAsaas]["fatima"]; got != 7 {
		t.Errorf("expected al_asaas_count 7 for fatima, got %d", got)
	}
	if got := resp.Totals[domain.CounterZikrMufrith]["ali"]; got != 100 {
		t.Errorf("expected zikr_mufrith_count 100 for ali, got %d", got)
	}
	if got := resp.Totals[domain.CounterMarbootaShareef]["fatima"]; got != 2 {
		t.Errorf("expected marboota_shareef_count 2 for fatima, got %d", got)
	}
}

func TestTotalsReportSingleCounter(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	env.signup(t, "ali", "secret123")
	aliToken := env.login(t, "ali", "secret123")
	adminToken := env.login(t, "admin", "admin123")

	env.submitEntry(t, aliToken, dto.CreateEntryRequest{FatihaCount: 3})

	w := env.makeRequest(t, http.MethodGet, "/admin/reports/totals?counter=fatiha_count", nil, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.TotalsReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Totals) != 1 {
		t.Fatalf("expected only the requested counter, got %d", len(resp.Totals))
	}
	if got := resp.Totals[domain.CounterFatiha]["ali"]; got != 3 {
		t.Errorf("expected fatiha_count 3 for ali, got %d", got)
	}
}

func TestTotalsReportUnknownCounter(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	adminToken := env.login(t, "admin", "admin123")

	w := env.makeRequest(t, http.MethodGet, "/admin/reports/totals?counter=steps_count", nil, adminToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestReportsRequireAdmin(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	env.signup(t, "ali", "secret123")
	token := env.login(t, "ali", "secret123")

	for _, path := range []string{"/admin/reports/completion", "/admin/reports/totals"} {
		w := env.makeRequest(t, http.MethodGet, path, nil, token)
		if w.Code != http.StatusForbidden {
			t.Errorf("%s: expected status 403 for a non-admin, got %d", path, w.Code)
		}
	}
}
