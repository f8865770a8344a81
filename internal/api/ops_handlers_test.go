package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	rr, body := env.do(t, http.MethodGet, "/healthz")
	if rr.Code != http.StatusOK || body["status"] != "ok" {
		t.Errorf("unexpected response: %d %v", rr.Code, body)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected request id header")
	}
}

func TestInfoListsTemplates(t *testing.T) {
	env := newTestEnv(t)

	rr, body := env.do(t, http.MethodGet, "/api/info")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if body["service"] != "econbrief" || body["version"] != "test" {
		t.Errorf("unexpected info: %v", body)
	}
	templates, _ := body["templates"].([]any)
	if len(templates) != 5 {
		t.Errorf("templates = %v", templates)
	}
	if _, ok := body["inference"].(map[string]any); !ok {
		t.Errorf("expected inference stats, got %v", body["inference"])
	}
}

func TestInferenceLogsValidation(t *testing.T) {
	env := newTestEnv(t)

	rr, body := env.do(t, http.MethodGet, "/api/inference-logs?limit=-3")
	if rr.Code != http.StatusBadRequest || body["error"] != "limit: must be a non-negative integer" {
		t.Errorf("unexpected response: %d %v", rr.Code, body)
	}

	rr, body = env.do(t, http.MethodGet, "/api/inference-logs?operation=country_summary")
	if rr.Code != http.StatusOK || body["count"] != float64(0) {
		t.Errorf("unexpected response: %d %v", rr.Code, body)
	}
}

func TestMetricsAndUnknownRoutes(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodGet, "/country/Canada")
	rr, body := env.do(t, http.MethodGet, "/no/such/route")
	if rr.Code != http.StatusNotFound || body["error"] != "Not found" {
		t.Errorf("unexpected response: %d %v", rr.Code, body)
	}

	rr, body = env.do(t, http.MethodDelete, "/country/Canada")
	if rr.Code != http.StatusMethodNotAllowed || body["error"] != "Method not allowed" {
		t.Errorf("unexpected response: %d %v", rr.Code, body)
	}

	metricsRR := httptest.NewRecorder()
	env.router.ServeHTTP(metricsRR, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(metricsRR.Body.String(), `path="/country/{name}"`) {
		t.Errorf("expected route pattern label in metrics:\n%s", metricsRR.Body.String())
	}
}

func TestValidateCountryName(t *testing.T) {
	tests := map[string]string{
		"Canada":         "Canada",
		"  New Zealand ": "New Zealand",
		"Côte d'Ivoire":  "Côte d'Ivoire",
	}
	for in, want := range tests {
		got, err := ValidateCountryName(in)
		if err != nil || got != want {
			t.Errorf("ValidateCountryName(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	for _, bad := range []string{"", "   ", "a\nb", strings.Repeat("x", 256)} {
		if _, err := ValidateCountryName(bad); err == nil {
			t.Errorf("ValidateCountryName(%q) succeeded, want error", bad)
		}
	}
}
