package infra

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRootStatus(t *testing.T) {
	tests := []struct {
		name      string
		webUI     bool
		prefix    string
		wantWebUI bool
		wantBase  bool
	}{
		{"web ui enabled", true, "", true, false},
		{"web ui disabled", false, "", false, false},
		{"with base path", true, "/mpg-converter", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(time.Now(), tt.webUI, tt.prefix)
			rec := httptest.NewRecorder()
			h.RootStatus(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}

			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body["name"] != "mpgconverter" {
				t.Errorf("expected name mpgconverter, got %v", body["name"])
			}
			if _, ok := body["web_ui"]; ok != tt.wantWebUI {
				t.Errorf("web_ui present = %v, want %v", ok, tt.wantWebUI)
			}
			if _, ok := body["base_path"]; ok != tt.wantBase {
				t.Errorf("base_path present = %v, want %v", ok, tt.wantBase)
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	h := New(time.Now().Add(-time.Minute), false, "")
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "active" {
		t.Errorf("expected status active, got %v", body["status"])
	}
	if up, _ := body["uptime_secs"].(float64); up < 60 {
		t.Errorf("expected uptime of at least 60s, got %v", body["uptime_secs"])
	}
}
