package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mandalnilabja/mpgconverter/internal/conversion"
	"github.com/mandalnilabja/mpgconverter/internal/storage"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/handler"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/middleware/auth"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/middleware/ratelimit"
	"github.com/mandalnilabja/mpgconverter/internal/usage"
)

const testAdminPassword = "adminpass123"

type testEnv struct {
	router http.Handler
	store  storage.Storage
}

func setupRouter(t *testing.T, limiter *ratelimit.Limiter) *testEnv {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	hash, err := storage.HashPassword(testAdminPassword, &storage.Argon2Params{
		Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if err := store.SetAdminPasswordHash(hash); err != nil {
		t.Fatalf("SetAdminPasswordHash failed: %v", err)
	}

	tokenCache, err := auth.NewTokenCache()
	if err != nil {
		t.Fatalf("NewTokenCache failed: %v", err)
	}
	t.Cleanup(tokenCache.Close)

	repo, err := handler.NewRepo(handler.Options{
		DefaultUnit: conversion.ImperialMPG,
		Prefix:      "/mpg-converter",
		EnableWebUI: true,
		Storage:     store,
		Recorder:    usage.NewRecorder(store, nil),
		TokenCache:  tokenCache,
	})
	if err != nil {
		t.Fatalf("NewRepo failed: %v", err)
	}

	router := NewRouter(repo, &RouterOptions{
		Prefix:     "/mpg-converter",
		Storage:    store,
		TokenCache: tokenCache,
		Limiter:    limiter,
	})
	return &testEnv{router: router, store: store}
}

func (e *testEnv) do(method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Routes(t *testing.T) {
	env := setupRouter(t, nil)
	bearer := map[string]string{"Authorization": "Bearer " + testAdminPassword}

	tests := []struct {
		name       string
		method     string
		target     string
		header     map[string]string
		wantStatus int
		wantBody   string
	}{
		{"root status", http.MethodGet, "/", nil, http.StatusOK, `"name":"mpgconverter"`},
		{"prefixed root", http.MethodGet, "/mpg-converter", nil, http.StatusOK, `"name":"mpgconverter"`},
		{"prefixed root slash", http.MethodGet, "/mpg-converter/", nil, http.StatusOK, `"name":"mpgconverter"`},
		{"health", http.MethodGet, "/api/health", nil, http.StatusOK, `"status":"active"`},
		{"units", http.MethodGet, "/api/units", nil, http.StatusOK, `"default_unit":"impmpg"`},
		{"convert", http.MethodGet, "/api/convert?value=10&unit=impmpg", nil, http.StatusOK, `"kpl":"3.54"`},
		{"prefixed convert", http.MethodGet, "/mpg-converter/api/convert?value=8&unit=lper100km", nil, http.StatusOK, `"kpl":"12.50"`},
		{"invalid input is not an error", http.MethodGet, "/api/convert?value=abc", nil, http.StatusOK, `"valid":false`},
		{"web ui", http.MethodGet, "/web/", nil, http.StatusOK, `data-api="/api/convert"`},
		{"prefixed web ui", http.MethodGet, "/mpg-converter/web", nil, http.StatusOK, `data-api="/mpg-converter/api/convert"`},
		{"unknown path", http.MethodGet, "/nope", nil, http.StatusNotFound, ""},
		{"wrong method", http.MethodPost, "/api/units", nil, http.StatusMethodNotAllowed, ""},
		{"admin without auth", http.MethodGet, "/api/admin/usage", nil, http.StatusUnauthorized, ""},
		{"admin wrong password", http.MethodGet, "/api/admin/usage", map[string]string{"Authorization": "Bearer wrongpass1"}, http.StatusUnauthorized, ""},
		{"admin usage", http.MethodGet, "/api/admin/usage", bearer, http.StatusOK, `"total_requests"`},
		{"prefixed admin health", http.MethodGet, "/mpg-converter/api/admin/health", bearer, http.StatusOK, `"status":"healthy"`},
		{"cors preflight", http.MethodOptions, "/api/convert", nil, http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(tt.method, tt.target, tt.header)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("expected body to contain %s, got %s", tt.wantBody, rec.Body.String())
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Error("expected X-Request-ID header")
			}
		})
	}
}

func TestRouter_ConvertIsRecorded(t *testing.T) {
	env := setupRouter(t, nil)

	env.do(http.MethodGet, "/api/convert?value=10&unit=kpl", nil)
	env.do(http.MethodGet, "/api/convert?value=&unit=kpl&source=form", nil)

	logs, err := env.store.GetRequestLogs(storage.LogFilter{})
	if err != nil {
		t.Fatalf("GetRequestLogs failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	for _, l := range logs {
		if l.RequestID == "" {
			t.Error("expected request ID to be recorded")
		}
	}
}

func TestRouter_RateLimit(t *testing.T) {
	env := setupRouter(t, ratelimit.New(1))

	first := env.do(http.MethodGet, "/api/convert?value=1", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", first.Code)
	}

	second := env.do(http.MethodGet, "/api/convert?value=1", nil)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}

	// Non-conversion routes are not throttled.
	if rec := env.do(http.MethodGet, "/api/health", nil); rec.Code != http.StatusOK {
		t.Errorf("expected health to bypass the limiter, got %d", rec.Code)
	}
}

func TestRouter_WithoutStorage(t *testing.T) {
	repo, err := handler.NewRepo(handler.Options{DefaultUnit: conversion.USMPG})
	if err != nil {
		t.Fatalf("NewRepo failed: %v", err)
	}
	router := NewRouter(repo, nil)

	tests := []struct {
		target     string
		wantStatus int
	}{
		{"/api/convert?value=30", http.StatusOK},
		{"/api/admin/usage", http.StatusNotFound},
		{"/web/", http.StatusNotFound},
		{"/mpg-converter/api/convert", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/convert?value=30", nil))
	var body struct {
		Unit    string            `json:"unit"`
		Results map[string]string `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Unit != "usmpg" || body.Results["usmpg"] != "30.00" {
		t.Errorf("expected default unit usmpg, got %+v", body)
	}
}
