package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mandalnilabja/mpgconverter/internal/conversion"
)

// isolate points the data dir and .env lookup at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("APPDATA", dir)
	t.Setenv("ENV_FILE_PATH", filepath.Join(dir, "missing.env"))
	for _, key := range []string{"SERVER_PORT", "ENABLE_WEB_UI", "BASE_PATH", "DEFAULT_UNIT",
		"ENABLE_USAGE_LOG", "RATE_LIMIT", "LOG_LEVEL", "LOG_FORMAT", "ADMIN_PASSWORD"} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg := Load()

	if cfg.ServerPort != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.ServerPort)
	}
	if !cfg.EnableWebUI {
		t.Error("expected web UI enabled by default")
	}
	if cfg.BasePath != "/mpg-converter" {
		t.Errorf("expected /mpg-converter, got %q", cfg.BasePath)
	}
	if cfg.DefaultUnit != conversion.ImperialMPG {
		t.Errorf("expected impmpg, got %q", cfg.DefaultUnit)
	}
	if cfg.RateLimit != 0 {
		t.Errorf("expected rate limit 0, got %d", cfg.RateLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)

	cfgDir := filepath.Join(dir, ".mpgconverter")
	if err := os.MkdirAll(cfgDir, 0700); err != nil {
		t.Fatal(err)
	}
	file := `
server_port = ":9000"
default_unit = "kpl"
rate_limit = 30
enable_web_ui = false
`
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(file), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SERVER_PORT", ":7000")
	t.Setenv("ENABLE_USAGE_LOG", "0")

	cfg := Load()

	if cfg.ServerPort != ":7000" {
		t.Errorf("env should win, got %q", cfg.ServerPort)
	}
	if cfg.DefaultUnit != conversion.KmPerLiter {
		t.Errorf("expected kpl from file, got %q", cfg.DefaultUnit)
	}
	if cfg.RateLimit != 30 {
		t.Errorf("expected rate limit 30 from file, got %d", cfg.RateLimit)
	}
	if cfg.EnableWebUI {
		t.Error("expected web UI disabled by file")
	}
	if cfg.EnableUsageLog {
		t.Error("expected usage log disabled by env")
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	envPath := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envPath, []byte("RATE_LIMIT=12\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ENV_FILE_PATH", envPath)
	os.Unsetenv("RATE_LIMIT")
	t.Cleanup(func() { os.Unsetenv("RATE_LIMIT") })

	cfg := Load()
	if cfg.RateLimit != 12 {
		t.Errorf("expected rate limit 12 from .env, got %d", cfg.RateLimit)
	}
}

func TestGetEnvBoolOrFile(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		fileValue *bool
		want      bool
	}{
		{"env true", "true", nil, true},
		{"env 1", "1", nil, true},
		{"env upper case", "TRUE", boolPtr(false), true},
		{"env 0", "0", nil, false},
		{"env false", "false", boolPtr(true), false},
		{"unparseable env falls back to file", "yes", boolPtr(false), false},
		{"unparseable env falls back to default", "maybe", nil, true},
		{"file value", "", boolPtr(false), false},
		{"default", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.env)
			if got := getEnvBoolOrFile("TEST_BOOL", tt.fileValue, true); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown unit", func(c *Config) { c.DefaultUnit = "mph" }, true},
		{"relative base path", func(c *Config) { c.BasePath = "mpg" }, true},
		{"empty base path", func(c *Config) { c.BasePath = "" }, false},
		{"negative rate limit", func(c *Config) { c.RateLimit = -1 }, true},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				ServerPort:  ":8080",
				BasePath:    "/mpg-converter",
				DefaultUnit: conversion.ImperialMPG,
				LogFormat:   "text",
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPrefix(t *testing.T) {
	for in, want := range map[string]string{"/mpg-converter/": "/mpg-converter", "/": "", "": ""} {
		c := &Config{BasePath: in}
		if got := c.Prefix(); got != want {
			t.Errorf("Prefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadFileFrom_Missing(t *testing.T) {
	cfg, err := LoadFileFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerPort != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func boolPtr(b bool) *bool { return &b }
