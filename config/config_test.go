package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range GetEnvVars() {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed with defaults: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("expected default address 127.0.0.1, got %s", cfg.Address)
	}
	if cfg.KlifsBaseURL != "https://klifs.net/api" {
		t.Errorf("expected default KLIFS base URL, got %s", cfg.KlifsBaseURL)
	}
	if cfg.ExportDir != "exports" {
		t.Errorf("expected default export dir, got %s", cfg.ExportDir)
	}
	if cfg.FetchTimeout != 300*time.Second {
		t.Errorf("expected default fetch timeout 300s, got %s", cfg.FetchTimeout)
	}
	if cfg.LogRetentionWeeks != 4 {
		t.Errorf("expected default log retention 4 weeks, got %d", cfg.LogRetentionWeeks)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"non-numeric port", "PORT", "abc", "PORT"},
		{"privileged port", "PORT", "80", "privileged"},
		{"port out of range", "PORT", "70000", "between 1 and 65535"},
		{"bad address", "ADDRESS", "not-an-ip", "ADDRESS"},
		{"bad env", "ENV", "production!", "ENV"},
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"zero retention", "LOG_RETENTION_WEEKS", "0", "LOG_RETENTION_WEEKS"},
		{"huge retention", "LOG_RETENTION_WEEKS", "104", "LOG_RETENTION_WEEKS"},
		{"bad base url scheme", "KLIFS_BASE_URL", "ftp://klifs.net/api", "http or https"},
		{"base url without host", "KLIFS_BASE_URL", "https://", "host"},
		{"blank export dir", "EXPORT_DIR", "   ", "EXPORT_DIR"},
		{"zero fetch timeout", "FETCH_TIMEOUT_SECONDS", "0", "FETCH_TIMEOUT_SECONDS"},
		{"huge fetch timeout", "FETCH_TIMEOUT_SECONDS", "7200", "FETCH_TIMEOUT_SECONDS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range GetEnvVars() {
				t.Setenv(key, "")
			}
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadAcceptsCustomValues(t *testing.T) {
	for _, key := range GetEnvVars() {
		t.Setenv(key, "")
	}
	t.Setenv("PORT", "9000")
	t.Setenv("KLIFS_BASE_URL", "http://localhost:8080/api")
	t.Setenv("EXPORT_DIR", "/var/lib/klifs/exports")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "60")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if cfg.KlifsBaseURL != "http://localhost:8080/api" {
		t.Errorf("unexpected base URL: %s", cfg.KlifsBaseURL)
	}
	if cfg.ExportDir != "/var/lib/klifs/exports" {
		t.Errorf("unexpected export dir: %s", cfg.ExportDir)
	}
	if cfg.FetchTimeout != time.Minute {
		t.Errorf("unexpected fetch timeout: %s", cfg.FetchTimeout)
	}
}
