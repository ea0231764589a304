package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestLoad_Success(t *testing.T) {
	envVars := map[string]string{
		"ALPHAVANTAGE_API_KEY":  "test_alphavantage_key",
		"GCS_BUCKET_NAME":       "test-bucket",
		"ALPHAVANTAGE_BASE_URL": "https://test.alphavantage.co",
		"HTTP_PORT":             "9090",
		"ETF_SYMBOLS":           "QQQ, SPY,VTI",
	}

	for key, value := range envVars {
		os.Setenv(key, value)
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"AlphavantageAPIKey", cfg.AlphavantageAPIKey, "test_alphavantage_key"},
		{"BucketName", cfg.BucketName, "test-bucket"},
		{"AlphavantageBaseURL", cfg.AlphavantageBaseURL, "https://test.alphavantage.co"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}

	if cfg.HTTPPort != 9090 {
		t.Errorf("HTTPPort = %d, want 9090", cfg.HTTPPort)
	}
	if want := []string{"QQQ", "SPY", "VTI"}; !reflect.DeepEqual(cfg.Symbols, want) {
		t.Errorf("Symbols = %v, want %v", cfg.Symbols, want)
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	requiredVars := map[string]string{
		"ALPHAVANTAGE_API_KEY": "test_alphavantage_key",
		"GCS_BUCKET_NAME":      "test-bucket",
	}
	for key, value := range requiredVars {
		os.Setenv(key, value)
		defer os.Unsetenv(key)
	}

	optionalVars := []string{"ALPHAVANTAGE_BASE_URL", "HTTP_PORT", "ETF_SYMBOLS", "INCLUDE_HOLDINGS", "STORAGE_DIR"}
	for _, key := range optionalVars {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.AlphavantageBaseURL != "https://www.alphavantage.co/query" {
		t.Errorf("AlphavantageBaseURL = %q, want production default", cfg.AlphavantageBaseURL)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if !cfg.IncludeHoldings {
		t.Error("IncludeHoldings should default to true")
	}
	if len(cfg.Symbols) != 0 {
		t.Errorf("Symbols = %v, want empty", cfg.Symbols)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{"ALPHAVANTAGE_API_KEY", "GCS_BUCKET_NAME", "STORAGE_DIR"} {
		os.Unsetenv(key)
	}

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for missing configuration, got nil")
	}

	for _, want := range []string{"ALPHAVANTAGE_API_KEY", "GCS_BUCKET_NAME"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error = %q, want it to name %s", err, want)
		}
	}
}

func TestLoad_StorageDirReplacesBucket(t *testing.T) {
	os.Setenv("ALPHAVANTAGE_API_KEY", "test_alphavantage_key")
	os.Setenv("STORAGE_DIR", "/tmp/etf-artifacts")
	defer os.Unsetenv("ALPHAVANTAGE_API_KEY")
	defer os.Unsetenv("STORAGE_DIR")
	os.Unsetenv("GCS_BUCKET_NAME")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.StorageDir != "/tmp/etf-artifacts" {
		t.Errorf("StorageDir = %q, want /tmp/etf-artifacts", cfg.StorageDir)
	}
}

func TestSplitSymbols(t *testing.T) {
	tests := []struct {
		raw      string
		expected []string
	}{
		{"", nil},
		{"QQQ", []string{"QQQ"}},
		{"QQQ,SPY,VTI", []string{"QQQ", "SPY", "VTI"}},
		{" QQQ , SPY ,, ", []string{"QQQ", "SPY"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := splitSymbols(tt.raw); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("splitSymbols(%q) = %v, want %v", tt.raw, got, tt.expected)
			}
		})
	}
}
