package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the ETF ingestion service.
type Config struct {
	// API credential and storage target; both resolved once at startup
	AlphavantageAPIKey string `mapstructure:"alphavantage_api_key"`
	BucketName         string `mapstructure:"gcs_bucket_name"`

	// Base URL for the upstream API (configurable for testing)
	AlphavantageBaseURL string `mapstructure:"alphavantage_base_url"`

	HTTPPort        int  `mapstructure:"http_port"`
	IncludeHoldings bool `mapstructure:"include_holdings"`

	// StorageDir switches artifact storage to a local directory instead of
	// GCS, for development runs
	StorageDir string `mapstructure:"storage_dir"`

	// Symbols is the fallback list for batch runs without an event payload,
	// parsed from a comma-separated value
	Symbols []string `mapstructure:"-"`
}

// Load reads configuration from environment variables and an optional config
// file. Environment variables take precedence over config file values.
//
// Expected environment variables:
//   - ALPHAVANTAGE_API_KEY (required)
//   - GCS_BUCKET_NAME (required unless STORAGE_DIR is set)
//   - ALPHAVANTAGE_BASE_URL (optional, defaults to production)
//   - HTTP_PORT (optional, defaults to 8080)
//   - ETF_SYMBOLS (optional, comma-separated, e.g. "QQQ,SPY,VTI")
//   - INCLUDE_HOLDINGS (optional, defaults to true)
//   - STORAGE_DIR (optional, store artifacts under a local directory)
func Load() (*Config, error) {
	v := viper.New()

	// Set up environment variable support
	v.SetEnvPrefix("") // No prefix, use full names
	v.AutomaticEnv()

	v.SetDefault("alphavantage_base_url", "https://www.alphavantage.co/query")
	v.SetDefault("http_port", 8080)
	v.SetDefault("include_holdings", true)

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.etfingest")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	v.BindEnv("alphavantage_api_key", "ALPHAVANTAGE_API_KEY")
	v.BindEnv("gcs_bucket_name", "GCS_BUCKET_NAME")
	v.BindEnv("alphavantage_base_url", "ALPHAVANTAGE_BASE_URL")
	v.BindEnv("http_port", "HTTP_PORT")
	v.BindEnv("etf_symbols", "ETF_SYMBOLS")
	v.BindEnv("include_holdings", "INCLUDE_HOLDINGS")
	v.BindEnv("storage_dir", "STORAGE_DIR")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Symbols = splitSymbols(v.GetString("etf_symbols"))

	// Validate required fields
	var missing []string
	if config.AlphavantageAPIKey == "" {
		missing = append(missing, "ALPHAVANTAGE_API_KEY")
	}
	if config.BucketName == "" && config.StorageDir == "" {
		missing = append(missing, "GCS_BUCKET_NAME")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return config, nil
}

func splitSymbols(raw string) []string {
	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}
