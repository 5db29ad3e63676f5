// Package config defines service configuration structures and loading hooks.
//
// Configuration layers defaults, an optional YAML file, and MOUND_-prefixed
// environment variables, highest layer winning. External errors are wrapped
// via this package's sentinels.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SavantBaseURL points at the Statcast CSV export host.
	SavantBaseURL string `koanf:"savant_base_url"`

	// StatsAPIBaseURL points at the MLB Stats API host for name lookups.
	StatsAPIBaseURL string `koanf:"stats_api_base_url"`

	// FetchTimeoutSec bounds one upstream HTTP request.
	FetchTimeoutSec int `koanf:"fetch_timeout_sec"`

	// FetchPageSpanDays sets how many days one CSV export request covers.
	FetchPageSpanDays int `koanf:"fetch_page_span_days"`

	// DedupeSize bounds the per-fetch duplicate-suppression memory.
	DedupeSize int `koanf:"dedupe_size"`

	// DefaultTopN is used when a similarity query omits top_n.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxTopN caps top_n on the query surface.
	MaxTopN int `koanf:"max_top_n"`

	// SimilarityFeatures orders the coordinate axes of the distance
	// metric. Empty means the built-in six-feature default.
	SimilarityFeatures []string `koanf:"similarity_features"`

	// Normalize enables z-score standardization of the metric. Off by
	// default: raw Euclidean matches the historical behavior.
	Normalize bool `koanf:"normalize"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9090",
		SavantBaseURL:     "https://baseballsavant.mlb.com",
		StatsAPIBaseURL:   "https://statsapi.mlb.com",
		FetchTimeoutSec:   60,
		FetchPageSpanDays: 5,
		DedupeSize:        200_000,
		DefaultTopN:       5,
		MaxTopN:           50,
		Normalize:         false,
	}
}
