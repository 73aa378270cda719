package bizscan

import (
	"net/url"
	"time"
)

// Default settings.
const (
	DefaultBaseURL                   = "https://www.yelp.com"
	DefaultSearchPath                = "/search"
	DefaultTimeoutSeconds            = 10
	DefaultMaxResultsPerQuery        = 50
	DefaultMaxDetailRequestsPerQuery = 10
	DefaultUserAgent                 = "Mozilla/5.0 (compatible; bizscan/1.0)"
	DefaultBusinessPathPrefix        = "/biz/"
)

// Settings configures a scraping run.
type Settings struct {
	BaseURL                   string    `toml:"base_url"`
	SearchPath                string    `toml:"search_path"`
	TimeoutSeconds            int       `toml:"timeout_seconds"`
	MaxResultsPerQuery        int       `toml:"max_results_per_query"`
	MaxDetailRequestsPerQuery int       `toml:"max_detail_requests_per_query"`
	UserAgent                 string    `toml:"user_agent"`
	BusinessPathPrefix        string    `toml:"business_path_prefix"`
	Concurrency               int       `toml:"concurrency"`
	RequestsPerSecond         float64   `toml:"requests_per_second"`
	RetryDelaysSeconds        []float64 `toml:"retry_delays_seconds"`
}

// DefaultSettings returns settings used when no file overrides them.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:                   DefaultBaseURL,
		SearchPath:                DefaultSearchPath,
		TimeoutSeconds:            DefaultTimeoutSeconds,
		MaxResultsPerQuery:        DefaultMaxResultsPerQuery,
		MaxDetailRequestsPerQuery: DefaultMaxDetailRequestsPerQuery,
		UserAgent:                 DefaultUserAgent,
		BusinessPathPrefix:        DefaultBusinessPathPrefix,
		Concurrency:               1,
	}
}

// Validate returns an error if the settings cannot drive a run.
func (s *Settings) Validate() error {
	if s.BaseURL == "" {
		return Errorf(EINVALID, "base_url required")
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Errorf(EINVALID, "base_url must be an absolute URL: %q", s.BaseURL)
	}
	if s.TimeoutSeconds <= 0 {
		return Errorf(EINVALID, "timeout_seconds must be positive")
	}
	if s.MaxResultsPerQuery < 0 {
		return Errorf(EINVALID, "max_results_per_query must not be negative")
	}
	if s.MaxDetailRequestsPerQuery < 0 {
		return Errorf(EINVALID, "max_detail_requests_per_query must not be negative")
	}
	if s.Concurrency < 0 {
		return Errorf(EINVALID, "concurrency must not be negative")
	}
	for _, d := range s.RetryDelaysSeconds {
		if d < 0 {
			return Errorf(EINVALID, "retry_delays_seconds must not be negative")
		}
	}
	return nil
}

// Timeout returns the per-request timeout.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// RetryDelays returns the configured delays between fetch attempts.
func (s *Settings) RetryDelays() []time.Duration {
	delays := make([]time.Duration, 0, len(s.RetryDelaysSeconds))
	for _, d := range s.RetryDelaysSeconds {
		delays = append(delays, time.Duration(d*float64(time.Second)))
	}
	return delays
}
