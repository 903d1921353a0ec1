package types

import "time"

// Defaults applied by DefaultSearchConfig.
const (
	DefaultBaseURL           = "https://dl.acm.org"
	DefaultTimeout           = 10 * time.Second
	DefaultNavigationTimeout = 30 * time.Second
	DefaultConsentTimeout    = 5 * time.Second
	DefaultMaxResults        = 20
	DefaultOutputFile        = "results.json"
)

// SearchConfig holds settings for the searcher and its browser session.
type SearchConfig struct {
	// DriverPath is an explicit path to the Chrome/Chromium executable.
	// When empty the executable is looked up on PATH.
	DriverPath string `json:"driver_path,omitempty" yaml:"driver_path,omitempty" mapstructure:"driver_path"`

	// BaseURL is the search site's home page (default https://dl.acm.org).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds the wait for the results page to render (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// NavigationTimeout bounds loading the home page (default 30s).
	NavigationTimeout time.Duration `json:"navigation_timeout" yaml:"navigation_timeout" mapstructure:"navigation_timeout"`

	// ConsentTimeout bounds the best-effort cookie dialog dismissal (default 5s).
	ConsentTimeout time.Duration `json:"consent_timeout" yaml:"consent_timeout" mapstructure:"consent_timeout"`

	// Headless runs the browser without a window (default true).
	Headless bool `json:"headless" yaml:"headless" mapstructure:"headless"`

	// NoSandbox disables the Chrome sandbox, which is required when running
	// as root inside containers.
	NoSandbox bool `json:"no_sandbox,omitempty" yaml:"no_sandbox,omitempty" mapstructure:"no_sandbox"`

	// UserAgent overrides the browser's User-Agent when set.
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty" mapstructure:"user_agent"`

	// MaxResults is the default N for top-N searches from the CLI (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// DefaultSearchConfig returns a SearchConfig with every default filled in.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		BaseURL:           DefaultBaseURL,
		Timeout:           DefaultTimeout,
		NavigationTimeout: DefaultNavigationTimeout,
		ConsentTimeout:    DefaultConsentTimeout,
		Headless:          true,
		MaxResults:        DefaultMaxResults,
	}
}

// WithDefaults returns a copy of c where zero-valued durations, base URL and
// max results are replaced by their defaults.
func (c SearchConfig) WithDefaults() SearchConfig {
	d := DefaultSearchConfig()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.NavigationTimeout <= 0 {
		c.NavigationTimeout = d.NavigationTimeout
	}
	if c.ConsentTimeout <= 0 {
		c.ConsentTimeout = d.ConsentTimeout
	}
	if c.MaxResults <= 0 {
		c.MaxResults = d.MaxResults
	}
	return c
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}
