package config

import (
	"errors"
	"time"
)

var ErrAPIBaseURLNotSet = errors.New("API base URL is not set (use -a, API_URL or api_base_url)")

// Config holds runtime settings for the CLI.
//
// APIBaseURL is an opaque string; it is only trimmed of one trailing slash
// when requests are built. AssetBaseURL falls back to APIBaseURL. CellWidth
// is the pixel width of one terminal column, used when the terminal does
// not report pixels.
type Config struct {
	APIBaseURL     string
	AssetBaseURL   string
	StateDBPath    string
	RequestTimeout time.Duration
	LogLevel       string
	CellWidth      int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StateDBPath = "state.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.CellWidth = 8
}

// Validate reports settings the CLI cannot start without and fills the
// derived ones.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return ErrAPIBaseURLNotSet
	}
	if c.AssetBaseURL == "" {
		c.AssetBaseURL = c.APIBaseURL
	}
	if c.CellWidth <= 0 {
		c.CellWidth = 8
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, ".env")
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
