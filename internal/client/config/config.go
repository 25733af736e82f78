// Package config handles configuration for the client: defaults, JSON
// overlay, and command-line flags, later sources taking precedence.
package config

import "time"

// Config holds runtime settings for the Lifetrack client.
//
// Fields:
//   - EndpointURL: base URL of the document service records endpoint.
//   - CacheDSN: SQLite DSN of the local fallback cache.
//   - SessionSecret: HMAC secret for signing session tokens.
//   - SessionTTL: session token lifetime.
type Config struct {
	EndpointURL   string
	CacheDSN      string
	SessionSecret string
	SessionTTL    time.Duration
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointURL = "http://127.0.0.1:8080/api/records"
	c.CacheDSN = "lifetrack.db"
	c.SessionSecret = "dev-session-secret"
	c.SessionTTL = 24 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file is given) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
