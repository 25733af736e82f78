package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/gaetanosm/lifetrack/internal/flagx"
	"github.com/gaetanosm/lifetrack/internal/timex"
)

// JsonConfig is the DTO for JSON unmarshalling. timex.Duration lets the file
// spell intervals either as "24h" or as integer nanoseconds.
type JsonConfig struct {
	EndpointURL   string         `json:"endpoint_url"`
	CacheDSN      string         `json:"cache_dsn"`
	SessionSecret string         `json:"session_secret"`
	SessionTTL    timex.Duration `json:"session_ttl"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flags. Absent file path means no overlay. Only fields present
// in the file override the current values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointURL != "" {
		cfg.EndpointURL = jc.EndpointURL
	}
	if jc.CacheDSN != "" {
		cfg.CacheDSN = jc.CacheDSN
	}
	if jc.SessionSecret != "" {
		cfg.SessionSecret = jc.SessionSecret
	}
	if jc.SessionTTL.Duration != 0 {
		cfg.SessionTTL = time.Duration(jc.SessionTTL.Duration)
	}
}
