// Package config holds runtime configuration for the document service,
// sourced from the environment with optional .env loading.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the document service.
type Config struct {
	Addr              string
	DataFile          string
	AssistantEndpoint string
	AssistantAPIKey   string
	AssistantTimeout  time.Duration
	CORSOrigins       []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:              fallback(os.Getenv("LIFETRACK_ADDR"), ":8080"),
		DataFile:          fallback(os.Getenv("LIFETRACK_DATA_FILE"), "data.json"),
		AssistantEndpoint: strings.TrimSpace(os.Getenv("LIFETRACK_ASSISTANT_ENDPOINT")),
		AssistantAPIKey:   strings.TrimSpace(os.Getenv("LIFETRACK_ASSISTANT_API_KEY")),
		AssistantTimeout:  30 * time.Second,
		CORSOrigins:       parseCSV(fallback(os.Getenv("LIFETRACK_CORS_ORIGINS"), "*")),
	}

	if d, err := time.ParseDuration(os.Getenv("LIFETRACK_ASSISTANT_TIMEOUT")); err == nil && d > 0 {
		cfg.AssistantTimeout = d
	}

	if cfg.DataFile == "" {
		return Config{}, fmt.Errorf("LIFETRACK_DATA_FILE must not be empty")
	}
	return cfg, nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
