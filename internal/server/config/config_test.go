package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LIFETRACK_ADDR", "")
	t.Setenv("LIFETRACK_DATA_FILE", "")
	t.Setenv("LIFETRACK_CORS_ORIGINS", "")
	t.Setenv("LIFETRACK_ASSISTANT_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "data.json", cfg.DataFile)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.AssistantTimeout)
	assert.Empty(t, cfg.AssistantAPIKey)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LIFETRACK_ADDR", ":9090")
	t.Setenv("LIFETRACK_DATA_FILE", "/var/lib/lifetrack/data.json")
	t.Setenv("LIFETRACK_CORS_ORIGINS", "https://app.example.com, https://staging.example.com")
	t.Setenv("LIFETRACK_ASSISTANT_TIMEOUT", "5s")
	t.Setenv("LIFETRACK_ASSISTANT_API_KEY", "k")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/var/lib/lifetrack/data.json", cfg.DataFile)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.AssistantTimeout)
	assert.Equal(t, "k", cfg.AssistantAPIKey)
}
