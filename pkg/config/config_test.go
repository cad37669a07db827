package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 3, cfg.PriceMaxRetries)
	assert.Equal(t, 2*time.Second, cfg.DealDetailDelay())
	assert.Equal(t, 20*time.Second, cfg.ToggleWait())
	assert.True(t, cfg.AntiBotTransport)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, []string{"Dallas", "DFW"}, cfg.OriginKeywords())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PRICE_MAX_RETRIES", "5")
	t.Setenv("DEAL_ORIGIN_KEYWORDS", " Houston , ,IAH")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 5, cfg.PriceMaxRetries)
	assert.Equal(t, []string{"Houston", "IAH"}, cfg.OriginKeywords())
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ORIGIN_AIRPORT=IAH\nTOGGLE_WAIT_SECONDS=5\n"), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "IAH", cfg.OriginAirport)
	assert.Equal(t, 5*time.Second, cfg.ToggleWait())
}

func TestLoadRejectsMalformedEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ORIGIN_AIRPORT=IAH\nthis is not an env line\n"), 0o644))

	cfg, err := LoadFrom(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
