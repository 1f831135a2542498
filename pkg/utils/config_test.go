package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.API.Addr)
	assert.Equal(t, "https://api.rawg.io/api", cfg.Catalog.BaseURL)
	assert.Equal(t, 12*time.Second, cfg.Catalog.Timeout)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  addr: ":9090"
catalog:
  api_key: from-file
  locale: en
  timeout: 3s
`), 0o600))
	t.Setenv("GAMEBOXD_CATALOG_KEY", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.API.Addr)
	assert.Equal(t, "from-env", cfg.Catalog.APIKey)
	assert.Equal(t, "en", cfg.Catalog.Locale)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	// untouched sections keep their defaults
	assert.Equal(t, "gameboxd", cfg.Auth.JWTIssuer)
}

func TestLoadConfigBadEnv(t *testing.T) {
	t.Setenv("GAMEBOXD_CATALOG_BURST", "lots")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
