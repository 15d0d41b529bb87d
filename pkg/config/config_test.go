package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsUsable(t *testing.T) {
	cfg := Default()
	assert.Equal(t, defaultQueryCacheSize, cfg.QueryCacheSize)
	assert.Equal(t, defaultQueryCacheTTL, cfg.QueryCacheTTL)
	assert.Equal(t, defaultMaxPathDepth, cfg.DefaultMaxPathDepth)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graphcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("query_cache_size: 50\nquery_cache_ttl: 30s\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.QueryCacheSize)
	assert.Equal(t, 30*time.Second, cfg.QueryCacheTTL)
	assert.Equal(t, defaultMaxPathDepth, cfg.DefaultMaxPathDepth)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
