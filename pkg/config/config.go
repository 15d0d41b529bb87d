// Package config loads the engine's tunables — cache sizing/TTL, traversal
// depth ceiling, and default shortest-path depth — from an optional YAML file.
// The zero value of EngineConfig is a fully functional default: no file is
// required to embed graphcore in a host process.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EngineConfig holds every tunable the mutation engine and its kernels
// consult. Durations are parsed from YAML as Go duration strings ("5m").
type EngineConfig struct {
	// QueryCacheSize bounds the number of memoized traverse/shortest_path
	// results kept at once. Zero means "use the default of 10000".
	QueryCacheSize int `yaml:"query_cache_size"`

	// QueryCacheTTL bounds how long a memoized result stays eligible for
	// reuse after insertion. Zero means "use the default of 5 minutes".
	QueryCacheTTL time.Duration `yaml:"query_cache_ttl"`

	// MaxTraversalDepth is an optional hard ceiling a host may impose on
	// top of whatever depth a caller requests, to bound worst-case BFS
	// fan-out. Zero means "no additional ceiling beyond the caller's own
	// depth argument".
	MaxTraversalDepth int `yaml:"max_traversal_depth"`

	// DefaultMaxPathDepth is used by shortest_path callers that do not
	// specify max_depth explicitly. Zero means "use the default of 10".
	DefaultMaxPathDepth int `yaml:"default_max_path_depth"`
}

const (
	defaultQueryCacheSize  = 10_000
	defaultQueryCacheTTL   = 5 * time.Minute
	defaultMaxPathDepth    = 10
	defaultMaxTraverseDeep = 0 // 0 == unbounded beyond the caller's own depth
)

// Default returns the configuration graphcore uses when no file is loaded.
func Default() EngineConfig {
	return EngineConfig{
		QueryCacheSize:      defaultQueryCacheSize,
		QueryCacheTTL:       defaultQueryCacheTTL,
		MaxTraversalDepth:   defaultMaxTraverseDeep,
		DefaultMaxPathDepth: defaultMaxPathDepth,
	}
}

// Load reads and parses an EngineConfig from a YAML file at path, filling
// any field left at its zero value with the corresponding default.
func Load(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero-valued fields after a YAML unmarshal, so a
// config file only needs to mention the fields it wants to override.
func (c *EngineConfig) applyDefaults() {
	if c.QueryCacheSize <= 0 {
		c.QueryCacheSize = defaultQueryCacheSize
	}
	if c.QueryCacheTTL <= 0 {
		c.QueryCacheTTL = defaultQueryCacheTTL
	}
	if c.DefaultMaxPathDepth <= 0 {
		c.DefaultMaxPathDepth = defaultMaxPathDepth
	}
}
