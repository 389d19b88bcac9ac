// Package config loads the YAML tunables that sit around the key encoder
// and cell rebuilder: row-cache sizing overrides, renderer behavior, and
// the opt-in debug bridge. Grounded on the teacher's direct
// gopkg.in/yaml.v3 dependency.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CellCache overrides the row LRU's max(80, rows*10) sizing rule.
type CellCache struct {
	MinCapacity    int `yaml:"minCapacity"`
	CapacityPerRow int `yaml:"capacityPerRow"`
}

// Renderer carries renderer-wide behavior flags.
type Renderer struct {
	FontMetricsRefreshOnResize bool `yaml:"fontMetricsRefreshOnResize"`
}

// TLS configures the debug bridge's optional certmagic-managed TLS.
type TLS struct {
	Enabled bool `yaml:"enabled"`
}

// Tunnel configures the debug bridge's optional ngrok tunnel.
type Tunnel struct {
	Enabled   bool   `yaml:"enabled"`
	AuthToken string `yaml:"authtoken"`
}

// DebugBridge configures the opt-in HTTP+WebSocket diagnostics server.
type DebugBridge struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listenAddr"`
	TLS        TLS    `yaml:"tls"`
	Tunnel     Tunnel `yaml:"tunnel"`
}

// Config is the full set of tunables loaded from YAML.
type Config struct {
	CellCache   CellCache   `yaml:"cellCache"`
	Renderer    Renderer    `yaml:"renderer"`
	DebugBridge DebugBridge `yaml:"debugBridge"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		CellCache: CellCache{MinCapacity: 80, CapacityPerRow: 10},
		Renderer:  Renderer{FontMetricsRefreshOnResize: true},
		DebugBridge: DebugBridge{
			Enabled:    false,
			ListenAddr: "127.0.0.1:9797",
		},
	}
}

// RowCacheCapacity applies this config's overrides to a screen's row
// count, reproducing the max(minCapacity, rows*capacityPerRow) rule.
func (c Config) RowCacheCapacity(rows int) int {
	n := rows * c.CapacityPerRowOrDefault()
	if n < c.MinCapacityOrDefault() {
		return c.MinCapacityOrDefault()
	}
	return n
}

func (c Config) MinCapacityOrDefault() int {
	if c.CellCache.MinCapacity > 0 {
		return c.CellCache.MinCapacity
	}
	return 80
}

func (c Config) CapacityPerRowOrDefault() int {
	if c.CellCache.CapacityPerRow > 0 {
		return c.CellCache.CapacityPerRow
	}
	return 10
}

// Load reads and parses a YAML config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
