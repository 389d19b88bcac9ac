package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cellCache:
  minCapacity: 120
  capacityPerRow: 12
renderer:
  fontMetricsRefreshOnResize: false
debugBridge:
  enabled: true
  listenAddr: "0.0.0.0:9797"
  tls:
    enabled: true
  tunnel:
    enabled: true
    authtoken: "tok"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 120, cfg.CellCache.MinCapacity)
	require.Equal(t, 12, cfg.CellCache.CapacityPerRow)
	require.False(t, cfg.Renderer.FontMetricsRefreshOnResize)
	require.True(t, cfg.DebugBridge.Enabled)
	require.Equal(t, "0.0.0.0:9797", cfg.DebugBridge.ListenAddr)
	require.True(t, cfg.DebugBridge.TLS.Enabled)
	require.True(t, cfg.DebugBridge.Tunnel.Enabled)
	require.Equal(t, "tok", cfg.DebugBridge.Tunnel.AuthToken)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestRowCacheCapacityAppliesMinimum(t *testing.T) {
	cfg := Default()
	require.Equal(t, 80, cfg.RowCacheCapacity(1))
	require.Equal(t, 500, cfg.RowCacheCapacity(50))
}

func TestWatchFileDebouncesBurstOfWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cellCache:\n  minCapacity: 80\n  capacityPerRow: 10\n"), 0o644))

	w, err := WatchFile(path)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("cellCache:\n  minCapacity: 99\n  capacityPerRow: 10\n"), 0o644))
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case cfg := <-w.Updates():
		require.Equal(t, 99, cfg.CellCache.MinCapacity)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a debounced config update")
	}
}
