package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := NewConfigServiceAt(filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Source, cfg.Source)
	assert.True(t, cfg.UI.ShowBottomControl)
}

func TestLoadFromPathMissing(t *testing.T) {
	svc := NewConfigService()
	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigServiceAt(path)

	cfg := DefaultConfig()
	cfg.Source.ProbeLimit = 42
	cfg.Source.PageParam = "p"
	cfg.UI.ShowBottomControl = false
	cfg.Metrics.Addr = "127.0.0.1:9100"
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.Source.ProbeLimit)
	assert.Equal(t, "p", loaded.Source.PageParam)
	assert.False(t, loaded.UI.ShowBottomControl)
	assert.Equal(t, "127.0.0.1:9100", loaded.Metrics.Addr)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[source]
probe_limit = 7

[ui]
style = "notty"
`), 0o644))

	cfg, err := NewConfigServiceAt(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Source.ProbeLimit)
	assert.Equal(t, "posts/page%d.html", cfg.Source.PathPattern)
	assert.Equal(t, "page", cfg.Source.PageParam)
	assert.True(t, cfg.Source.UseManifest)
	assert.Equal(t, "notty", cfg.UI.Style)
	assert.Equal(t, 15*time.Second, cfg.Source.Timeout())
}

func TestInvalidValuesAreNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[source]
probe_limit = -3
timeout_seconds = 0
page_param = ""
`), 0o644))

	cfg, err := NewConfigServiceAt(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Source.ProbeLimit)
	assert.Equal(t, 15, cfg.Source.TimeoutSeconds)
	assert.Equal(t, "page", cfg.Source.PageParam)
}

func TestMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[source\nprobe_limit = "), 0o644))

	_, err := NewConfigServiceAt(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}
