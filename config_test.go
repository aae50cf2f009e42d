package uploader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 115200, cfg.Baud)
	assert.Equal(t, DefaultMaxPatternBytes, cfg.MaxPatternBytes)
	assert.Equal(t, 2*time.Second, cfg.Timeout())
	assert.True(t, cfg.ResetAfterUpload)
}

func TestConfigTimeoutFallback(t *testing.T) {
	assert.Equal(t, DefaultTimeout, Config{}.Timeout())
	assert.Equal(t, 500*time.Millisecond, Config{TimeoutMs: 500}.Timeout())
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	want := Config{
		Port:             "/dev/ttyUSB1",
		Baud:             921600,
		TimeoutMs:        5000,
		MaxPatternBytes:  3072,
		ResetAfterUpload: false,
	}
	require.NoError(t, want.Save(path))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadConfigRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not, a, string\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
