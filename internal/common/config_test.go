package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "data", config.Storage.Path)
	assert.Equal(t, 10, config.Rates.CaptureHour)
	assert.Equal(t, 30, config.Rates.CaptureMinute)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig("does-not-exist.toml")
	require.NoError(t, err)
	assert.Equal(t, 8080, config.Server.Port)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aurum.toml")
	content := `
environment = "production"

[server]
port = 9090

[clients.gemini]
api_key = "test-key"
model = "gemini-3-flash-preview"

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "test-key", config.Clients.Gemini.APIKey)
	assert.Equal(t, "debug", config.Logging.Level)
	// Untouched sections keep defaults
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 10, config.Rates.CaptureHour)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("AURUM_PORT", "7070")
	t.Setenv("AURUM_LOG_LEVEL", "warn")
	t.Setenv("AURUM_DATA_PATH", "/tmp/aurum-data")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, "/tmp/aurum-data", config.Storage.Path)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
