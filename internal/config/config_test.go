package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG_CONFIG_HOME at an empty temp dir so a real user
// config never leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoad_DefaultValues(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "badger", cfg.Storage.Backend)
	assert.Empty(t, cfg.Storage.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "pretty", cfg.Log.Format)
	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, filepath.Join(dir, "atlas", "atlas.log"), cfg.Log.File.Path)
	assert.Equal(t, DefaultLogFileMaxSizeMB, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, DefaultLogFileMaxBackups, cfg.Log.File.MaxBackups)
	assert.Equal(t, DefaultLogFileMaxAgeDays, cfg.Log.File.MaxAgeDays)
	assert.True(t, cfg.Log.File.Compress)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ATLAS_STORAGE_BACKEND", "bolt")
	t.Setenv("ATLAS_LOG_LEVEL", "debug")
	t.Setenv("ATLAS_LOG_FILE_ENABLED", "true")
	t.Setenv("ATLAS_LOG_FILE_MAX_SIZE", "50")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "bolt", cfg.Storage.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.File.Enabled)
	assert.Equal(t, 50, cfg.Log.File.MaxSizeMB)
}

func TestLoad_DefaultFileFromXDG(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "atlas"), 0o755))
	yaml := "storage:\n  backend: file\n  path: /tmp/atlas-slots\nlog:\n  format: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "atlas", "config.yaml"), []byte(yaml), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/atlas-slots", cfg.Storage.Path)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: file\n"), 0o600))
	t.Setenv("ATLAS_STORAGE_BACKEND", "memory")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Backend)
}

func TestLoad_EmptyBackendEnvNamesTheField(t *testing.T) {
	isolate(t)
	t.Setenv("ATLAS_STORAGE_BACKEND", "")

	cfg, err := Load("")
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.backend is required")
	assert.NotContains(t, err.Error(), "storage is required")
}

func TestLoad_SQLiteBackend(t *testing.T) {
	isolate(t)
	t.Setenv("ATLAS_STORAGE_BACKEND", "sqlite")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unclosed"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"ATLAS_STORAGE_BACKEND":       "storage.backend",
		"ATLAS_LOG_FILE_MAX_SIZE":     "log.file.max_size",
		"ATLAS_LOG_FILE_MAX_BACKUPS":  "log.file.max_backups",
		"ATLAS_LOG_FILE_COMPRESS":     "log.file.compress",
		"ATLAS_SOMETHING_UNKNOWN_KEY": "something.unknown.key",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}
