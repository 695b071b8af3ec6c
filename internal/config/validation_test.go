package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Storage: StorageConfig{Backend: "badger"},
		Log: LogConfig{
			Level:  "warn",
			Format: "pretty",
			File: LogFileConfig{
				Path:       "/tmp/atlas.log",
				MaxSizeMB:  DefaultLogFileMaxSizeMB,
				MaxBackups: DefaultLogFileMaxBackups,
				MaxAgeDays: DefaultLogFileMaxAgeDays,
			},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Storage.Backend = "postgres" },
			message: "storage.backend must be one of: badger bolt sqlite file memory",
		},
		{
			name:    "missing backend",
			mutate:  func(c *Config) { c.Storage.Backend = "" },
			message: "storage.backend is required",
		},
		{
			name:    "bad level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			message: "log.level must be one of: debug info warn error",
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			message: "log.format must be one of: pretty text json",
		},
		{
			name: "file enabled without path",
			mutate: func(c *Config) {
				c.Log.File.Enabled = true
				c.Log.File.Path = ""
			},
			message: "log.file.path is required when log.file.enabled is true",
		},
		{
			name:    "oversized log file",
			mutate:  func(c *Config) { c.Log.File.MaxSizeMB = 4096 },
			message: "log.file.max_size must be at most 1024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestKeyPath(t *testing.T) {
	assert.Equal(t, "storage.backend", keyPath("Config.storage.backend"))
	assert.Equal(t, "log.file.max_age", keyPath("Config.log.file.max_age"))
	assert.Equal(t, "level", keyPath("level"))
}

func TestValidate_ReportsEveryBadKey(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "loud"
	cfg.Log.File.MaxBackups = 500

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level must be one of")
	assert.Contains(t, err.Error(), "log.file.max_backups must be at most 100")
}
