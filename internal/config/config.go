// Package config loads atlas configuration using koanf.
//
// Precedence, highest first: ATLAS_ environment variables, the YAML config
// file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables read as configuration.
const EnvPrefix = "ATLAS_"

const (
	DefaultLogFileMaxSizeMB  = 10
	DefaultLogFileMaxBackups = 3
	DefaultLogFileMaxAgeDays = 28
)

type Config struct {
	Storage StorageConfig `koanf:"storage"`
	Log     LogConfig     `koanf:"log"`
}

type StorageConfig struct {
	Backend string `koanf:"backend" validate:"required,oneof=badger bolt sqlite file memory"`
	// Path overrides the backend's default location under the XDG data dir.
	Path string `koanf:"path"`
}

type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=pretty text json"`
	File   LogFileConfig `koanf:"file"`
}

type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

func defaults() map[string]any {
	return map[string]any{
		"storage.backend": "badger",
		"storage.path":    "",

		"log.level":            "warn",
		"log.format":           "pretty",
		"log.file.enabled":     false,
		"log.file.path":        filepath.Join(Dir(), "atlas.log"),
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,
	}
}

// Dir returns $XDG_CONFIG_HOME/atlas, falling back to ~/.config/atlas.
func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "atlas")
}

// DefaultPath is the config file read when no explicit path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads configuration. An empty path means DefaultPath; a missing
// default file is fine, a missing explicit file is an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := loadFile(k, path, explicit); err != nil {
		return nil, fmt.Errorf("loading config file %s: %w", path, err)
	}

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// envKey maps ATLAS_LOG_FILE_MAX_SIZE to log.file.max_size. Keys contain
// underscores, so known keys are matched first; unknown variables fall back
// to replacing every underscore.
func envKey(s string) string {
	flat := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for key := range defaults() {
		if strings.ReplaceAll(key, ".", "_") == flat {
			return key
		}
	}
	return strings.ReplaceAll(flat, "_", ".")
}

func loadFile(k *koanf.Koanf, path string, required bool) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if required {
			return err
		}
		return nil
	}
	return k.Load(file.Provider(path), yaml.Parser())
}
