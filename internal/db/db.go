// ABOUTME: Persistence slot selection and XDG data paths for atlas.
// ABOUTME: A slot is a client-local key-value store holding the note blob.

package db

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	BackendBadger = "badger"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

var (
	ErrKeyNotFound    = errors.New("key not found")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Slot is a client-local key-value persistence slot.
type Slot interface {
	// Get returns ErrKeyNotFound when nothing is stored under key.
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// Open opens the slot for backend at path. An empty path selects DefaultPath.
func Open(backend, path string, logger *slog.Logger) (Slot, error) {
	if path == "" && backend != BackendMemory {
		path = DefaultPath(backend)
	}

	var (
		slot Slot
		err  error
	)
	switch backend {
	case BackendBadger:
		slot, err = OpenBadger(path, logger)
	case BackendBolt:
		slot, err = OpenBolt(path)
	case BackendSQLite:
		slot, err = OpenSQLite(path)
	case BackendFile:
		slot, err = OpenFile(path)
	case BackendMemory:
		slot = NewMemory()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	if err != nil {
		// keep the interface nil rather than wrapping a nil pointer
		return nil, fmt.Errorf("opening %s slot at %s: %w", backend, path, err)
	}
	return slot, nil
}

// DataDir returns $XDG_DATA_HOME/atlas, falling back to ~/.local/share/atlas.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "atlas")
}

func DefaultPath(backend string) string {
	switch backend {
	case BackendBolt:
		return filepath.Join(DataDir(), "atlas.bolt")
	case BackendSQLite:
		return filepath.Join(DataDir(), "atlas.db")
	case BackendFile:
		return filepath.Join(DataDir(), "slots")
	default:
		return filepath.Join(DataDir(), "badger")
	}
}
