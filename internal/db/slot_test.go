// ABOUTME: Tests for persistence slot backends and data paths.
// ABOUTME: Every backend must round-trip values and report missing keys.

package db

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAll(t *testing.T) map[string]Slot {
	t.Helper()
	dir := t.TempDir()

	slots := map[string]Slot{}
	for _, backend := range []string{BackendBadger, BackendBolt, BackendSQLite, BackendFile, BackendMemory} {
		path := ""
		if backend != BackendMemory {
			path = filepath.Join(dir, backend)
		}
		slot, err := Open(backend, path, nil)
		require.NoError(t, err, backend)
		t.Cleanup(func() { _ = slot.Close() })
		slots[backend] = slot
	}
	return slots
}

func TestSlotsRoundTrip(t *testing.T) {
	for name, slot := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			_, err := slot.Get("missing")
			assert.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, slot.Set(BlobKey, []byte(`[1]`)))
			require.NoError(t, slot.Set(BlobKey, []byte(`[2]`)))

			got, err := slot.Get(BlobKey)
			require.NoError(t, err)
			assert.Equal(t, []byte(`[2]`), got)
		})
	}
}

func TestBoltSlotPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.bolt")

	slot, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, slot.Set("k", []byte("v")))
	require.NoError(t, slot.Close())

	slot, err = OpenBolt(path)
	require.NoError(t, err)
	defer func() { _ = slot.Close() }()

	got, err := slot.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestSQLiteSlotPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "atlas.db")

	slot, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, slot.Set(BlobKey, []byte(`[]`)))
	require.NoError(t, slot.Set(BlobKey, []byte(`[{"id":"n1"}]`)))
	require.NoError(t, slot.Close())

	slot, err = OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = slot.Close() }()

	got, err := slot.Get(BlobKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"n1"}]`, string(got))

	_, err = slot.Get("other")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileSlotLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	slot, err := OpenFile(dir)
	require.NoError(t, err)

	require.NoError(t, slot.Set(BlobKey, []byte("[]")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, BlobKey+".json", entries[0].Name())
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("postgres", "", nil)
	assert.True(t, errors.Is(err, ErrUnknownBackend))
}

func TestDefaultPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)

	assert.Equal(t, filepath.Join(tmpDir, "atlas", "badger"), DefaultPath(BackendBadger))
	assert.Equal(t, filepath.Join(tmpDir, "atlas", "atlas.bolt"), DefaultPath(BackendBolt))
	assert.Equal(t, filepath.Join(tmpDir, "atlas", "atlas.db"), DefaultPath(BackendSQLite))
	assert.Equal(t, filepath.Join(tmpDir, "atlas", "slots"), DefaultPath(BackendFile))
}

func TestOpenFailureReturnsNilSlot(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	slot, err := Open(BackendBolt, filepath.Join(blocker, "atlas.bolt"), nil)
	require.Error(t, err)
	assert.Nil(t, slot)
	assert.False(t, NewAdapter(slot).Available())
}
