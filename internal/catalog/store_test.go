package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/proxyprint/internal/fault"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return b
}

func TestLoadMissingSnapshot(t *testing.T) {
	s := NewStore(t.TempDir(), "Oracle Cards", nil)

	_, err := s.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.ErrNotFound))
	assert.Equal(t, 0, s.Current().Len())
}

func TestPersistThenLoad(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, "Oracle Cards", nil)
	require.NoError(t, s.Persist(readFixture(t, "bulk_data.json"), readFixture(t, "oracle_cards.json")))

	reopened := NewStore(dir, "Oracle Cards", nil)
	c, err := reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, c.Len())
	assert.Same(t, c, reopened.Current())

	last, ok := c.LastUpdated()
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 17, 9, 3, 37, 523000000, time.UTC), last)
}

func TestLoadWithoutDatasetHasNoStamp(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, "Oracle Cards", nil)
	require.NoError(t, s.Persist([]byte(`{"data": []}`), readFixture(t, "oracle_cards.json")))

	c, err := s.Load()
	require.NoError(t, err)
	_, ok := c.LastUpdated()
	assert.False(t, ok)
}

func TestLoadMalformedPayload(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, "Oracle Cards", nil)
	require.NoError(t, s.Persist(readFixture(t, "bulk_data.json"), []byte(`[{"name": "Blank", "layout": "normal"}]`)))

	_, err := s.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.ErrMalformed))
}

func TestPersistUnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// a regular file where the snapshot directory should be
	s := NewStore(blocker, "Oracle Cards", nil)
	err := s.Persist([]byte(`{}`), []byte(`[]`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.ErrIO))
}

func TestPersistWritesPayloadBeforeManifest(t *testing.T) {
	dir := t.TempDir()
	// a non-empty directory where the manifest goes makes its rename fail
	require.NoError(t, os.MkdirAll(filepath.Join(dir, manifestFile, "keep"), 0o755))

	s := NewStore(dir, "Oracle Cards", nil)
	payload := readFixture(t, "oracle_cards.json")
	err := s.Persist(readFixture(t, "bulk_data.json"), payload)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.ErrIO))

	// the payload is already replaced; the pair on disk is mixed
	got, err := os.ReadFile(filepath.Join(dir, catalogFile))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
