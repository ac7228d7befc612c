package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/profilehub/profilehub-client/internal/storage"
	apperrors "github.com/profilehub/profilehub-client/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentUser_MissingFile(t *testing.T) {
	store := storage.NewUserStore(filepath.Join(t.TempDir(), "user.json"))

	_, err := store.CurrentUser()
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSetCurrentUser_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "user.json")
	store := storage.NewUserStore(path)

	require.NoError(t, store.SetCurrentUser(42))

	id, err := store.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestSetCurrentUser_Overwrites(t *testing.T) {
	store := storage.NewUserStore(filepath.Join(t.TempDir(), "user.json"))

	require.NoError(t, store.SetCurrentUser(1))
	require.NoError(t, store.SetCurrentUser(2))

	id, err := store.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
}

func TestSetCurrentUser_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.json")
	store := storage.NewUserStore(path)

	require.NoError(t, store.SetCurrentUser(42))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestClear(t *testing.T) {
	store := storage.NewUserStore(filepath.Join(t.TempDir(), "user.json"))

	require.NoError(t, store.SetCurrentUser(42))
	require.NoError(t, store.Clear())

	_, err := store.CurrentUser()
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Clearing an already-clean store is fine.
	require.NoError(t, store.Clear())
}

func TestCurrentUser_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	_, err := storage.NewUserStore(path).CurrentUser()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}
