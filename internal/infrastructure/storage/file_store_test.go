package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

func newFileStore(t *testing.T) domain.TokenStore {
	t.Helper()
	store, err := NewFileTokenStore(t.TempDir(), "baraya-app", "test-passphrase")
	require.NoError(t, err)
	return store
}

func TestFileTokenStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)

	require.NoError(t, store.Save(ctx, "bearer-token-value"))

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bearer-token-value", token)
}

func TestFileTokenStore_OverwriteSemantics(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)

	require.NoError(t, store.Save(ctx, "first"))
	require.NoError(t, store.Save(ctx, "second"))

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}

func TestFileTokenStore_LoadMissing(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestFileTokenStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)

	require.NoError(t, store.Save(ctx, "to-be-removed"))
	require.NoError(t, store.Delete(ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)

	// Deleting an absent credential is a no-op.
	assert.NoError(t, store.Delete(ctx))
}

func TestFileTokenStore_TokenNotStoredInPlaintext(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileTokenStore(dir, "baraya-app", "test-passphrase")
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "super-secret-token"))

	raw, err := os.ReadFile(filepath.Join(dir, "baraya-app.cred"))
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "super-secret-token"))
}

func TestFileTokenStore_WrongPassphraseReadsAsMissing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewFileTokenStore(dir, "baraya-app", "right")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "secret"))

	other, err := NewFileTokenStore(dir, "baraya-app", "wrong")
	require.NoError(t, err)
	_, err = other.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestFileTokenStore_EmptyDirDefaultsToUserConfigDir(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	ctx := context.Background()
	store, err := NewFileTokenStore("", "baraya-app", "test-passphrase")
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "default-dir-token"))

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "default-dir-token", token)

	// The credential landed under a service-named config subdirectory.
	_, err = os.Stat(filepath.Join(configHome, "baraya-app", "baraya-app.cred"))
	assert.NoError(t, err)
}

func TestNewFileTokenStore_Validation(t *testing.T) {
	_, err := NewFileTokenStore(t.TempDir(), "", "pass")
	assert.Error(t, err)

	_, err = NewFileTokenStore(t.TempDir(), "svc", "")
	assert.Error(t, err)
}
