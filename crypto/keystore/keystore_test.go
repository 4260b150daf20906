package keystore

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joncooperworks/sshcrypt/config"
	"github.com/joncooperworks/sshcrypt/crypto/keyblob"
)

// exerciseKeystore runs the behaviour every backend must share.
func exerciseKeystore(t *testing.T, ks Keystore) {
	t.Helper()
	ctx := context.Background()

	_, err := ks.GetBlob(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.ErrorIs(t, ks.DeleteBlob(ctx, "missing"), ErrKeyNotFound)
	assert.ErrorIs(t, ks.SetBlob(ctx, "", keyblob.New(nil, "", false)), ErrInvalidID)

	first := keyblob.New([]byte("first secret"), "Subject: first", false)
	second := keyblob.New([]byte("second"), "", true)
	require.NoError(t, ks.SetBlob(ctx, "alpha", first))
	require.NoError(t, ks.SetBlob(ctx, "beta", second))

	got, err := ks.GetBlob(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, first.Data, got.Data)
	assert.Equal(t, first.Headers, got.Headers)
	assert.False(t, got.Public)

	keys, err := ks.ListKeys(ctx)
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"alpha", "beta"}, keys)

	replacement := keyblob.New([]byte("rotated"), "", false)
	require.NoError(t, ks.SetBlob(ctx, "alpha", replacement))
	got, err = ks.GetBlob(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, replacement.Data, got.Data)

	require.NoError(t, ks.DeleteBlob(ctx, "beta"))
	_, err = ks.GetBlob(ctx, "beta")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	keys, err = ks.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, keys)

	assert.NoError(t, ks.Close())
}

func TestMemoryKeystore(t *testing.T) {
	exerciseKeystore(t, NewMemoryKeystore())
}

func TestFileKeyringKeystore(t *testing.T) {
	ks, err := New(context.Background(), config.Keystore{
		Backend:         "keyring",
		ServiceName:     "sshcrypt-test",
		AllowedBackends: []string{"file"},
		FileDir:         t.TempDir(),
		FilePassword:    "test password",
	})
	require.NoError(t, err)
	exerciseKeystore(t, ks)
}

func TestRegistry(t *testing.T) {
	backends := ListRegisteredBackends()
	assert.Equal(t, []string{"keyring", "memory", "postgres"}, backends)

	_, err := GetKeystoreFactory("vault")
	assert.ErrorContains(t, err, "no keystore factory registered for backend: vault")

	_, err = New(context.Background(), config.Keystore{Backend: "vault"})
	assert.Error(t, err)

	ks, err := New(context.Background(), config.Keystore{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &KeyringKeystore{}, ks)
}
