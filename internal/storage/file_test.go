// internal/storage/file_test.go
package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorePutGetDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, KeyCart, []byte(`{"id":null}`)))

	got, err := store.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":null}`), got)

	require.NoError(t, store.Delete(ctx, KeyCart))
	_, err = store.Get(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, KeyCart))
}

func TestFileStoreReplacesValue(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, KeyToken, []byte("first")))
	require.NoError(t, store.Put(ctx, KeyToken, []byte("second")))

	got, err := store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, KeyUser, []byte(`{"id":7}`)))

	second, err := NewFileStore(dir)
	require.NoError(t, err)

	got, err := second.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":7}`), got)
}
