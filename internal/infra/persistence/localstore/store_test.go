package localstore

import (
	"context"
	"testing"

	"storefront/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/fileblob"
)

func TestStore_SetGetRemove(t *testing.T) {
	gateway := NewMemory()
	ctx := context.Background()

	require.NoError(t, gateway.Set(ctx, "cart", `{"p1":{"quantity":2}}`))

	value, err := gateway.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `{"p1":{"quantity":2}}`, value)

	require.NoError(t, gateway.Remove(ctx, "cart"))

	_, err = gateway.Get(ctx, "cart")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestStore_GetMissingKey(t *testing.T) {
	gateway := NewMemory()

	_, err := gateway.Get(context.Background(), "user")

	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestStore_RemoveMissingKeyIsNoop(t *testing.T) {
	gateway := NewMemory()

	assert.NoError(t, gateway.Remove(context.Background(), "user"))
}

func TestStore_SetOverwrites(t *testing.T) {
	gateway := NewMemory()
	ctx := context.Background()

	require.NoError(t, gateway.Set(ctx, "user", `{"email":"a@b.com"}`))
	require.NoError(t, gateway.Set(ctx, "user", `{"email":"c@d.com"}`))

	value, err := gateway.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, `{"email":"c@d.com"}`, value)
}

func TestStore_FileBackedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	bucket, err := fileblob.OpenBucket(dir, nil)
	require.NoError(t, err)
	t.Cleanup(func() { bucket.Close() })

	gateway := &store{bucket: bucket}
	require.NoError(t, gateway.Set(ctx, "users", `{"a@b.com":{"email":"a@b.com"}}`))

	value, err := gateway.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, `{"a@b.com":{"email":"a@b.com"}}`, value)
}
