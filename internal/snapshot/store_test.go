package snapshot

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRedisStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := NewRedisStore(newTestRedis(t), "exchange:snapshot")

	// Absent key is valid empty state, not an error
	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, store.Save(ctx, []byte(`{"version":1}`)))

	data, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":1}`), data)

	// Save replaces the previous blob
	require.NoError(t, store.Save(ctx, []byte(`{"version":1,"patterns":[]}`)))
	data, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":1,"patterns":[]}`), data)

	assert.Equal(t, "redis", store.Driver())
}

func TestRedisStore_KeysIsolated(t *testing.T) {
	ctx := context.Background()
	client := newTestRedis(t)

	first := NewRedisStore(client, "exchange:snapshot")
	second := NewRedisStore(client, "exchange:other")

	require.NoError(t, first.Save(ctx, []byte("first")))

	data, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestMemoryStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	blob := []byte(`{"version":1}`)
	require.NoError(t, store.Save(ctx, blob))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, blob, loaded)

	// The store keeps its own copy
	blob[0] = 'X'
	loaded[1] = 'Y'
	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":1}`), again)

	assert.Equal(t, "memory", store.Driver())
}

func TestOpen(t *testing.T) {
	client := newTestRedis(t)

	store, err := Open("redis", "k", nil, client)
	require.NoError(t, err)
	assert.Equal(t, "redis", store.Driver())

	store, err = Open("memory", "k", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "memory", store.Driver())

	_, err = Open("redis", "k", nil, nil)
	assert.Error(t, err, "redis driver without a connection")

	_, err = Open("postgres", "k", nil, nil)
	assert.Error(t, err, "postgres driver without a connection")

	_, err = Open("cassandra", "k", nil, client)
	assert.Error(t, err, "unknown driver")
}
