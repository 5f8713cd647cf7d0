package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resqnet/internal/domain/entity"
	"resqnet/internal/domain/repository"
	"resqnet/pkg/errors"
)

// runEntityStoreContract exercises the behaviour every backend must share.
func runEntityStoreContract(t *testing.T, newStore func(t *testing.T) repository.EntityStore) {
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		store := newStore(t)
		_, ok, err := store.Load(ctx, repository.TasksKey)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("create if absent then optimistic update", func(t *testing.T) {
		store := newStore(t)

		rev, err := store.Save(ctx, repository.TasksKey, []byte(`[]`), 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rev)

		_, err = store.Save(ctx, repository.TasksKey, []byte(`[{"id":"x"}]`), 0)
		assert.True(t, errors.Is(err, "CONFLICT"))

		rev, err = store.Save(ctx, repository.TasksKey, []byte(`[{"id":"t1"}]`), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), rev)

		_, err = store.Save(ctx, repository.TasksKey, []byte(`[{"id":"stale"}]`), 1)
		assert.True(t, errors.Is(err, "CONFLICT"))

		rec, ok, err := store.Load(ctx, repository.TasksKey)
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `[{"id":"t1"}]`, string(rec.Payload))
		assert.Equal(t, int64(2), rec.Revision)
	})

	t.Run("any revision replaces", func(t *testing.T) {
		store := newStore(t)

		rev, err := store.Save(ctx, repository.AlertsKey, []byte(`[1]`), repository.AnyRevision)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rev)

		rev, err = store.Save(ctx, repository.AlertsKey, []byte(`[2]`), repository.AnyRevision)
		require.NoError(t, err)
		assert.Equal(t, int64(2), rev)

		rec, _, err := store.Load(ctx, repository.AlertsKey)
		require.NoError(t, err)
		assert.JSONEq(t, `[2]`, string(rec.Payload))
	})

	t.Run("initialize is idempotent", func(t *testing.T) {
		store := newStore(t)
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

		require.NoError(t, repository.Initialize(ctx, store, repository.DefaultSeed(now)))

		users, rev, err := repository.Get[entity.User](ctx, store, repository.UsersKey)
		require.NoError(t, err)
		assert.Len(t, users, 7)

		users = users[:1]
		_, err = repository.Set(ctx, store, repository.UsersKey, users, rev)
		require.NoError(t, err)

		keys := append([]repository.CollectionKey{repository.MetaKey}, repository.CollectionKeys...)
		before := make(map[repository.CollectionKey]repository.Record, len(keys))
		for _, key := range keys {
			rec, ok, err := store.Load(ctx, key)
			require.NoError(t, err)
			require.True(t, ok, "%s seeded", key)
			before[key] = rec
		}

		// a later clock changes every seeded timestamp, so any rewrite would show
		require.NoError(t, repository.Initialize(ctx, store, repository.DefaultSeed(now.Add(time.Hour))))

		for _, key := range keys {
			rec, ok, err := store.Load(ctx, key)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, before[key].Revision, rec.Revision, "%s revision", key)
			assert.JSONEq(t, string(before[key].Payload), string(rec.Payload), "%s payload", key)
		}

		users, _, err = repository.Get[entity.User](ctx, store, repository.UsersKey)
		require.NoError(t, err)
		assert.Len(t, users, 1)

		rec, ok, err := store.Load(ctx, repository.MetaKey)
		require.NoError(t, err)
		require.True(t, ok)
		var meta repository.Meta
		require.NoError(t, json.Unmarshal(rec.Payload, &meta))
		assert.Equal(t, repository.SchemaVersion, meta.SchemaVersion)
	})
}

func TestMemoryEntityStore(t *testing.T) {
	runEntityStoreContract(t, func(t *testing.T) repository.EntityStore {
		return NewMemoryEntityStore()
	})
}

func TestMemoryEntityStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryEntityStore()
	_, err := store.Save(ctx, repository.ChatsKey, []byte(`[]`), 0)
	require.NoError(t, err)

	rec, _, err := store.Load(ctx, repository.ChatsKey)
	require.NoError(t, err)
	rec.Payload[0] = 'x'

	again, _, err := store.Load(ctx, repository.ChatsKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(again.Payload))
}
