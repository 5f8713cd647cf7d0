package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"resqnet/internal/domain/repository"
)

const maxWatchAttempts = 5

type redisEntityStore struct {
	client *redis.Client
	prefix string
}

// NewRedisEntityStore keeps each collection in a hash with payload and revision fields.
func NewRedisEntityStore(client *redis.Client, prefix string) repository.EntityStore {
	return &redisEntityStore{
		client: client,
		prefix: prefix,
	}
}

func (r *redisEntityStore) key(key repository.CollectionKey) string {
	return r.prefix + string(key)
}

func (r *redisEntityStore) Load(ctx context.Context, key repository.CollectionKey) (repository.Record, bool, error) {
	fields, err := r.client.HGetAll(ctx, r.key(key)).Result()
	if err != nil {
		return repository.Record{}, false, err
	}
	if len(fields) == 0 {
		return repository.Record{}, false, nil
	}

	rev, err := strconv.ParseInt(fields["revision"], 10, 64)
	if err != nil {
		return repository.Record{}, false, err
	}
	return repository.Record{Payload: []byte(fields["payload"]), Revision: rev}, true, nil
}

// Save compares and writes under WATCH. A concurrent write to the same key
// aborts the MULTI block and the comparison is repeated.
func (r *redisEntityStore) Save(ctx context.Context, key repository.CollectionKey, payload []byte, expectedRevision int64) (int64, error) {
	k := r.key(key)
	var next int64

	txf := func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, k, "revision").Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if expectedRevision != repository.AnyRevision && expectedRevision != current {
			return repository.RevisionConflict(key, expectedRevision, current)
		}

		next = current + 1
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, k,
				"payload", payload,
				"revision", next,
				"updatedAt", time.Now().UTC().Format(time.RFC3339Nano),
			)
			return nil
		})
		return err
	}

	for i := 0; i < maxWatchAttempts; i++ {
		err := r.client.Watch(ctx, txf, k)
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return 0, err
		}
		return next, nil
	}
	return 0, repository.RevisionConflict(key, expectedRevision, -1)
}
