package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resqnet/pkg/errors"
)

// CollectionKey names one persisted collection. The resqnet_ prefix is kept
// in every backend so exported snapshots stay interchangeable.
type CollectionKey string

const (
	UsersKey        CollectionKey = "resqnet_users"
	DisastersKey    CollectionKey = "resqnet_disasters"
	TasksKey        CollectionKey = "resqnet_tasks"
	RequestsKey     CollectionKey = "resqnet_requests"
	AlertsKey       CollectionKey = "resqnet_alerts"
	HelpRequestsKey CollectionKey = "resqnet_help_requests"
	ChatsKey        CollectionKey = "resqnet_chats"

	MetaKey CollectionKey = "resqnet_meta"
)

// CollectionKeys lists the entity collections in initialization order.
var CollectionKeys = []CollectionKey{
	UsersKey,
	DisastersKey,
	TasksKey,
	RequestsKey,
	AlertsKey,
	HelpRequestsKey,
	ChatsKey,
}

const (
	// AnyRevision disables the optimistic check on Save (last writer wins).
	AnyRevision int64 = -1

	SchemaVersion = 1
)

// Record is a persisted collection: the whole JSON array plus a revision that
// increases by one on every successful Save. Revision 0 means absent.
type Record struct {
	Payload  []byte
	Revision int64
}

// EntityStore persists whole collections keyed by CollectionKey. There is no
// partial update: every mutation reads the collection, changes it in memory
// and writes it back.
type EntityStore interface {
	Load(ctx context.Context, key CollectionKey) (Record, bool, error)
	// Save replaces the collection. Unless expectedRevision is AnyRevision the
	// write only happens when the stored revision equals expectedRevision,
	// otherwise a CONFLICT error is returned and nothing changes.
	Save(ctx context.Context, key CollectionKey, payload []byte, expectedRevision int64) (int64, error)
}

type Meta struct {
	SchemaVersion int       `json:"schemaVersion"`
	InitializedAt time.Time `json:"initializedAt"`
}

// RevisionConflict is the error every backend returns on a failed optimistic write.
func RevisionConflict(key CollectionKey, expected, actual int64) *errors.AppError {
	return errors.Conflict(fmt.Sprintf("collection %s was modified concurrently (expected revision %d, found %d)", key, expected, actual))
}

// Get returns the decoded collection and its revision; an uninitialized key
// yields an empty slice at revision 0.
func Get[T any](ctx context.Context, store EntityStore, key CollectionKey) ([]T, int64, error) {
	rec, ok, err := store.Load(ctx, key)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return []T{}, 0, nil
	}

	var items []T
	if err := json.Unmarshal(rec.Payload, &items); err != nil {
		return nil, 0, errors.Internal(fmt.Sprintf("Failed to decode collection %s", key), err)
	}
	if items == nil {
		items = []T{}
	}
	return items, rec.Revision, nil
}

// Set encodes and writes the whole collection.
func Set[T any](ctx context.Context, store EntityStore, key CollectionKey, items []T, expectedRevision int64) (int64, error) {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return 0, errors.Internal(fmt.Sprintf("Failed to encode collection %s", key), err)
	}
	return store.Save(ctx, key, payload, expectedRevision)
}

// Initialize writes the seed for every collection that is still absent and
// records the schema version. Existing data is never touched, so it is safe
// to call on every start.
func Initialize(ctx context.Context, store EntityStore, seed *Seed) error {
	payloads, err := seed.payloads()
	if err != nil {
		return err
	}

	keys := append([]CollectionKey{}, CollectionKeys...)
	keys = append(keys, MetaKey)
	for _, key := range keys {
		if _, err := store.Save(ctx, key, payloads[key], 0); err != nil {
			if errors.Is(err, "CONFLICT") {
				continue
			}
			return err
		}
	}
	return nil
}
