package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"resqnet/internal/domain/repository"
)

const firestoreCollection = "resqnet_collections"

type firestoreEntityStore struct {
	client *firestore.Client
}

type collectionDocument struct {
	Payload   string    `firestore:"payload"`
	Revision  int64     `firestore:"revision"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// NewFirestoreEntityStore stores one document per collection key.
func NewFirestoreEntityStore(client *firestore.Client) repository.EntityStore {
	return &firestoreEntityStore{
		client: client,
	}
}

func (r *firestoreEntityStore) doc(key repository.CollectionKey) *firestore.DocumentRef {
	return r.client.Collection(firestoreCollection).Doc(string(key))
}

func (r *firestoreEntityStore) Load(ctx context.Context, key repository.CollectionKey) (repository.Record, bool, error) {
	snap, err := r.doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.Record{}, false, nil
		}
		return repository.Record{}, false, err
	}

	var d collectionDocument
	if err := snap.DataTo(&d); err != nil {
		return repository.Record{}, false, err
	}
	return repository.Record{Payload: []byte(d.Payload), Revision: d.Revision}, true, nil
}

func (r *firestoreEntityStore) Save(ctx context.Context, key repository.CollectionKey, payload []byte, expectedRevision int64) (int64, error) {
	ref := r.doc(key)
	var next int64

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var current int64
		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			var d collectionDocument
			if err := snap.DataTo(&d); err != nil {
				return err
			}
			current = d.Revision
		case status.Code(err) != codes.NotFound:
			return err
		}

		if expectedRevision != repository.AnyRevision && expectedRevision != current {
			return repository.RevisionConflict(key, expectedRevision, current)
		}

		next = current + 1
		return tx.Set(ref, collectionDocument{
			Payload:   string(payload),
			Revision:  next,
			UpdatedAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}
