package repository

import (
	"context"
	"sync"

	"resqnet/internal/domain/repository"
)

type memoryEntityStore struct {
	mu      sync.RWMutex
	records map[repository.CollectionKey]repository.Record
}

// NewMemoryEntityStore keeps every collection in process memory. Data is lost on restart.
func NewMemoryEntityStore() repository.EntityStore {
	return &memoryEntityStore{
		records: make(map[repository.CollectionKey]repository.Record),
	}
}

func (s *memoryEntityStore) Load(ctx context.Context, key repository.CollectionKey) (repository.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[key]
	if !ok {
		return repository.Record{}, false, nil
	}
	return repository.Record{
		Payload:  append([]byte(nil), rec.Payload...),
		Revision: rec.Revision,
	}, true, nil
}

func (s *memoryEntityStore) Save(ctx context.Context, key repository.CollectionKey, payload []byte, expectedRevision int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.records[key].Revision
	if expectedRevision != repository.AnyRevision && expectedRevision != current {
		return 0, repository.RevisionConflict(key, expectedRevision, current)
	}

	next := current + 1
	s.records[key] = repository.Record{
		Payload:  append([]byte(nil), payload...),
		Revision: next,
	}
	return next, nil
}
