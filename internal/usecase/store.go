package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"resqnet/internal/domain/repository"
	"resqnet/internal/domain/workflow"
	"resqnet/pkg/errors"
	"resqnet/pkg/logger"
)

// base carries what every use case needs to run a workflow against the store.
type base struct {
	store    repository.EntityStore
	recorder Recorder
	notifier Notifier
	now      func() time.Time
	newID    func() string
}

// Option customises a use case, mostly for tests.
type Option func(*base)

func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(b *base) { b.newID = newID }
}

func WithRecorder(r Recorder) Option {
	return func(b *base) {
		if r != nil {
			b.recorder = r
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(b *base) {
		if n != nil {
			b.notifier = n
		}
	}
}

func newBase(store repository.EntityStore, opts []Option) base {
	b := base{
		store:    store,
		recorder: noopRecorder{},
		notifier: noopNotifier{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) stamp() workflow.Stamp {
	return workflow.Stamp{ID: b.newID(), At: b.now().UTC()}
}

// mutate reads a collection, applies fn and writes the result back guarded by
// the revision that was read. A concurrent writer makes Save fail with
// CONFLICT; nothing is retried.
func mutate[T any, R any](ctx context.Context, b *base, operation string, key repository.CollectionKey, fn func([]T) ([]T, R, error)) (R, error) {
	var zero R

	items, rev, err := repository.Get[T](ctx, b.store, key)
	if err != nil {
		b.recorder.ObserveWorkflow(operation, err)
		return zero, err
	}

	next, result, err := fn(items)
	if err == nil {
		_, err = repository.Set(ctx, b.store, key, next, rev)
		if errors.Is(err, "CONFLICT") {
			b.recorder.ObserveConflict(string(key))
		}
	}
	b.recorder.ObserveWorkflow(operation, err)
	if err != nil {
		logger.Debug("workflow %s on %s failed: %v", operation, key, err)
		return zero, err
	}
	return result, nil
}

// load reads a whole collection.
func load[T any](ctx context.Context, b *base, key repository.CollectionKey) ([]T, error) {
	items, _, err := repository.Get[T](ctx, b.store, key)
	return items, err
}
