package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	adapterrepo "resqnet/internal/adapter/repository"
	"resqnet/internal/domain/entity"
	"resqnet/internal/domain/repository"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func seededStore(t *testing.T) repository.EntityStore {
	t.Helper()
	store := adapterrepo.NewMemoryEntityStore()
	require.NoError(t, repository.Initialize(context.Background(), store, repository.DefaultSeed(fixedNow)))
	return store
}

func sequentialIDs(prefix string) func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func testOptions(prefix string, extra ...Option) []Option {
	opts := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs(prefix)),
	}
	return append(opts, extra...)
}

type sentEvent struct {
	userID  string
	msgType string
	data    interface{}
}

type fakeNotifier struct {
	mu         sync.Mutex
	sent       []sentEvent
	broadcasts []sentEvent
}

func (f *fakeNotifier) SendToUser(userID, msgType string, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEvent{userID: userID, msgType: msgType, data: data})
}

func (f *fakeNotifier) Broadcast(msgType string, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcasts = append(f.broadcasts, sentEvent{msgType: msgType, data: data})
}

type fakeBriefer struct {
	severity entity.Severity
	text     string
	err      error
	calls    int
}

func (f *fakeBriefer) SummarizeBriefing(ctx context.Context, disasters []entity.Disaster) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeBriefer) RateSeverity(ctx context.Context, description string) (entity.Severity, error) {
	f.calls++
	return f.severity, f.err
}

type fakeRecorder struct {
	mu        sync.Mutex
	workflow  map[string]int
	ai        map[string]int
	conflicts map[string]int
	logins    map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		workflow:  map[string]int{},
		ai:        map[string]int{},
		conflicts: map[string]int{},
		logins:    map[string]int{},
	}
}

func outcomeLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (f *fakeRecorder) ObserveWorkflow(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workflow[op+":"+outcomeLabel(err)]++
}

func (f *fakeRecorder) ObserveAI(capability string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ai[capability+":"+outcomeLabel(err)]++
}

func (f *fakeRecorder) ObserveConflict(collection string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conflicts[collection]++
}

func (f *fakeRecorder) ObserveLogin(role string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins[role+":"+outcomeLabel(err)]++
}

type fakeLimiter struct {
	allow bool
}

func (f fakeLimiter) Allow(string, string) (bool, time.Duration) {
	if f.allow {
		return true, 0
	}
	return false, 30 * time.Second
}

// racingStore simulates another writer landing between a use case's read and
// its write on the given key.
type racingStore struct {
	repository.EntityStore
	key   repository.CollectionKey
	fired bool
}

func (r *racingStore) Save(ctx context.Context, key repository.CollectionKey, payload []byte, expected int64) (int64, error) {
	if key == r.key && !r.fired {
		r.fired = true
		rec, _, err := r.EntityStore.Load(ctx, key)
		if err != nil {
			return 0, err
		}
		if _, err := r.EntityStore.Save(ctx, key, rec.Payload, repository.AnyRevision); err != nil {
			return 0, err
		}
	}
	return r.EntityStore.Save(ctx, key, payload, expected)
}
