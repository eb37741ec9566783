package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/stylehaus/storefront/internal/event"
	"github.com/stylehaus/storefront/internal/kv"
	kvredis "github.com/stylehaus/storefront/internal/kv/redis"
	pkgkafka "github.com/stylehaus/storefront/pkg/kafka"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakePublisher records tracking events for assertions.
type fakePublisher struct {
	mu     sync.Mutex
	events []*pkgkafka.Event
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, topic string, evt *pkgkafka.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	return f.err
}

func (f *fakePublisher) all() []*pkgkafka.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*pkgkafka.Event(nil), f.events...)
}

// setupKV returns a miniredis-backed kv store and its miniredis handle.
func setupKV(t *testing.T) (kv.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return kvredis.NewStore(client, testLogger()), mr
}

func newTracker(pub event.Publisher) *event.Producer {
	return event.NewProducer(pub, testLogger())
}

// failingKV errors on every write but reads normally from the wrapped store.
type failingKV struct {
	kv.Store
}

func (f *failingKV) Set(ctx context.Context, key string, value any) error {
	return errors.New("storage write refused")
}
