package cache

import (
	"context"
	"sync"
	"time"

	"eventdesk/internal/event"
	"eventdesk/internal/logger"
)

// Fetcher is the read side of the data-access facade.
type Fetcher interface {
	FetchEvent(ctx context.Context, id string) (*event.Event, error)
	ListEvents(ctx context.Context) ([]*event.Event, error)
}

type inflight struct {
	done  chan struct{}
	value any
	err   error
}

// Store is a read-through view over Cache and a Fetcher. Concurrent reads
// of the same key are collapsed into one backend request; late callers
// wait for the first one's result or their own context, whichever ends
// first. Mutations do not go through Store; callers invalidate after them.
type Store struct {
	cache *Cache
	api   Fetcher

	mu      sync.Mutex
	pending map[Key]*inflight
}

// NewStore creates a store over the given cache and fetcher.
func NewStore(c *Cache, api Fetcher) *Store {
	return &Store{
		cache:   c,
		api:     api,
		pending: make(map[Key]*inflight),
	}
}

// GetEvent returns the event for id, from cache when fresh, otherwise
// fetched through the facade. ctx cancels the caller's wait and, for the
// caller that started the fetch, the fetch itself.
func (s *Store) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	key := EntryKey(KindEvents, id)
	value, err := s.get(ctx, key, func(ctx context.Context) (any, error) {
		return s.api.FetchEvent(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return value.(*event.Event), nil
}

// ListEvents returns the events collection, cached under the collection key.
func (s *Store) ListEvents(ctx context.Context) ([]*event.Event, error) {
	key := CollectionKey(KindEvents)
	value, err := s.get(ctx, key, func(ctx context.Context) (any, error) {
		return s.api.ListEvents(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]*event.Event), nil
}

// Invalidate marks all cached data of the given kind stale. Called after
// every successful mutation; the next read refetches.
func (s *Store) Invalidate(kind string) int {
	marked := s.cache.Invalidate(kind)
	logger.IncrCounter("cache.invalidate")
	logger.Debug("cache invalidated", logger.Fields{
		"kind":   kind,
		"marked": marked,
	})
	return marked
}

func (s *Store) get(ctx context.Context, key Key, fetch func(context.Context) (any, error)) (any, error) {
	if value, ok := s.cache.Get(key); ok {
		logger.IncrCounter("cache.hit")
		return value, nil
	}
	logger.IncrCounter("cache.miss")

	s.mu.Lock()
	if call, ok := s.pending[key]; ok {
		s.mu.Unlock()
		// Someone else is already fetching this key; wait on them
		select {
		case <-call.done:
			return call.value, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	call := &inflight{done: make(chan struct{})}
	s.pending[key] = call
	s.mu.Unlock()

	start := time.Now()
	call.value, call.err = fetch(ctx)
	logger.RecordTiming("store.fetch", time.Since(start))

	if call.err == nil {
		s.cache.Set(key, call.value)
	}

	s.mu.Lock()
	delete(s.pending, key)
	s.mu.Unlock()
	close(call.done)

	return call.value, call.err
}
