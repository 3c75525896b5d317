package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// CachedStore is a read-through cache for single documents. Every write made
// through it invalidates the cached entry, collection reads are not cached.
// Writes made by other instances are dropped from the cache by Follow.
// freecache refuses entries above 1/1024 of the cache size, such documents
// are always read from the backing store.
type CachedStore struct {
	Store
	cache      *freecache.Cache
	ttlSeconds int
}

func NewCachedStore(store Store, sizeBytes int, ttl time.Duration) *CachedStore {
	ttlSeconds := int(ttl.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}
	return &CachedStore{
		Store:      store,
		cache:      freecache.NewCache(sizeBytes),
		ttlSeconds: ttlSeconds,
	}
}

func (s *CachedStore) Get(ctx context.Context, path string) (*Document, error) {
	key := []byte(path)
	if cached, err := s.cache.Get(key); err == nil {
		var doc Document
		if err := json.Unmarshal(cached, &doc); err == nil {
			return &doc, nil
		}
		log.Warnf("docstore cache: drop bad entry for %s", path)
		s.cache.Del(key)
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Errorf("docstore cache get %s: %s", path, err)
	}

	doc, err := s.Store.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(doc); err == nil {
		if err := s.cache.Set(key, b, s.ttlSeconds); err != nil {
			log.Warnf("docstore cache set %s (%d bytes): %s", path, len(b), err)
		}
	}

	return doc, nil
}

func (s *CachedStore) Set(ctx context.Context, path string, data any) error {
	s.cache.Del([]byte(path))
	err := s.Store.Set(ctx, path, data)
	s.cache.Del([]byte(path))
	return err
}

func (s *CachedStore) CreateIfAbsent(ctx context.Context, path string, data any) (bool, error) {
	created, err := s.Store.CreateIfAbsent(ctx, path, data)
	s.cache.Del([]byte(path))
	return created, err
}

func (s *CachedStore) Delete(ctx context.Context, path string) error {
	err := s.Store.Delete(ctx, path)
	s.cache.Del([]byte(path))
	return err
}

// Invalidate drops the cached document, used when a write happened elsewhere.
func (s *CachedStore) Invalidate(path string) {
	s.cache.Del([]byte(path))
}

// Follow invalidates cached documents on every change the notifier reports,
// until ctx is done. It returns once the subscription is active.
func (s *CachedStore) Follow(ctx context.Context, notifier Notifier) error {
	sub, err := notifier.Subscribe(ctx, AllChangesTopic)
	if err != nil {
		return fmt.Errorf("follow changes: %w", err)
	}

	go func() {
		defer closeSubscription(sub, AllChangesTopic)
		for {
			select {
			case <-ctx.Done():
				return
			case change, ok := <-sub.Changes():
				if !ok {
					return
				}
				s.Invalidate(change.Path)
			}
		}
	}()

	return nil
}

func (s *CachedStore) EntryCount() int64 {
	return s.cache.EntryCount()
}
