// Package memory is an in-process LRU key-value store with per-entry expiry.
package memory

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kailas-cloud/cinedex/internal/db"
)

// Compile-time check: Store implements db.KVStore.
var _ db.KVStore = (*Store)(nil)

type item struct {
	value     []byte
	expiredAt time.Time // zero means no expiry
}

// Store is a size-bounded LRU. Safe for concurrent use.
type Store struct {
	storage *lru.Cache[string, item]
	now     func() time.Time
}

// NewStore creates a store holding at most size entries.
func NewStore(size int) (*Store, error) {
	c, err := lru.New[string, item](size)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	return &Store{storage: c, now: time.Now}, nil
}

// Get returns the value or db.ErrKeyNotFound when missing or expired.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	it, ok := s.storage.Get(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	if !it.expiredAt.IsZero() && s.now().After(it.expiredAt) {
		s.storage.Remove(key)
		return nil, db.ErrKeyNotFound
	}
	return it.value, nil
}

// Set stores value without expiry.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.storage.Add(key, item{value: value})
	return nil
}

// SetWithTTL stores value until ttl elapses. A non-positive ttl never expires.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return s.Set(ctx, key, value)
	}
	s.storage.Add(key, item{value: value, expiredAt: s.now().Add(ttl)})
	return nil
}

// Len returns the number of cached entries, expired ones included.
func (s *Store) Len() int {
	return s.storage.Len()
}
