package store

import (
	"context"
	"sync"
	"time"

	"github.com/roomsync/guest-reconciler/logger"
	"github.com/roomsync/guest-reconciler/types"
)

// MemoryStore is a process-local CacheStore for embedding and tests. It
// keeps the encoded snapshot bytes so the serialization and expiry paths
// match the durable backends exactly.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
	ttl     time.Duration
	prefix  string
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store with the given TTL.
func NewMemoryStore(ttl time.Duration, prefix string) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]byte),
		ttl:     ttl,
		prefix:  prefix,
		now:     time.Now,
	}
}

// Save stores the roster snapshot under the booking's key.
func (s *MemoryStore) Save(_ context.Context, key types.BookingKey, guests []types.GuestRecord) error {
	if !key.Valid() {
		return errInvalidKey()
	}

	data, err := encodeEntry(guests, s.now())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[storageKey(s.prefix, key)] = data
	return nil
}

// Load returns the cached roster, or nil on a miss, an expired snapshot,
// or a corrupt payload. Expired and corrupt entries are dropped.
func (s *MemoryStore) Load(_ context.Context, key types.BookingKey) []types.GuestRecord {
	if !key.Valid() {
		return nil
	}
	storeKey := storageKey(s.prefix, key)

	s.mu.RLock()
	data, ok := s.entries[storeKey]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	guests, err := decodeEntry(storeKey, data, s.now(), s.ttl)
	if err != nil {
		logger.GetLogger().Debugw("Dropping unusable cached roster", "key", storeKey, "reason", err)
		s.mu.Lock()
		delete(s.entries, storeKey)
		s.mu.Unlock()
		return nil
	}
	return guests
}

// Delete removes the booking's snapshot if present.
func (s *MemoryStore) Delete(_ context.Context, key types.BookingKey) error {
	if !key.Valid() {
		return errInvalidKey()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, storageKey(s.prefix, key))
	return nil
}
