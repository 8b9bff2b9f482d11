// Package store persists per-booking roster snapshots behind the
// CacheStore interface. Snapshots are TTL-bounded and corruption
// tolerant: loading never fails, it degrades to an empty roster.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roomsync/guest-reconciler/config"
	apperrors "github.com/roomsync/guest-reconciler/errors"
	"github.com/roomsync/guest-reconciler/types"
)

// CacheStore is the roster cache boundary. Implementations serialize the
// roster with a save timestamp, enforce the TTL on load, and treat any
// malformed or expired payload as a miss.
//
// Load deliberately returns no error: a guest must always see some
// roster, so every failure mode degrades to "no cached data".
type CacheStore interface {
	Save(ctx context.Context, key types.BookingKey, guests []types.GuestRecord) error
	Load(ctx context.Context, key types.BookingKey) []types.GuestRecord
	Delete(ctx context.Context, key types.BookingKey) error
}

// NewFromConfig builds the CacheStore selected by the configuration.
func NewFromConfig(cfg *config.Config) (CacheStore, error) {
	switch cfg.Cache.Backend {
	case config.BackendMemory:
		return NewMemoryStore(cfg.Cache.TTL, cfg.Cache.KeyPrefix), nil
	case config.BackendFile:
		return NewFileStore(cfg.Cache.Dir, cfg.Cache.TTL, cfg.Cache.KeyPrefix)
	case config.BackendRedis:
		return NewRedisStore(newRedisClient(cfg.Redis), cfg.Cache.TTL, cfg.Cache.KeyPrefix), nil
	default:
		return nil, apperrors.ValidationFailed("unknown cache backend", string(cfg.Cache.Backend))
	}
}

// storageKey renders the namespaced storage key for a booking.
func storageKey(prefix string, key types.BookingKey) string {
	return prefix + key.StorageKey()
}

// encodeEntry serializes a roster snapshot stamped with the save time.
func encodeEntry(guests []types.GuestRecord, now time.Time) ([]byte, error) {
	if guests == nil {
		guests = []types.GuestRecord{}
	}
	entry := types.CacheEntry{
		Timestamp: now.UnixMilli(),
		Guests:    guests,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal roster snapshot: %w", err)
	}
	return data, nil
}

// decodeEntry parses a stored snapshot and enforces the TTL. It returns
// a typed AppError (CACHE_CORRUPT or CACHE_EXPIRED) for callers to log;
// they recover by treating the cache as empty either way.
func decodeEntry(key string, data []byte, now time.Time, ttl time.Duration) ([]types.GuestRecord, error) {
	var entry types.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, apperrors.NewCacheCorruptError(key, err)
	}
	if entry.Timestamp <= 0 {
		return nil, apperrors.NewCacheCorruptError(key, fmt.Errorf("missing save timestamp"))
	}

	savedAt := time.UnixMilli(entry.Timestamp)
	if now.Sub(savedAt) >= ttl {
		return nil, apperrors.NewCacheExpiredError(key)
	}

	return entry.Guests, nil
}
