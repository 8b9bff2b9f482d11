package store

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roomsync/guest-reconciler/config"
	apperrors "github.com/roomsync/guest-reconciler/errors"
	"github.com/roomsync/guest-reconciler/logger"
	"github.com/roomsync/guest-reconciler/types"
)

// RedisStore keeps roster snapshots in Redis for kiosks that share a
// cache across restarts. The TTL is handed to Redis on write and the
// embedded save timestamp is still checked on read, so an entry written
// under a longer TTL cannot outlive a shortened one.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		prefix: prefix,
		now:    time.Now,
	}
}

// newRedisClient builds a client from the redis section of the config.
func newRedisClient(cfg config.RedisConfig) *redis.Client {
	opts := &redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	}
	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(opts)
}

// Save stores the roster snapshot with the configured expiration.
func (s *RedisStore) Save(ctx context.Context, key types.BookingKey, guests []types.GuestRecord) error {
	if !key.Valid() {
		return errInvalidKey()
	}

	data, err := encodeEntry(guests, s.now())
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, storageKey(s.prefix, key), data, s.ttl).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.StorageError, "failed to write roster snapshot to redis")
	}
	return nil
}

// Load returns the cached roster, or nil on a miss, a redis failure, an
// expired snapshot, or a corrupt payload. Unusable entries are dropped.
func (s *RedisStore) Load(ctx context.Context, key types.BookingKey) []types.GuestRecord {
	if !key.Valid() {
		return nil
	}
	storeKey := storageKey(s.prefix, key)

	data, err := s.client.Get(ctx, storeKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.GetLogger().Warnw("Failed to read cached roster from redis", "key", storeKey, "error", err)
		}
		return nil
	}

	guests, err := decodeEntry(storeKey, data, s.now(), s.ttl)
	if err != nil {
		logger.GetLogger().Debugw("Dropping unusable cached roster", "key", storeKey, "reason", err)
		if delErr := s.client.Del(ctx, storeKey).Err(); delErr != nil {
			logger.GetLogger().Warnw("Failed to remove unusable cached roster", "key", storeKey, "error", delErr)
		}
		return nil
	}
	return guests
}

// Delete removes the booking's snapshot if present.
func (s *RedisStore) Delete(ctx context.Context, key types.BookingKey) error {
	if !key.Valid() {
		return errInvalidKey()
	}

	if err := s.client.Del(ctx, storageKey(s.prefix, key)).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.StorageError, "failed to delete roster snapshot from redis")
	}
	return nil
}
