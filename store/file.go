package store

import (
	"context"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/roomsync/guest-reconciler/errors"
	"github.com/roomsync/guest-reconciler/logger"
	"github.com/roomsync/guest-reconciler/types"
)

// FileStore persists one JSON snapshot file per booking key inside a
// directory, the durable equivalent of the original client-local storage.
type FileStore struct {
	dir    string
	ttl    time.Duration
	prefix string
	now    func() time.Time
}

// NewFileStore creates the snapshot directory if needed.
func NewFileStore(dir string, ttl time.Duration, prefix string) (*FileStore, error) {
	if dir == "" {
		return nil, apperrors.ValidationFailed("file store directory is required", "")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.Wrap(err, apperrors.StorageError, "failed to create cache directory")
	}
	return &FileStore{
		dir:    dir,
		ttl:    ttl,
		prefix: prefix,
		now:    time.Now,
	}, nil
}

func (s *FileStore) path(key types.BookingKey) string {
	return filepath.Join(s.dir, storageKey(s.prefix, key)+".json")
}

// Save writes the roster snapshot to the booking's file.
func (s *FileStore) Save(_ context.Context, key types.BookingKey, guests []types.GuestRecord) error {
	if !key.Valid() {
		return errInvalidKey()
	}

	data, err := encodeEntry(guests, s.now())
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path(key), data, 0o600); err != nil {
		return apperrors.Wrap(err, apperrors.StorageError, "failed to write roster snapshot")
	}
	return nil
}

// Load returns the cached roster, or nil when the file is absent,
// unreadable, corrupt, or past the TTL. Unusable files are removed.
func (s *FileStore) Load(_ context.Context, key types.BookingKey) []types.GuestRecord {
	if !key.Valid() {
		return nil
	}
	path := s.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.GetLogger().Warnw("Failed to read cached roster", "path", path, "error", err)
		}
		return nil
	}

	guests, err := decodeEntry(storageKey(s.prefix, key), data, s.now(), s.ttl)
	if err != nil {
		logger.GetLogger().Debugw("Dropping unusable cached roster", "path", path, "reason", err)
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.GetLogger().Warnw("Failed to remove unusable cached roster", "path", path, "error", rmErr)
		}
		return nil
	}
	return guests
}

// Delete removes the booking's snapshot file if present.
func (s *FileStore) Delete(_ context.Context, key types.BookingKey) error {
	if !key.Valid() {
		return errInvalidKey()
	}

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return apperrors.Wrap(err, apperrors.StorageError, "failed to delete roster snapshot")
	}
	return nil
}

func errInvalidKey() error {
	return apperrors.ValidationFailed("booking key is required", "a cache operation without a booking id would mix unrelated rosters")
}
