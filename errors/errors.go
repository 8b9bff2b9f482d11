package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/roomsync/guest-reconciler/logger"
)

type ErrorType string

const (
	ValidationError   ErrorType = "VALIDATION_ERROR"
	CacheCorruptError ErrorType = "CACHE_CORRUPT"
	CacheExpiredError ErrorType = "CACHE_EXPIRED"
	StorageError      ErrorType = "STORAGE_ERROR"
	ServerError       ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
	Raw     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Detail:  detail,
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Detail:  err.Error(),
		Raw:     err,
	}
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper functions for common errors

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:    ValidationError,
		Message: message,
		Detail:  details,
	}
}

// NewCacheCorruptError classifies an unreadable cached payload. Callers
// recover by treating the cache as empty; the error exists for logging.
func NewCacheCorruptError(key string, err error) *AppError {
	return &AppError{
		Type:    CacheCorruptError,
		Message: "Cached roster is unreadable",
		Detail:  fmt.Sprintf("key: %s", key),
		Raw:     err,
	}
}

// NewCacheExpiredError classifies a cached payload older than the TTL.
func NewCacheExpiredError(key string) *AppError {
	return &AppError{
		Type:    CacheExpiredError,
		Message: "Cached roster has expired",
		Detail:  fmt.Sprintf("key: %s", key),
	}
}

func NewStorageError(err error) *AppError {
	// Log original error but return sanitized message
	logger.GetLogger().Errorw("Storage error", "error", err)
	return &AppError{
		Type:    StorageError,
		Message: "Cache storage operation failed",
		Detail:  "Please try again later",
		Raw:     err,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:    ServerError,
		Message: message,
	}
}
