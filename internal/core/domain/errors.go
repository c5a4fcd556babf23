package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist in the catalog.
	// Callers treat this as an empty result, not a fault.
	ErrNotFound = errors.New("not found")

	// ErrSourceUnavailable indicates the corpus source cannot be reached.
	// Covers missing directories, network failures and remote timeouts.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrRateLimited indicates the remote source refused the request due to
	// request-rate exhaustion. The caller decides whether to retry; the core
	// never retries on its own.
	ErrRateLimited = errors.New("rate limited")

	// ErrDuplicateKey indicates two documents in the corpus resolved to the
	// same identifier or path. The catalog build refuses rather than letting
	// one document shadow the other.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceClosed indicates the source has been closed.
	ErrSourceClosed = errors.New("source closed")

	// ErrWatchUnsupported indicates the source cannot push change events.
	// Remote sources without webhook integration return this from Watch.
	ErrWatchUnsupported = errors.New("watch not supported")
)

// DuplicateKeyError reports which key collided during a catalog build and
// where the two claimants live. It wraps ErrDuplicateKey so callers can
// match with errors.Is.
type DuplicateKeyError struct {
	// Field is the colliding key space: "id" or "path".
	Field string

	// Value is the duplicated key value.
	Value string

	// FirstPath is the path of the document that claimed the key first.
	FirstPath string

	// SecondPath is the path of the document that collided.
	SecondPath string
}

// Error implements the error interface.
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s %q: %s and %s", e.Field, e.Value, e.FirstPath, e.SecondPath)
}

// Unwrap allows errors.Is(err, ErrDuplicateKey) to match.
func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}
