/*
Package registry defines primitives for binding human-readable usernames to
blockchain addresses.

Records are persisted on an append-only, tag-indexed data network. Nothing in
this package keeps authority over which names are taken: every question about
a username is answered by re-querying a Records backend. The in-memory
backend (MemRecords) exists for tests and local development, the network
backend lives in the regclient subpackage.

Ownership of a name is proven by signing the registration message (see
RegistrationMessage) with the key that controls the claimed address.
*/
package registry

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat is returned for usernames that fail ValidUsername
	ErrInvalidFormat = errors.New("invalid username format")
	// ErrUsernameTaken is for when a username is already registered
	ErrUsernameTaken = errors.New("username is taken")
	// ErrSignatureInvalid indicates the signature was not produced by the
	// claimed address
	ErrSignatureInvalid = errors.New("signature verification failed")
	// ErrUploadFailed indicates an append did not durably commit
	ErrUploadFailed = errors.New("upload failed")
	// ErrBackendUnavailable is the "unknown" outcome of a query: the backend
	// could not be reached, timed out, or answered with something unreadable.
	// It is deliberately distinct from ErrNotFound
	ErrBackendUnavailable = errors.New("registry backend unavailable")
	// ErrNotFound represents a missing record
	ErrNotFound = errors.New("not found")
)

// UploadError carries the backend's detail for a failed append. It matches
// ErrUploadFailed with errors.Is
type UploadError struct {
	Detail string
	Err    error
}

// NewUploadError creates an UploadError from a backend detail string
func NewUploadError(detail string, err error) *UploadError {
	return &UploadError{Detail: detail, Err: err}
}

// Error implements the error interface
func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upload failed: %s: %s", e.Detail, e.Err)
	}
	return fmt.Sprintf("upload failed: %s", e.Detail)
}

// Is makes UploadError match ErrUploadFailed
func (e *UploadError) Is(target error) bool {
	return target == ErrUploadFailed
}

// Unwrap exposes the underlying transport error, if any
func (e *UploadError) Unwrap() error {
	return e.Err
}

// Records is the interface to a durable username store. Implementations
// must be safe for concurrent use and must not cache results across calls.
//
// Metadata is written with every record but only MemRecords returns it.
// The gateway backend rebuilds records from transaction tags, which don't
// carry metadata, so its reads leave Metadata nil
type Records interface {
	// QueryByUsername returns the most recent record for a normalized
	// username. It returns ErrNotFound when no record exists and an error
	// matching ErrBackendUnavailable when the answer is unknown
	QueryByUsername(ctx context.Context, username string) (*Record, error)
	// Append normalizes username & owner, stamps the current time, tags the
	// record and submits it. Failures match ErrUploadFailed
	Append(ctx context.Context, username, owner string, metadata map[string]interface{}) (*Record, error)
	// List returns up to limit records, most recent first
	List(ctx context.Context, limit int) ([]*Record, error)
}

// Pinger is implemented by backends that can report their own health
type Pinger interface {
	Ping(ctx context.Context) error
}
