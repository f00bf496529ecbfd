// Package session is the revocable half of the token scheme: a time-bounded
// key-value store mapping a token identifier to the subject it was issued
// for. A signed token is only honoured while its entry is alive here, which
// is what makes logout and server-side revocation possible.
package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound reports a missing or expired entry. On the gate path this
	// means "expired or revoked", an ordinary 401.
	ErrNotFound = errors.New("session: entry not found")

	// ErrUnavailable reports a backend failure. Callers must surface this as
	// an infrastructure error, never as "not authenticated", so a store
	// outage stays visible as an outage.
	ErrUnavailable = errors.New("session: store unavailable")
)

// Store is the session store adapter. Single-key operations are atomic at
// the backend; the application layers no locking on top.
type Store interface {
	// Put upserts an entry with the given TTL. Idempotent.
	Put(ctx context.Context, tokenID, subjectID string, ttl time.Duration) error

	// Get returns the subject identifier for tokenID, or ErrNotFound if the
	// entry is absent or expired.
	Get(ctx context.Context, tokenID string) (string, error)

	// Delete removes entries. Missing keys are not an error, so logout can
	// retry safely.
	Delete(ctx context.Context, tokenIDs ...string) error

	// Ping reports backend health for readiness checks.
	Ping(ctx context.Context) error

	Close() error
}
