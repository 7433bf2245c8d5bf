// Package storage holds the durable key-value layer beneath the typed stores.
// All state lives under three string keys as JSON blobs; the typed stores keep
// an in-memory mirror as the fast path and use this layer purely for
// durability, so switching backends never changes behavior.
package storage

import "context"

// Logical keys. The blob formats under these keys are the compatibility
// surface with previously persisted data; do not rename.
const (
	KeyCurrentUser = "user"
	KeyUsers       = "users"
	KeyReports     = "reports"
)

// BlobStore is interface-driven so in-memory, file, Redis, and Postgres
// backends can be swapped without rewiring business code. Set and Remove must
// complete (or surface failure) before returning; callers treat a nil error as
// durability.
type BlobStore interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
