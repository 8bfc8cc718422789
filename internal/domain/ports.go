package domain

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrNotFound: the requested venue id does not exist in the snapshot.
	ErrNotFound = errors.New("venue not found")
	// ErrStoreUnavailable: the backing medium is missing, unreadable,
	// unwritable, or holds malformed data.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Store owns the backing medium. Load always reads the full document;
// Save always overwrites it wholesale. There is no partial access.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// Cache is an optional read-side cache. Implementations must tolerate a
// miss on every call; the services treat it as best-effort.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// BlobStore persists uploaded photo bytes and returns a stable reference
// string. The review engine only ever stores the references.
type BlobStore interface {
	Put(ctx context.Context, filename string, r io.Reader) (string, error)
}

// ReviewPayload is the loosely-typed client input for review creation.
// Every field is optional; numeric fields arrive as raw strings and are
// coerced by the service.
type ReviewPayload struct {
	Author    string
	Text      string
	Bathrooms string
	Food      string
	Parking   string
	Fields    string
}
