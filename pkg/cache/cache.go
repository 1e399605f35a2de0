// Package cache stores compiled layout geometry between CLI invocations.
//
// Compiling a venue is cheap but not free, and the CLI recompiles the same
// venue file over and over while an operator adjusts override lists. The
// compiled geometry depends only on the venue content and the standing-id
// settings, so it is cached under a content hash; live statuses are merged
// on every run and never cached.
//
// Backends:
//   - [FileCache]: JSON files under the user cache directory (default)
//   - [RedisCache]: a shared Redis instance, for hosts running several workers
//   - [NullCache]: disables caching (--no-cache)
//
// Keys are produced by a [Keyer] so hosts can namespace them with
// [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Cache entry lifetimes.
const (
	// TTLLayout bounds how long compiled geometry is kept.
	TTLLayout = 7 * 24 * time.Hour
)

// Key type names reported to observability hooks.
const (
	KeyTypeLayout = "layout"
)

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key of the geometry compiled from the venue
	// whose canonical encoding hashes to venueHash.
	LayoutKey(venueHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts are the compile settings that change the geometry.
type LayoutKeyOpts struct {
	// Seed and Strategy determine standing-seat ids.
	Seed     uint64 `json:"seed"`
	Strategy string `json:"strategy"`

	// Session scopes the key to an editing session, whose standing ids
	// may differ from a fresh compile.
	Session string `json:"session,omitempty"`

	// Version invalidates entries written by older compilers.
	Version string `json:"version,omitempty"`
}

// DefaultKeyer produces keys of the form "layout:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(venueHash string, opts LayoutKeyOpts) string {
	return hashKey(KeyTypeLayout, venueHash, opts)
}
