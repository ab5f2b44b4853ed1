// Package cache stores encoded artifacts so identical generations are not
// repainted.
//
// A generation is fully determined by its mode, dimensions, seed and output
// settings, which makes rendered bytes safe to reuse. Three backends share the
// [Cache] interface:
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one file per entry under the user's cache directory (CLI)
//   - [RedisCache]: shared cache for `mondrian serve` replicas
//
// Keys come from a [Keyer] so every backend sees the same namespace.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is the default lifetime of a cached artifact.
const TTLArtifact = 24 * time.Hour

// Cache is a byte store with per-entry expiry.
// A miss is reported as (nil, false, nil), never as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// ArtifactKeyOpts identifies one rendered artifact.
type ArtifactKeyOpts struct {
	Mode        string `json:"mode"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Seed        uint64 `json:"seed"`
	Format      string `json:"format"`
	JPEGQuality int    `json:"jpeg_quality,omitempty"`
}

// Keyer builds cache keys.
type Keyer struct {
	// Prefix is prepended to every key, e.g. a per-deployment namespace.
	Prefix string
}

// NewKeyer returns a keyer with the given prefix.
func NewKeyer(prefix string) Keyer {
	return Keyer{Prefix: prefix}
}

// ArtifactKey returns the key for an encoded artifact.
func (k Keyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return k.Prefix + hashKey("artifact", opts)
}

// StatsKey returns the key for the subdivision statistics of a generation.
// Stats do not depend on the output format, so Format and JPEGQuality are ignored.
func (k Keyer) StatsKey(opts ArtifactKeyOpts) string {
	opts.Format, opts.JPEGQuality = "", 0
	return k.Prefix + hashKey("stats", opts)
}
