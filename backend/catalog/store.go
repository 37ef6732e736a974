// ABOUTME: Catalog store serving the active catalog to HTTP handlers
// ABOUTME: Caches the override file with a TTL and coalesces concurrent reloads

package catalog

import (
	"log/slog"
	"time"

	"github.com/markalston/gpu-tco-analyzer/backend/cache"
	"github.com/markalston/gpu-tco-analyzer/backend/metrics"
	"golang.org/x/sync/singleflight"
)

const (
	// SourceBuiltin marks the compiled-in catalog
	SourceBuiltin = "builtin"
	// SourceFile marks a catalog loaded from CATALOG_PATH
	SourceFile = "file"
	// SourceFallback marks the built-in catalog served after a failed file load
	SourceFallback = "builtin-fallback"
)

const cacheKey = "catalog:active"

// Snapshot is an immutable view of the active catalog.
// Engines must treat Catalog as read-only.
type Snapshot struct {
	Catalog  *Catalog
	Source   string
	LoadedAt time.Time
}

// Store resolves the active catalog from an optional override file
type Store struct {
	path    string
	cache   *cache.Cache[Snapshot]
	sfGroup singleflight.Group
}

// NewStore creates a store for path; an empty path always serves the built-in catalog
func NewStore(path string, ttl time.Duration) *Store {
	return &Store{
		path:  path,
		cache: cache.New[Snapshot](ttl),
	}
}

// Path returns the configured override file path
func (s *Store) Path() string {
	return s.path
}

// Current returns the active catalog snapshot, loading it if the cached copy expired
func (s *Store) Current() Snapshot {
	if snap, ok := s.cache.Get(cacheKey); ok {
		return snap
	}

	v, _, _ := s.sfGroup.Do("load", func() (interface{}, error) {
		if snap, ok := s.cache.Get(cacheKey); ok {
			return snap, nil
		}
		snap := s.load()
		metrics.RecordCatalogLoad(snap.Source)
		s.cache.Set(cacheKey, snap)
		return snap, nil
	})
	return v.(Snapshot)
}

// Reload discards the cached catalog and loads it again
func (s *Store) Reload() Snapshot {
	s.cache.Clear(cacheKey)
	return s.Current()
}

// Close stops the underlying cache sweeper
func (s *Store) Close() {
	s.cache.Stop()
}

func (s *Store) load() Snapshot {
	now := time.Now()
	if s.path == "" {
		c := Default()
		return Snapshot{Catalog: &c, Source: SourceBuiltin, LoadedAt: now}
	}

	c, err := LoadFile(s.path)
	if err != nil {
		slog.Warn("Catalog override failed, serving built-in catalog", "path", s.path, "error", err)
		d := Default()
		return Snapshot{Catalog: &d, Source: SourceFallback, LoadedAt: now}
	}

	slog.Info("Catalog loaded", "path", s.path, "version", c.Version,
		"vendors", len(c.Vendors), "tiers", len(c.Tiers))
	return Snapshot{Catalog: &c, Source: SourceFile, LoadedAt: now}
}
