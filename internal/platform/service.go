// Package platform holds the in-memory platform store and answers
// location prefix searches against it.
package platform

import (
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"ad-platforms/internal/location"
	"ad-platforms/internal/metrics"
)

const (
	// DefaultCacheTTL is how long a search result stays cached.
	DefaultCacheTTL = 10 * time.Minute
	// DefaultCacheSize bounds the number of cached search results.
	DefaultCacheSize = 4096
)

// Platform is an advertising platform and the locations it serves.
type Platform struct {
	Name      string   `json:"name"`
	Locations []string `json:"locations"`
}

// serves reports whether any of p's locations starts with query.
func (p Platform) serves(query string) bool {
	for _, loc := range p.Locations {
		if strings.HasPrefix(loc, query) {
			return true
		}
	}
	return false
}

// snapshot is one generation of the store. Its cache only ever holds
// results computed from its own platforms.
type snapshot struct {
	generation uint64
	platforms  []Platform
	cache      *queryCache
}

// Options configures a Service.
type Options struct {
	CacheTTL  time.Duration
	CacheSize int
}

// Service owns the current platform store and its query cache.
type Service struct {
	log     *slog.Logger
	metrics *metrics.Metrics
	opts    Options

	current atomic.Pointer[snapshot]
	gen     atomic.Uint64
	group   singleflight.Group
}

// NewService creates a Service with an empty store.
func NewService(log *slog.Logger, m *metrics.Metrics, opts Options) *Service {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}

	s := &Service{log: log, metrics: m, opts: opts}
	s.current.Store(s.newSnapshot(0, []Platform{}))
	return s
}

func (s *Service) newSnapshot(gen uint64, platforms []Platform) *snapshot {
	return &snapshot{
		generation: gen,
		platforms:  platforms,
		cache:      newQueryCache(s.opts.CacheSize, s.opts.CacheTTL),
	}
}

// Load replaces the whole store with platforms. Cached search results
// from the previous store are discarded along with it.
func (s *Service) Load(platforms []Platform) {
	if platforms == nil {
		platforms = []Platform{}
	}
	gen := s.gen.Add(1)
	s.current.Store(s.newSnapshot(gen, platforms))

	s.metrics.PlatformsLoaded.Set(float64(len(platforms)))
	s.log.Info("platform store replaced", "platforms", len(platforms), "generation", gen)
}

// Platforms returns the platforms in the current store.
func (s *Service) Platforms() []Platform {
	return s.current.Load().platforms
}

// Search returns the names of platforms serving location, in store order.
// Invalid locations yield an empty result and are never cached.
// The returned slice is shared with the cache and must not be modified.
func (s *Service) Search(query string) []string {
	s.metrics.SearchesTotal.Inc()

	if !location.Valid(query) {
		s.metrics.InvalidQueries.Inc()
		s.log.Warn("invalid location request", "location", query)
		return []string{}
	}

	snap := s.current.Load()
	if names, ok := snap.cache.get(query); ok {
		s.metrics.CacheHitsTotal.Inc()
		return names
	}

	key := strconv.FormatUint(snap.generation, 10) + ":" + query
	leader := false
	v, _, _ := s.group.Do(key, func() (any, error) {
		leader = true
		// Another caller may have filled the cache while we waited on the group.
		if names, ok := snap.cache.get(query); ok {
			s.metrics.CacheHitsTotal.Inc()
			return names, nil
		}
		s.metrics.CacheMissesTotal.Inc()
		names := scan(snap.platforms, query)
		snap.cache.set(query, names)
		s.log.Info("platforms searched", "location", query, "found", len(names))
		return names, nil
	})
	// Callers that shared the leader's scan did not scan themselves.
	if !leader {
		s.metrics.CacheHitsTotal.Inc()
	}
	return v.([]string)
}

// scan collects, in order and without repeats, the names of platforms
// with at least one location prefixed by query.
func scan(platforms []Platform, query string) []string {
	names := []string{}
	seen := make(map[string]struct{})
	for _, p := range platforms {
		if !p.serves(query) {
			continue
		}
		if _, dup := seen[p.Name]; dup {
			continue
		}
		seen[p.Name] = struct{}{}
		names = append(names, p.Name)
	}
	return names
}
