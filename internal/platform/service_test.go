package platform

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-platforms/internal/metrics"
)

func newTestService(opts Options) (*Service, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(log, m, opts), m
}

func sample() []Platform {
	return []Platform{
		{Name: "Platform1", Locations: []string{"/ru/msk", "/ru/spb"}},
		{Name: "Platform2", Locations: []string{"/en/lon"}},
	}
}

func TestSearch_PrefixMatch(t *testing.T) {
	s, _ := newTestService(Options{})
	s.Load(sample())

	tests := []struct {
		query string
		want  []string
	}{
		{"/ru/msk", []string{"Platform1"}},
		{"/ru", []string{"Platform1"}},
		{"/en", []string{"Platform2"}},
		{"/", []string{"Platform1", "Platform2"}},
		{"/de", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Search(tt.query))
		})
	}
}

func TestSearch_NotSegmentAware(t *testing.T) {
	s, _ := newTestService(Options{})
	s.Load([]Platform{{Name: "Ruble", Locations: []string{"/ruble"}}})

	assert.Equal(t, []string{"Ruble"}, s.Search("/ru"))
}

func TestSearch_MultiplePlatformsInStoreOrder(t *testing.T) {
	s, _ := newTestService(Options{})
	s.Load([]Platform{
		{Name: "Platform1", Locations: []string{"/ru/msk", "/ru/spb"}},
		{Name: "Platform2", Locations: []string{"/ru/msk"}},
	})

	assert.Equal(t, []string{"Platform1", "Platform2"}, s.Search("/ru/msk"))
}

func TestSearch_InvalidLocationNotCached(t *testing.T) {
	s, m := newTestService(Options{})
	s.Load(sample())

	for _, q := range []string{"", " ", "invalid-location", "ru/msk", "/ru/msk/", "/ru/msk?"} {
		assert.Empty(t, s.Search(q), q)
	}

	snap := s.current.Load()
	assert.Equal(t, 0, snap.cache.len())
	assert.Equal(t, 6.0, testutil.ToFloat64(m.InvalidQueries))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CacheMissesTotal))
}

func TestSearch_CachedResultReused(t *testing.T) {
	s, m := newTestService(Options{})
	s.Load(sample())

	first := s.Search("/ru")
	second := s.Search("/ru")

	require.Len(t, first, 1)
	assert.Same(t, &first[0], &second[0], "cached slice should be returned as-is")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMissesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal))
}

func TestSearch_ConcurrentCountsEveryCall(t *testing.T) {
	s, m := newTestService(Options{})
	s.Load(sample())

	const callers = 64
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			assert.Equal(t, []string{"Platform1"}, s.Search("/ru/msk"))
		}()
	}
	close(start)
	wg.Wait()

	hits := testutil.ToFloat64(m.CacheHitsTotal)
	misses := testutil.ToFloat64(m.CacheMissesTotal)
	assert.Equal(t, float64(callers), testutil.ToFloat64(m.SearchesTotal))
	assert.Equal(t, float64(callers), hits+misses)
	assert.Equal(t, 1.0, misses)
}

func TestLoad_DropsCachedResults(t *testing.T) {
	s, _ := newTestService(Options{})
	s.Load(sample())
	require.Equal(t, []string{"Platform1"}, s.Search("/ru"))

	s.Load([]Platform{{Name: "Yandex", Locations: []string{"/ru"}}})

	assert.Equal(t, []string{"Yandex"}, s.Search("/ru"))
}

func TestLoad_ReplacesStore(t *testing.T) {
	s, m := newTestService(Options{})
	assert.Empty(t, s.Platforms())

	s.Load(sample())
	assert.Len(t, s.Platforms(), 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PlatformsLoaded))

	s.Load(nil)
	assert.Empty(t, s.Platforms())
	assert.Empty(t, s.Search("/ru"))
}

func TestSearch_ConcurrentWithLoad(t *testing.T) {
	s, _ := newTestService(Options{})
	s.Load(sample())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got := s.Search("/ru")
				assert.Len(t, got, 1)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				s.Load(sample())
			}
		}()
	}
	wg.Wait()
}
