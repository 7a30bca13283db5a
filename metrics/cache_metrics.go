package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type cacheCollector struct {
	hits     *prometheus.CounterVec
	misses   *prometheus.CounterVec
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	hitRatio *prometheus.GaugeVec
}

var (
	collector     *cacheCollector
	collectorOnce sync.Once
)

// Registering the same collector twice panics, so the vectors are
// process-global and shared by every CacheMetrics instance.
func getCollector() *cacheCollector {
	collectorOnce.Do(func() {
		collector = &cacheCollector{
			hits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weather_cache_hits_total",
					Help: "The total number of cache hits",
				},
				[]string{"cache_type"},
			),
			misses: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weather_cache_misses_total",
					Help: "The total number of cache misses",
				},
				[]string{"cache_type"},
			),
			requests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weather_cache_requests_total",
					Help: "The total number of cache requests",
				},
				[]string{"cache_type"},
			),
			latency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "weather_cache_duration_seconds",
					Help:    "Cache operation duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"cache_type", "operation"},
			),
			hitRatio: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "weather_cache_hit_ratio",
					Help: "Cache hit ratio (hits/total requests)",
				},
				[]string{"cache_type"},
			),
		}
	})
	return collector
}

// CacheMetrics tracks hit/miss counters for one cache backend.
type CacheMetrics struct {
	cacheType string
	collector *cacheCollector

	mu     sync.RWMutex
	hits   int64
	misses int64
	total  int64
}

// NewCacheMetrics creates a metrics tracker labeled with the backend type.
func NewCacheMetrics(cacheType string) *CacheMetrics {
	return &CacheMetrics{
		cacheType: cacheType,
		collector: getCollector(),
	}
}

func (m *CacheMetrics) RecordHit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hits++
	m.total++
	m.collector.hits.WithLabelValues(m.cacheType).Inc()
	m.collector.requests.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

func (m *CacheMetrics) RecordMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.misses++
	m.total++
	m.collector.misses.WithLabelValues(m.cacheType).Inc()
	m.collector.requests.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

func (m *CacheMetrics) RecordLatency(operation string, seconds float64) {
	m.collector.latency.WithLabelValues(m.cacheType, operation).Observe(seconds)
}

// updateHitRatio must be called while holding the mutex.
func (m *CacheMetrics) updateHitRatio() {
	if m.total > 0 {
		m.collector.hitRatio.WithLabelValues(m.cacheType).Set(float64(m.hits) / float64(m.total))
	}
}

// Stats is a point-in-time view of the counters.
type Stats struct {
	CacheType string
	Hits      int64
	Misses    int64
	Total     int64
	HitRatio  float64
}

func (m *CacheMetrics) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ratio float64
	if m.total > 0 {
		ratio = float64(m.hits) / float64(m.total)
	}

	return Stats{
		CacheType: m.cacheType,
		Hits:      m.hits,
		Misses:    m.misses,
		Total:     m.total,
		HitRatio:  ratio,
	}
}
