// file: internal/metrics/metrics.go
// version: 2.1.0
// guid: 9f8e7d6c-5b4a-3210-9fed-cba876543210

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	searchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookshelf",
		Name:      "searches_total",
		Help:      "Total number of search terms recorded",
	})
	favoritesAdded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookshelf",
		Name:      "favorites_added_total",
		Help:      "Total number of favorites added",
	})
	favoritesRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookshelf",
		Name:      "favorites_rejected_total",
		Help:      "Total number of rejected favorite additions by reason",
	}, []string{"reason"})
	favoritesRemoved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookshelf",
		Name:      "favorites_removed_total",
		Help:      "Total number of favorites removed",
	})
	loadFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookshelf",
		Name:      "kv_load_fallbacks_total",
		Help:      "Reads that returned the fallback value, by key and reason",
	}, []string{"key", "reason"})
	catalogRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookshelf",
		Name:      "catalog_requests_total",
		Help:      "Open Library search requests by result (ok, error, cached)",
	}, []string{"result"})
	rateLimited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookshelf",
		Name:      "rate_limited_total",
		Help:      "API requests rejected by the per-client limit, by route",
	}, []string{"route"})
	catalogDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bookshelf",
		Name:      "catalog_request_duration_seconds",
		Help:      "Histogram of Open Library search request durations",
		Buckets:   prometheus.ExponentialBuckets(0.05, 1.6, 10),
	})

	favoritesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bookshelf",
		Name:      "favorites",
		Help:      "Current number of stored favorites",
	})
	historyGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bookshelf",
		Name:      "history_entries",
		Help:      "Current number of stored search history entries",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(searchesTotal, favoritesAdded, favoritesRejected, favoritesRemoved,
			loadFallbacks, catalogRequests, rateLimited, catalogDuration, favoritesGauge, historyGauge)
	})
}

// Counters
func IncSearches()                       { searchesTotal.Inc() }
func IncFavoritesAdded()                 { favoritesAdded.Inc() }
func IncFavoritesRejected(reason string) { favoritesRejected.WithLabelValues(reason).Inc() }
func IncFavoritesRemoved()               { favoritesRemoved.Inc() }
func IncLoadFallback(key, reason string) { loadFallbacks.WithLabelValues(key, reason).Inc() }
func IncCatalogRequest(result string)    { catalogRequests.WithLabelValues(result).Inc() }
func IncRateLimited(route string)        { rateLimited.WithLabelValues(route).Inc() }
func ObserveCatalogDuration(d time.Duration) {
	catalogDuration.Observe(d.Seconds())
}

// Gauges
func SetFavorites(n int)      { favoritesGauge.Set(float64(n)) }
func SetHistoryEntries(n int) { historyGauge.Set(float64(n)) }
