package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the bookkeeping API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	storeErrors     *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	documentsPosted *prometheus.CounterVec
	ledgersComputed *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cloudbook_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		storeErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudbook_store_errors_total",
				Help: "Total errors from the collection store backend.",
			},
			[]string{"backend"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudbook_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudbook_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		documentsPosted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudbook_documents_posted_total",
				Help: "Total documents posted by type.",
			},
			[]string{"type"},
		),
		ledgersComputed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudbook_ledgers_computed_total",
				Help: "Total ledger computations by subject kind.",
			},
			[]string{"kind"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudbook_requests_total",
				Help: "Total requests processed.",
			},
			[]string{"status"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrStoreError increments the store error counter.
func (m *Metrics) IncrStoreError(backend string) {
	m.storeErrors.WithLabelValues(backend).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrDocumentPosted increments the posted-document counter for a type.
func (m *Metrics) IncrDocumentPosted(docType string) {
	m.documentsPosted.WithLabelValues(docType).Inc()
}

// IncrLedgerComputed increments the ledger computation counter.
func (m *Metrics) IncrLedgerComputed(kind string) {
	m.ledgersComputed.WithLabelValues(kind).Inc()
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// OpsSnapshot is a condensed view of the counters for the
// GET /v1/metrics/summary endpoint.
type OpsSnapshot struct {
	TotalRequests   int64   `json:"total_requests"`
	ErrorRate       float64 `json:"error_rate"`
	CacheHitRate    float64 `json:"cache_hit_rate"`
	DocumentsPosted int64   `json:"documents_posted"`
	LedgersComputed int64   `json:"ledgers_computed"`
	Period          string  `json:"period"`
}

// GetOpsSnapshot reads current counter values into an OpsSnapshot.
func (m *Metrics) GetOpsSnapshot() *OpsSnapshot {
	totalRequests := getCounterValue(m.requestsTotal, "success") +
		getCounterValue(m.requestsTotal, "error")
	errorCount := getCounterValue(m.requestsTotal, "error")
	cacheHits := getCounterValue(m.cacheHits, "reports")
	cacheMisses := getCounterValue(m.cacheMisses, "reports")

	ledgers := float64(0)
	for _, kind := range []string{"account", "customer", "vendor"} {
		ledgers += getCounterValue(m.ledgersComputed, kind)
	}

	docs := float64(0)
	for _, docType := range []string{
		"Sales Invoice", "Sales Order", "Sales Return",
		"Purchase Bill", "Purchase Return",
		"Receipt", "Payment",
		"Credit Note", "Debit Note",
		"Contra Entry", "Journal",
	} {
		docs += getCounterValue(m.documentsPosted, docType)
	}

	errorRate := float64(0)
	if totalRequests > 0 {
		errorRate = errorCount / totalRequests
	}
	cacheHitRate := float64(0)
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	return &OpsSnapshot{
		TotalRequests:   int64(totalRequests),
		ErrorRate:       errorRate,
		CacheHitRate:    cacheHitRate,
		DocumentsPosted: int64(docs),
		LedgersComputed: int64(ledgers),
		Period:          "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
