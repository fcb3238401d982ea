package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Posting metrics
	EntriesPosted      prometheus.Counter
	EntriesCompensated prometheus.Counter
	PostingDuration    prometheus.Histogram
	PostingErrors      *prometheus.CounterVec

	// Distribution metrics
	DistributionsCreated  prometheus.Counter
	DistributionsRejected *prometheus.CounterVec
	DistributionAmount    prometheus.Histogram

	// Payment metrics
	PaymentsRecorded prometheus.Counter
	PaymentsRejected *prometheus.CounterVec
	PaymentAmount    prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		EntriesPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintxn_journal_entries_posted_total",
			Help: "Total number of journal entries posted",
		}),
		EntriesCompensated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintxn_journal_entries_compensated_total",
			Help: "Total number of journal entries rolled back by compensating deletes",
		}),
		PostingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fintxn_posting_duration_seconds",
			Help:    "Duration of ledger posting operations",
			Buckets: prometheus.DefBuckets,
		}),
		PostingErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fintxn_posting_errors_total",
			Help: "Total number of posting failures by kind",
		}, []string{"kind"}),

		DistributionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintxn_distributions_created_total",
			Help: "Total number of distributions recorded",
		}),
		DistributionsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fintxn_distributions_rejected_total",
			Help: "Total number of distributions refused by precondition",
		}, []string{"reason"}),
		DistributionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fintxn_distribution_amount",
			Help:    "Distribution of distributed totals",
			Buckets: prometheus.ExponentialBuckets(100, 10, 6),
		}),

		PaymentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fintxn_payments_recorded_total",
			Help: "Total number of distribution payments recorded",
		}),
		PaymentsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fintxn_payments_rejected_total",
			Help: "Total number of payments refused by precondition",
		}, []string{"reason"}),
		PaymentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fintxn_payment_amount",
			Help:    "Distribution of payment amounts",
			Buckets: prometheus.ExponentialBuckets(10, 10, 6),
		}),

		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fintxn_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fintxn_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fintxn_db_queries_total",
			Help: "Total number of database queries",
		}, []string{"operation"}),
		DBDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fintxn_db_query_duration_seconds",
			Help:    "Duration of database queries",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fintxn_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fintxn_db_errors_total",
			Help: "Total number of database errors",
		}, []string{"operation"}),

		RedisOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fintxn_redis_operations_total",
			Help: "Total number of Redis operations",
		}, []string{"operation"}),
		RedisErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fintxn_redis_errors_total",
			Help: "Total number of Redis errors",
		}, []string{"operation"}),

		RateLimitHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fintxn_rate_limit_hits_total",
			Help: "Total number of rate limited requests",
		}, []string{"path"}),
	}
}
