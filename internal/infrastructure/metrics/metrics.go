package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Movement metrics
	MovementsConfirmed *prometheus.CounterVec
	MovementsReversed  *prometheus.CounterVec
	MovementDuration   prometheus.Histogram
	MovementAmount     prometheus.Histogram
	MovementErrors     *prometheus.CounterVec

	// Installment metrics
	InstallmentsSettled prometheus.Counter
	InstallmentsOverdue prometheus.Gauge
	SettlementDuration  prometheus.Histogram

	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountBalance    *prometheus.GaugeVec
	AccountOperations *prometheus.CounterVec

	// Outbox metrics
	OutboxEventsCreated   *prometheus.CounterVec
	OutboxEventsPublished prometheus.Counter
	OutboxPublishErrors   prometheus.Counter
	OutboxBacklog         prometheus.Gauge

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
	RedisDuration   *prometheus.HistogramVec
	RedisErrors     *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Movement metrics
		MovementsConfirmed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealerledger_movements_confirmed_total",
				Help: "Total number of movements confirmed by kind",
			},
			[]string{"kind"},
		),
		MovementsReversed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealerledger_movements_reversed_total",
				Help: "Total number of movements reversed by kind",
			},
			[]string{"kind"},
		),
		MovementDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dealerledger_movement_duration_seconds",
			Help:    "Duration of movement operations",
			Buckets: prometheus.DefBuckets,
		}),
		MovementAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dealerledger_movement_amount",
			Help:    "Movement amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		MovementErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealerledger_movement_errors_total",
				Help: "Total number of movement errors by type",
			},
			[]string{"error_type"},
		),

		// Installment metrics
		InstallmentsSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealerledger_installments_settled_total",
			Help: "Total number of installments settled",
		}),
		InstallmentsOverdue: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "dealerledger_installments_overdue",
			Help: "Current number of overdue unsettled installments",
		}),
		SettlementDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dealerledger_settlement_duration_seconds",
			Help:    "Duration of settlement operations",
			Buckets: prometheus.DefBuckets,
		}),

		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealerledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountBalance: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dealerledger_account_balance",
				Help: "Current account balance",
			},
			[]string{"account_id"},
		),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealerledger_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),

		// Outbox metrics
		OutboxEventsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealerledger_outbox_events_total",
				Help: "Total outbox events created by type",
			},
			[]string{"event_type"},
		),
		OutboxEventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealerledger_outbox_events_published_total",
			Help: "Total outbox events published",
		}),
		OutboxPublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dealerledger_outbox_publish_errors_total",
			Help: "Total outbox publish errors",
		}),
		OutboxBacklog: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "dealerledger_outbox_backlog",
			Help: "Current number of unpublished outbox events",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealerledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dealerledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealerledger_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dealerledger_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "dealerledger_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealerledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealerledger_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dealerledger_redis_duration_seconds",
				Help:    "Redis operation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealerledger_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dealerledger_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
