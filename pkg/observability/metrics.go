package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the editor backend
type Metrics struct {
	CommandsTotal    *prometheus.CounterVec
	CommandFailures  *prometheus.CounterVec
	CommandDuration  *prometheus.HistogramVec
	QueriesTotal     *prometheus.CounterVec
	QueryFailures    *prometheus.CounterVec
	QueryDuration    *prometheus.HistogramVec
	OpenSessions     prometheus.Gauge
	SnapshotSaves    prometheus.Counter
	SnapshotFailures prometheus.Counter
}

// NewMetrics registers and returns the application metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fluxo_commands_total",
			Help: "Total editor commands dispatched, by command type.",
		}, []string{"type"}),
		CommandFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fluxo_command_failures_total",
			Help: "Editor commands that returned an error, by command type.",
		}, []string{"type"}),
		CommandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fluxo_command_duration_seconds",
			Help:    "Editor command handling latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"type"}),
		QueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fluxo_queries_total",
			Help: "Total editor queries dispatched, by query type.",
		}, []string{"type"}),
		QueryFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fluxo_query_failures_total",
			Help: "Editor queries that returned an error, by query type.",
		}, []string{"type"}),
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fluxo_query_duration_seconds",
			Help:    "Editor query handling latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"type"}),
		OpenSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fluxo_open_editor_sessions",
			Help: "Editor sessions currently held in memory.",
		}),
		SnapshotSaves: factory.NewCounter(prometheus.CounterOpts{
			Name: "fluxo_snapshot_saves_total",
			Help: "Flow snapshots persisted.",
		}),
		SnapshotFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "fluxo_snapshot_save_failures_total",
			Help: "Flow snapshot persistence failures.",
		}),
	}
}
