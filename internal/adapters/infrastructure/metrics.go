package infrastructure

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "weathertracker"

// Metrics implements the MetricsCollector port with Prometheus collectors.
type Metrics struct {
	CacheLookups       *prometheus.CounterVec // labels: result={hit,miss}
	WeatherAPICalls    *prometheus.CounterVec // labels: provider, success
	AlertsMaterialized *prometheus.CounterVec // labels: outcome={created,failed}
	DispatchEmails     *prometheus.CounterVec // labels: trigger, outcome={sent,failed}
	DispatchRuns       *prometheus.CounterVec // labels: trigger
	DispatchDuration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reading_cache_lookups_total",
			Help:      "Latest-reading cache lookups by result.",
		}, []string{"result"}),
		WeatherAPICalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "weather_api_calls_total",
			Help:      "Weather provider calls by provider and success.",
		}, []string{"provider", "success"}),
		AlertsMaterialized: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "alerts_materialized_total",
			Help:      "Alert rows written from threshold evaluation, by outcome.",
		}, []string{"outcome"}),
		DispatchEmails: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dispatch_emails_total",
			Help:      "Alert emails handled by dispatch runs, by trigger and outcome.",
		}, []string{"trigger", "outcome"}),
		DispatchRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dispatch_runs_total",
			Help:      "Completed dispatch runs by trigger.",
		}, []string{"trigger"}),
		DispatchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "dispatch_run_duration_seconds",
			Help:      "Duration of a dispatch run.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"trigger"}),
	}
}

// NewMetricsForTesting creates Metrics on a fresh registry.
func NewMetricsForTesting() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewMetrics(reg), reg
}

func (m *Metrics) RecordCacheHit(ctx context.Context) {
	m.CacheLookups.WithLabelValues("hit").Inc()
}

func (m *Metrics) RecordCacheMiss(ctx context.Context) {
	m.CacheLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) RecordWeatherAPICall(ctx context.Context, provider string, success bool) {
	m.WeatherAPICalls.WithLabelValues(provider, strconv.FormatBool(success)).Inc()
}

func (m *Metrics) RecordAlertsMaterialized(ctx context.Context, created, failed int) {
	m.AlertsMaterialized.WithLabelValues("created").Add(float64(created))
	m.AlertsMaterialized.WithLabelValues("failed").Add(float64(failed))
}

func (m *Metrics) RecordDispatchRun(ctx context.Context, trigger string, sent, failed int, duration time.Duration) {
	m.DispatchRuns.WithLabelValues(trigger).Inc()
	m.DispatchEmails.WithLabelValues(trigger, "sent").Add(float64(sent))
	m.DispatchEmails.WithLabelValues(trigger, "failed").Add(float64(failed))
	m.DispatchDuration.WithLabelValues(trigger).Observe(duration.Seconds())
}
