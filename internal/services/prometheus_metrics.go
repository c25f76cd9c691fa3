package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	listRequests      *prometheus.CounterVec
	listDuration      prometheus.Histogram
	lookupRequests    *prometheus.CounterVec
	lookupDuration    prometheus.Histogram
	lookupResolutions *prometheus.CounterVec
	notificationsSent *prometheus.CounterVec
	customersSeeded   prometheus.Counter
	storedCustomers   prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		listRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_list_requests_total",
				Help: "Total number of customer listing requests",
			},
			[]string{"status"},
		),
		listDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "customer_list_duration_seconds",
				Help:    "Customer listing duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		lookupRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_lookup_requests_total",
				Help: "Total number of single customer lookup requests",
			},
			[]string{"status"},
		),
		lookupDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "customer_lookup_duration_seconds",
				Help:    "Single customer lookup duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		lookupResolutions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_lookup_resolutions_total",
				Help: "Successful lookups by the identifier kind that matched",
			},
			[]string{"matched_by"},
		),
		notificationsSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_sent_total",
				Help: "Total number of notification dispatch attempts",
			},
			[]string{"channel", "provider", "status"},
		),
		customersSeeded: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customers_seeded_total",
				Help: "Total number of generated customer documents seeded",
			},
		),
		storedCustomers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "stored_customers_total",
				Help: "Current number of stored customer documents",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	status := tags["status"]

	switch name {
	case "customer_list_request":
		if status != "" {
			m.listRequests.WithLabelValues(status).Inc()
		}
	case "customer_lookup":
		if status != "" {
			m.lookupRequests.WithLabelValues(status).Inc()
		}
		if matchedBy := tags["matched_by"]; matchedBy != "" {
			m.lookupResolutions.WithLabelValues(matchedBy).Inc()
		}
	case "notification_sent":
		if status != "" {
			m.notificationsSent.WithLabelValues(tags["channel"], tags["provider"], status).Inc()
		}
	case "customer_seeded":
		m.customersSeeded.Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "customer_list":
		m.listDuration.Observe(duration.Seconds())
	case "customer_lookup":
		m.lookupDuration.Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	if name == "stored_customers" {
		m.storedCustomers.Set(value)
	}
}
