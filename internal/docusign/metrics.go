package docusign

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records outbound API calls.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the client collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docusign_requests_total",
				Help: "Total number of requests sent to the DocuSign API.",
			},
			[]string{"method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docusign_request_duration_seconds",
				Help:    "Latency of requests sent to the DocuSign API.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}

	if err := reg.Register(m.requests); err != nil {
		return nil, err
	}
	if err := reg.Register(m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// observe is a no-op on a nil receiver so the client works without metrics.
func (m *Metrics) observe(method, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, status).Inc()
	m.duration.WithLabelValues(method).Observe(d.Seconds())
}
