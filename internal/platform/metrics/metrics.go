package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. Services take a
// *Metrics that may be nil (tests pass nil to avoid duplicate registration
// on the default registry).
type Metrics struct {
	Registrations      prometheus.Counter
	RequestsSubmitted  *prometheus.CounterVec
	Decisions          *prometheus.CounterVec
	RequestsResolved   *prometheus.CounterVec
	Donations          prometheus.Counter
	HTTPRequestSeconds *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "petheaven_registrations_total",
			Help: "Total number of user accounts registered",
		}),
		RequestsSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "petheaven_requests_submitted_total",
			Help: "Total requests submitted, by kind",
		}, []string{"kind"}),
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "petheaven_decisions_total",
			Help: "Total staff decisions, by outcome",
		}, []string{"outcome"}),
		RequestsResolved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "petheaven_requests_resolved_total",
			Help: "Total owner resolutions (payments and collection confirmations), by kind",
		}, []string{"kind"}),
		Donations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "petheaven_donations_total",
			Help: "Total simulated donations accepted",
		}),
		HTTPRequestSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "petheaven_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

func (m *Metrics) IncRegistrations() {
	m.Registrations.Inc()
}

func (m *Metrics) IncSubmitted(kind string) {
	m.RequestsSubmitted.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncDecision(outcome string) {
	m.Decisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncResolved(kind string) {
	m.RequestsResolved.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncDonations() {
	m.Donations.Inc()
}
