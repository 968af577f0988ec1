// Package metrics defines the Prometheus collectors of the server.
//
// Every recording method is safe on a nil *Metrics, so components can be
// constructed without metrics in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/go-repa/models"
)

const namespace = "repa"

// Login results.
const (
	LoginSuccess   = "success"
	LoginFailure   = "failure"
	LoginInactive  = "inactive"
	LoginThrottled = "throttled"
)

// Metrics holds all collectors.
type Metrics struct {
	RegistrationsTotal  prometheus.Counter
	ConfirmationsTotal  prometheus.Counter
	LoginsTotal         *prometheus.CounterVec
	TokenRejections     *prometheus.CounterVec
	RBACDenialsTotal    prometheus.Counter
	HTTPRequestDuration *prometheus.HistogramVec
	UsersByState        *prometheus.GaugeVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them in registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		RegistrationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Number of accounts registered.",
		}),
		ConfirmationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "confirmations_total",
			Help:      "Number of e-mail addresses confirmed.",
		}),
		LoginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		TokenRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_rejections_total",
			Help:      "Bearer tokens rejected by reason.",
		}, []string{"reason"}),
		RBACDenialsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rbac_denials_total",
			Help:      "Requests denied by the role gate.",
		}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		UsersByState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "users",
			Help:      "Accounts by lifecycle state.",
		}, []string{"state"}),
		gatherer: registry,
	}

	registry.MustRegister(
		m.RegistrationsTotal,
		m.ConfirmationsTotal,
		m.LoginsTotal,
		m.TokenRejections,
		m.RBACDenialsTotal,
		m.HTTPRequestDuration,
		m.UsersByState,
	)

	return m
}

func (m *Metrics) IncRegistration() {
	if m == nil {
		return
	}
	m.RegistrationsTotal.Inc()
}

func (m *Metrics) IncConfirmation() {
	if m == nil {
		return
	}
	m.ConfirmationsTotal.Inc()
}

func (m *Metrics) IncLogin(result string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) IncTokenRejection(reason string) {
	if m == nil {
		return
	}
	m.TokenRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncRBACDenial() {
	if m == nil {
		return
	}
	m.RBACDenialsTotal.Inc()
}

// ObserveRequest records one served request. route is the matched route
// pattern, never the raw path.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// SetUserStats publishes per-state account counts.
func (m *Metrics) SetUserStats(stats models.UserStats) {
	if m == nil {
		return
	}
	for state, count := range stats {
		m.UsersByState.WithLabelValues(string(state)).Set(float64(count))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
