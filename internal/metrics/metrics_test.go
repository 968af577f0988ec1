package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-repa/models"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.IncRegistration()
	m.IncRegistration()
	m.IncConfirmation()
	m.IncLogin(LoginSuccess)
	m.IncLogin(LoginFailure)
	m.IncLogin(LoginFailure)
	m.IncTokenRejection("expired")
	m.IncRBACDenial()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RegistrationsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConfirmationsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginsTotal.WithLabelValues(LoginFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TokenRejections.WithLabelValues("expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RBACDenialsTotal))
}

func TestMetrics_SetUserStats(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.SetUserStats(models.UserStats{models.UserStateActive: 4, models.UserStateUnverified: 1})
	m.SetUserStats(models.UserStats{models.UserStateActive: 3})

	assert.Equal(t, 3.0, testutil.ToFloat64(m.UsersByState.WithLabelValues("active")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UsersByState.WithLabelValues("unverified")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncRegistration()
		m.IncConfirmation()
		m.IncLogin(LoginSuccess)
		m.IncTokenRejection("invalid")
		m.IncRBACDenial()
		m.ObserveRequest(http.MethodGet, "/healthz", 200, time.Millisecond)
		m.SetUserStats(models.UserStats{models.UserStateActive: 1})
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveRequest(http.MethodPost, "/users/login", http.StatusOK, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `repa_http_request_duration_seconds_count{method="POST",route="/users/login",status="200"} 1`)
}
