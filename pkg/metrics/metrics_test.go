package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg, reg)
}

func TestObserveRun(t *testing.T) {
	m := newTestMetrics()

	m.ObserveRun(ModeInteractive, time.Now(), nil)
	m.ObserveRun(ModeInteractive, time.Now(), nil)
	m.ObserveRun(ModeScheduled, time.Now(), errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues(ModeInteractive, "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues(ModeScheduled, "failure")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RunDuration))
}

func TestFailureCounters(t *testing.T) {
	m := newTestMetrics()

	m.AccountFailed()
	m.ZoneFailed("no_data")
	m.ZoneFailed("failed")
	m.ZoneFailed("failed")
	m.EmailSent(nil)
	m.EmailSent(errors.New("rejected"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccountFailuresTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ZoneFailuresTotal.WithLabelValues("no_data")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ZoneFailuresTotal.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsTotal.WithLabelValues("sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsTotal.WithLabelValues("failed")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRun(ModeScheduled, time.Now(), nil)
		m.AccountFailed()
		m.ZoneFailed("failed")
		m.EmailSent(nil)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := newTestMetrics()
	m.AccountFailed()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "cf_report_account_failures_total 1")
}
