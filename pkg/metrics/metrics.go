// Package metrics defines the Prometheus collectors for report runs and
// exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run modes.
const (
	ModeInteractive = "interactive"
	ModeScheduled   = "scheduled"
)

// Metrics holds all Prometheus collectors of the report service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RunsTotal            *prometheus.CounterVec
	RunDuration          *prometheus.HistogramVec
	AccountFailuresTotal prometheus.Counter
	ZoneFailuresTotal    *prometheus.CounterVec
	EmailsTotal          *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewWithRegistry registers the collectors on reg; gatherer backs Handler.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cf_report_runs_total",
				Help: "Total report runs by mode and result (success, failure).",
			},
			[]string{"mode", "result"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cf_report_run_duration_seconds",
				Help:    "Report run duration in seconds.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"mode"},
		),
		AccountFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cf_report_account_failures_total",
				Help: "Total accounts whose report could not be produced.",
			},
		),
		ZoneFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cf_report_zone_failures_total",
				Help: "Total zones left out of a report by outcome (no_data, failed).",
			},
			[]string{"outcome"},
		),
		EmailsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cf_report_emails_total",
				Help: "Total report emails by result (sent, failed).",
			},
			[]string{"result"},
		),
		gatherer: gatherer,
	}

	reg.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.AccountFailuresTotal,
		m.ZoneFailuresTotal,
		m.EmailsTotal,
	)

	return m
}

// ObserveRun records one finished run.
func (m *Metrics) ObserveRun(mode string, started time.Time, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.RunsTotal.WithLabelValues(mode, result).Inc()
	m.RunDuration.WithLabelValues(mode).Observe(time.Since(started).Seconds())
}

func (m *Metrics) AccountFailed() {
	if m == nil {
		return
	}
	m.AccountFailuresTotal.Inc()
}

func (m *Metrics) ZoneFailed(outcome string) {
	if m == nil {
		return
	}
	m.ZoneFailuresTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) EmailSent(err error) {
	if m == nil {
		return
	}
	result := "sent"
	if err != nil {
		result = "failed"
	}
	m.EmailsTotal.WithLabelValues(result).Inc()
}

// Handler returns the Prometheus scrape HTTP handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
