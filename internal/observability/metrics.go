package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK         = "ok"
	OutcomeInvalid    = "invalid"
	OutcomeStructural = "structural_error"
	OutcomeNonFinite  = "non_finite"
)

// Metrics holds the Prometheus collectors for the calculator service.
type Metrics struct {
	Calculations        *prometheus.CounterVec // labels: outcome={ok,invalid,structural_error,non_finite}
	Warnings            *prometheus.CounterVec // labels: kind
	CalculationDuration prometheus.Histogram
	Exports             *prometheus.CounterVec // labels: format={csv,pdf,xlsx}
	HistoryEntries      prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tankcalc",
			Name:      "calculations_total",
			Help:      "Tank design calculations by outcome.",
		}, []string{"outcome"}),
		Warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tankcalc",
			Name:      "warnings_total",
			Help:      "Advisory warnings attached to calculation results.",
		}, []string{"kind"}),
		CalculationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tankcalc",
			Name:      "calculation_duration_seconds",
			Help:      "Time spent validating and calculating one tank.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
		}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tankcalc",
			Name:      "exports_total",
			Help:      "Generated report exports by format.",
		}, []string{"format"}),
		HistoryEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tankcalc",
			Name:      "history_entries",
			Help:      "Saved calculations across all live sessions.",
		}),
	}
}

// NewMetrics creates the collectors and registers them with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Calculations,
		m.Warnings,
		m.CalculationDuration,
		m.Exports,
		m.HistoryEntries,
	)
	return m
}

// NewMetricsForTesting creates unregistered collectors so tests can build
// as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// The helpers below accept a nil receiver so handlers work without metrics.

func (m *Metrics) ObserveCalculation(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Calculations.WithLabelValues(outcome).Inc()
	m.CalculationDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveWarning(kind string) {
	if m == nil {
		return
	}
	m.Warnings.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveExport(format string) {
	if m == nil {
		return
	}
	m.Exports.WithLabelValues(format).Inc()
}

func (m *Metrics) AddHistoryEntries(delta int) {
	if m == nil {
		return
	}
	m.HistoryEntries.Add(float64(delta))
}
