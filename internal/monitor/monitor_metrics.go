package monitor

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the monitor subsystem.
type Metrics struct {
	SubmitsTotal     *prometheus.CounterVec
	IncidentsTracked prometheus.Gauge
	UpdatesSeen      prometheus.Gauge
	EmitBytes        prometheus.Histogram
}

// NewMetrics registers and returns monitor metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SubmitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statuswatch_submits_total",
			Help: "Total webhook submissions by outcome.",
		}, []string{"result"}),
		IncidentsTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "statuswatch_incidents_tracked",
			Help: "Distinct incident IDs currently tracked.",
		}),
		UpdatesSeen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "statuswatch_updates_seen",
			Help: "Distinct update identities accepted since start.",
		}),
		EmitBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "statuswatch_emit_bytes",
			Help:    "Size of emitted incident blocks in bytes.",
			Buckets: prometheus.ExponentialBuckets(64, 2, 8), // 64B .. ~8KB
		}),
	}

	reg.MustRegister(
		m.SubmitsTotal,
		m.IncidentsTracked,
		m.UpdatesSeen,
		m.EmitBytes,
	)

	return m
}
