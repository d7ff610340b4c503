package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the trust registry.
type Metrics struct {
	Registrations   prometheus.Counter
	Verifications   *prometheus.CounterVec
	StatusUpdates   prometheus.Counter
	SweepRuns       *prometheus.CounterVec
	SweepDemotions  prometheus.Counter
	TrustScoreGauge *prometheus.GaugeVec
}

// New creates and registers all trust registry metrics with the default
// registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers against an explicit registerer so tests can use a fresh
// registry instead of the global one.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Registrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "pctf_registry_registrations_total",
			Help: "Total number of trust registry entries registered",
		}),
		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pctf_registry_verifications_total",
			Help: "Total number of trust verifications by resulting status",
		}, []string{"status"}),
		StatusUpdates: factory.NewCounter(prometheus.CounterOpts{
			Name: "pctf_registry_status_updates_total",
			Help: "Total number of admin status transitions",
		}),
		SweepRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pctf_registry_sweep_runs_total",
			Help: "Total number of maintenance sweeps by outcome",
		}, []string{"outcome"}),
		SweepDemotions: factory.NewCounter(prometheus.CounterOpts{
			Name: "pctf_registry_sweep_demotions_total",
			Help: "Total number of expired TRUSTED entries demoted to SUSPENDED",
		}),
		TrustScoreGauge: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pctf_registry_trust_score",
			Help: "Current trust score per registry entry",
		}, []string{"participant_id"}),
	}
}

// ObserveVerification records a verification outcome.
func (m *Metrics) ObserveVerification(status string) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(status).Inc()
}

// ObserveSweep records a sweep outcome ("ok" or "integrity_failure").
func (m *Metrics) ObserveSweep(outcome string) {
	if m == nil {
		return
	}
	m.SweepRuns.WithLabelValues(outcome).Inc()
}

// SetTrustScore tracks the latest computed score for an entry.
func (m *Metrics) SetTrustScore(participantID string, score int) {
	if m == nil {
		return
	}
	m.TrustScoreGauge.WithLabelValues(participantID).Set(float64(score))
}
