package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the framework orchestrator.
type Metrics struct {
	Registrations    *prometheus.CounterVec
	ProviderAttached *prometheus.CounterVec
	Assessments      *prometheus.CounterVec
}

// New creates and registers all orchestrator metrics with the default
// registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers against an explicit registerer so tests can use a fresh
// registry instead of the global one.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pctf_framework_registrations_total",
			Help: "Total number of participants registered with the orchestrator by type",
		}, []string{"type"}),
		ProviderAttached: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pctf_framework_providers_attached_total",
			Help: "Total number of capability providers attached by component",
		}, []string{"component"}),
		Assessments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pctf_framework_assessments_total",
			Help: "Total number of conformance assessments by overall outcome",
		}, []string{"outcome"}),
	}
}

// ObserveRegistration records a participant registration.
func (m *Metrics) ObserveRegistration(participantType string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(participantType).Inc()
}

// ObserveAttachment records a provider attachment.
func (m *Metrics) ObserveAttachment(component string) {
	if m == nil {
		return
	}
	m.ProviderAttached.WithLabelValues(component).Inc()
}

// ObserveAssessment records an assessment outcome ("conformant" or
// "nonconformant").
func (m *Metrics) ObserveAssessment(outcome string) {
	if m == nil {
		return
	}
	m.Assessments.WithLabelValues(outcome).Inc()
}
