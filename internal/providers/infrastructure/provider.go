// Package infrastructure is the Infrastructure (PCTF08) capability
// provider, attached only to LOA3+ issuers, verifiers, and relying
// parties. It tracks basic service health counters.
package infrastructure

import (
	"sync"
	"time"

	"github.com/phi-beta/DIACC-PCTF/internal/conformance"
	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
)

// Snapshot is a point-in-time view of a participant's service counters.
type Snapshot struct {
	Requests  uint64    `json:"requests"`
	Failures  uint64    `json:"failures"`
	StartedAt time.Time `json:"started_at"`
}

// Provider serves one participant's infrastructure capability.
type Provider struct {
	participantID domain.ParticipantID

	mu        sync.Mutex
	requests  uint64
	failures  uint64
	startedAt time.Time
}

func New(participantID domain.ParticipantID) *Provider {
	return &Provider{
		participantID: participantID,
		startedAt:     time.Now(),
	}
}

// RecordRequest counts one served request.
func (p *Provider) RecordRequest(failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests++
	if failed {
		p.failures++
	}
}

// Metrics returns the current counters.
func (p *Provider) Metrics() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{Requests: p.requests, Failures: p.failures, StartedAt: p.startedAt}
}

// ConformanceCriteria returns the Infrastructure component catalog.
func (p *Provider) ConformanceCriteria() []conformance.Criterion {
	return []conformance.Criterion{
		{
			ID:                   "PCTF08-INFRA-01",
			Description:          "Service availability is monitored continuously",
			AssuranceLevel:       domain.LOA3,
			RiskLevel:            conformance.RiskHigh,
			Required:             true,
			MitigationStrategies: []string{"Health counters", "Failure rate alerting"},
		},
		{
			ID:                   "PCTF08-INFRA-02",
			Description:          "Operational incidents are traceable to a time window",
			AssuranceLevel:       domain.LOA3,
			RiskLevel:            conformance.RiskMedium,
			Required:             true,
			MitigationStrategies: []string{"Start-time tracking", "Request accounting"},
		},
	}
}
