// Package identity is the Verified Person (PCTF05) capability provider. It
// records identity evidence submitted for persons; evidence validation
// itself happens upstream and is out of scope here.
package identity

import (
	"context"
	"sync"
	"time"

	"github.com/phi-beta/DIACC-PCTF/internal/audit"
	"github.com/phi-beta/DIACC-PCTF/internal/conformance"
	dErrors "github.com/phi-beta/DIACC-PCTF/pkg/domain-errors"
	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
)

// Evidence is one piece of identity evidence on file for a person.
type Evidence struct {
	PersonID    string                `json:"person_id"`
	Kind        string                `json:"kind"`
	Issuer      string                `json:"issuer"`
	Level       domain.AssuranceLevel `json:"level"`
	SubmittedAt time.Time             `json:"submitted_at"`
}

// Provider serves one participant's verified-person capability.
type Provider struct {
	participantID domain.ParticipantID
	recorder      audit.Recorder

	mu       sync.RWMutex
	evidence map[string][]Evidence
}

func New(participantID domain.ParticipantID, recorder audit.Recorder) *Provider {
	if recorder == nil {
		recorder = audit.Discard{}
	}
	return &Provider{
		participantID: participantID,
		recorder:      recorder,
		evidence:      make(map[string][]Evidence),
	}
}

// AddEvidence files identity evidence for a person, in submission order.
func (p *Provider) AddEvidence(ctx context.Context, ev Evidence) error {
	if ev.PersonID == "" || ev.Kind == "" {
		return dErrors.New(dErrors.CodeBadRequest, "person id and evidence kind are required")
	}
	if ev.SubmittedAt.IsZero() {
		ev.SubmittedAt = time.Now()
	}
	p.mu.Lock()
	p.evidence[ev.PersonID] = append(p.evidence[ev.PersonID], ev)
	p.mu.Unlock()

	p.recorder.Record(ctx, audit.Event{
		Action:        "identity.add_evidence",
		ParticipantID: p.participantID,
		Actor:         ev.PersonID,
		Outcome:       ev.Kind,
	})
	return nil
}

// EvidenceFor returns the evidence on file for a person.
func (p *Provider) EvidenceFor(personID string) []Evidence {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Evidence{}, p.evidence[personID]...)
}

// ConformanceCriteria returns the Verified Person component catalog.
func (p *Provider) ConformanceCriteria() []conformance.Criterion {
	return []conformance.Criterion{
		{
			ID:                   "PCTF05-VP-01",
			Description:          "Identity evidence is collected from authoritative sources",
			AssuranceLevel:       domain.LOA3,
			RiskLevel:            conformance.RiskHigh,
			Required:             true,
			MitigationStrategies: []string{"Issuer allowlist", "Evidence provenance record"},
		},
		{
			ID:                   "PCTF05-VP-02",
			Description:          "Evidence resolution distinguishes persons with similar attributes",
			AssuranceLevel:       domain.LOA3,
			RiskLevel:            conformance.RiskHigh,
			Required:             true,
			MitigationStrategies: []string{"Multi-attribute matching", "Manual adjudication queue"},
		},
		{
			ID:                   "PCTF05-VP-03",
			Description:          "Evidence records are retained with submission timestamps",
			AssuranceLevel:       domain.LOA2,
			RiskLevel:            conformance.RiskMedium,
			Required:             false,
			MitigationStrategies: []string{"Append-only evidence log"},
		},
	}
}
