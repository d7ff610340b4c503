// Package registry is the Trust Registry (PCTF13) capability provider. It
// fronts the trust registry engine for participants operating a registry of
// their own.
package registry

import (
	"github.com/phi-beta/DIACC-PCTF/internal/conformance"
	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
)

// Provider serves one participant's trust registry capability.
type Provider struct {
	participantID domain.ParticipantID
}

func New(participantID domain.ParticipantID) *Provider {
	return &Provider{participantID: participantID}
}

// ConformanceCriteria returns the Trust Registry component catalog.
func (p *Provider) ConformanceCriteria() []conformance.Criterion {
	return []conformance.Criterion{
		{
			ID:                   "PCTF13-TR-01",
			Description:          "Registry entries carry a reproducible trust score",
			AssuranceLevel:       domain.LOA3,
			RiskLevel:            conformance.RiskHigh,
			Required:             true,
			MitigationStrategies: []string{"Deterministic scoring formula", "Score range invariant checks"},
		},
		{
			ID:                   "PCTF13-TR-02",
			Description:          "Verification decisions are retained as an append-only history",
			AssuranceLevel:       domain.LOA2,
			RiskLevel:            conformance.RiskMedium,
			Required:             true,
			MitigationStrategies: []string{"Append-only history store"},
		},
		{
			ID:                   "PCTF13-TR-03",
			Description:          "Expired trusted entries are demoted by scheduled maintenance",
			AssuranceLevel:       domain.LOA2,
			RiskLevel:            conformance.RiskMedium,
			Required:             false,
			MitigationStrategies: []string{"Periodic maintenance sweep"},
		},
	}
}
