// Package authentication is the Authentication (PCTF03) capability
// provider. It keeps per-participant credential issuance bookkeeping; the
// core consumes only its conformance catalog.
package authentication

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phi-beta/DIACC-PCTF/internal/audit"
	"github.com/phi-beta/DIACC-PCTF/internal/conformance"
	dErrors "github.com/phi-beta/DIACC-PCTF/pkg/domain-errors"
	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
)

// CredentialStatus is the lifecycle state of an issued login credential.
type CredentialStatus string

const (
	CredentialIssued  CredentialStatus = "ISSUED"
	CredentialRevoked CredentialStatus = "REVOKED"
)

// Credential is a login credential issued to a subject.
type Credential struct {
	ID       string           `json:"id"`
	Subject  string           `json:"subject"`
	IssuedAt time.Time        `json:"issued_at"`
	Status   CredentialStatus `json:"status"`
}

// Provider serves one participant's authentication capability.
type Provider struct {
	participantID domain.ParticipantID
	recorder      audit.Recorder

	mu          sync.RWMutex
	credentials map[string]Credential
}

func New(participantID domain.ParticipantID, recorder audit.Recorder) *Provider {
	if recorder == nil {
		recorder = audit.Discard{}
	}
	return &Provider{
		participantID: participantID,
		recorder:      recorder,
		credentials:   make(map[string]Credential),
	}
}

// IssueCredential creates a credential for a subject.
func (p *Provider) IssueCredential(ctx context.Context, subject string) (Credential, error) {
	if subject == "" {
		return Credential{}, dErrors.New(dErrors.CodeBadRequest, "subject is required")
	}
	cred := Credential{
		ID:       uuid.NewString(),
		Subject:  subject,
		IssuedAt: time.Now(),
		Status:   CredentialIssued,
	}
	p.mu.Lock()
	p.credentials[cred.ID] = cred
	p.mu.Unlock()

	p.recorder.Record(ctx, audit.Event{
		Action:        "authentication.issue_credential",
		ParticipantID: p.participantID,
		Actor:         subject,
	})
	return cred, nil
}

// RevokeCredential marks a credential revoked.
func (p *Provider) RevokeCredential(ctx context.Context, credentialID string) error {
	p.mu.Lock()
	cred, ok := p.credentials[credentialID]
	if ok {
		cred.Status = CredentialRevoked
		p.credentials[credentialID] = cred
	}
	p.mu.Unlock()
	if !ok {
		return dErrors.Newf(dErrors.CodeNotFound, "credential %s not found", credentialID)
	}
	p.recorder.Record(ctx, audit.Event{
		Action:        "authentication.revoke_credential",
		ParticipantID: p.participantID,
	})
	return nil
}

// Credential looks up an issued credential.
func (p *Provider) Credential(credentialID string) (Credential, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cred, ok := p.credentials[credentialID]
	return cred, ok
}

// ConformanceCriteria returns the Authentication component catalog.
func (p *Provider) ConformanceCriteria() []conformance.Criterion {
	return []conformance.Criterion{
		{
			ID:                   "PCTF03-AUTH-01",
			Description:          "Credentials are bound to a unique subject at issuance",
			AssuranceLevel:       domain.LOA2,
			RiskLevel:            conformance.RiskHigh,
			Required:             true,
			MitigationStrategies: []string{"Subject uniqueness check at issuance", "Duplicate credential detection"},
		},
		{
			ID:                   "PCTF03-AUTH-02",
			Description:          "Credential revocation takes effect immediately",
			AssuranceLevel:       domain.LOA2,
			RiskLevel:            conformance.RiskHigh,
			Required:             true,
			MitigationStrategies: []string{"Synchronous revocation list update"},
		},
		{
			ID:                   "PCTF03-AUTH-03",
			Description:          "Authentication events are logged with subject and timestamp",
			AssuranceLevel:       domain.LOA1,
			RiskLevel:            conformance.RiskMedium,
			Required:             false,
			MitigationStrategies: []string{"Structured activity log", "Retention policy"},
		},
	}
}
