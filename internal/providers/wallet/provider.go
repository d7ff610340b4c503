// Package wallet is the Digital Wallet (PCTF12) capability provider. It
// stores credentials on behalf of holders; the orchestrator attaches it
// with the CLOUD kind by default.
package wallet

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

// Kind distinguishes wallet deployments.
type Kind string

const (
	KindCloud  Kind = "CLOUD"
	KindMobile Kind = "MOBILE"
)

// StoredCredential is a credential held in the wallet.
type StoredCredential struct {
	ID       string    `json:"id"`
	HolderID string    `json:"holder_id"`
	Format   string    `json:"format"`
	Payload  string    `json:"payload"`
	StoredAt time.Time `json:"stored_at"`
}

// Provider serves one participant's wallet capability.
type Provider struct {
	participantID domain.ParticipantID
	kind          Kind
	recorder      audit.Recorder

	mu          sync.RWMutex
	credentials map[string]StoredCredential
}

func New(participantID domain.ParticipantID, kind Kind, recorder audit.Recorder) *Provider {
	if kind == "" {
		kind = KindCloud
	}
	if recorder == nil {
		recorder = audit.Discard{}
	}
	return &Provider{
		participantID: participantID,
		kind:          kind,
		recorder:      recorder,
		credentials:   make(map[string]StoredCredential),
	}
}

// Kind returns the wallet deployment kind.
func (p *Provider) Kind() Kind { return p.kind }

// StoreCredential keeps a credential for a holder.
func (p *Provider) StoreCredential(ctx context.Context, holderID, format, payload string) (StoredCredential, error) {
	if holderID == "" {
		return StoredCredential{}, dErrors.New(dErrors.CodeBadRequest, "holder id is required")
	}
	cred := StoredCredential{
		ID:       uuid.NewString(),
		HolderID: holderID,
		Format:   format,
		Payload:  payload,
		StoredAt: time.Now(),
	}
	p.mu.Lock()
	p.credentials[cred.ID] = cred
	p.mu.Unlock()

	p.recorder.Record(ctx, audit.Event{
		Action:        "wallet.store_credential",
		ParticipantID: p.participantID,
		Actor:         holderID,
	})
	return cred, nil
}

// CredentialsFor returns the credentials a holder keeps in this wallet.
func (p *Provider) CredentialsFor(holderID string) []StoredCredential {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var creds []StoredCredential
	for _, cred := range p.credentials {
		if cred.HolderID == holderID {
			creds = append(creds, cred)
		}
	}
	return creds
}

// ConformanceCriteria returns the Digital Wallet component catalog.
func (p *Provider) ConformanceCriteria() []conformance.Criterion {
	return []conformance.Criterion{
		{
			ID:                   "PCTF12-DW-01",
			Description:          "Stored credentials are retrievable only by their holder",
			AssuranceLevel:       domain.LOA2,
			RiskLevel:            conformance.RiskHigh,
			Required:             true,
			MitigationStrategies: []string{"Holder-scoped lookup", "No cross-holder enumeration"},
		},
		{
			ID:                   "PCTF12-DW-02",
			Description:          "Wallet deployment kind is declared to the framework",
			AssuranceLevel:       domain.LOA1,
			RiskLevel:            conformance.RiskLow,
			Required:             true,
			MitigationStrategies: []string{"Kind declared at attachment"},
		},
		{
			ID:                   "PCTF12-DW-03",
			Description:          "Credential storage records the time of custody",
			AssuranceLevel:       domain.LOA1,
			RiskLevel:            conformance.RiskLow,
			Required:             false,
			MitigationStrategies: []string{"Custody timestamps"},
		},
	}
}
