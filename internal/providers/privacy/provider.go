// Package privacy is the Privacy (PCTF04) capability provider. It keeps
// PIPEDA consent bookkeeping for data subjects: grants are append-only
// records, revocation stamps rather than deletes.
package privacy

import (
	"context"
	"sync"
	"time"

	"github.com/phi-beta/DIACC-PCTF/internal/audit"
	"github.com/phi-beta/DIACC-PCTF/internal/conformance"
	dErrors "github.com/phi-beta/DIACC-PCTF/pkg/domain-errors"
	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
)

// ConsentRecord captures one consent grant for a subject and purpose.
type ConsentRecord struct {
	SubjectID string     `json:"subject_id"`
	Purpose   string     `json:"purpose"`
	GrantedAt time.Time  `json:"granted_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// Active reports whether the consent is usable at the given instant.
func (c ConsentRecord) Active(now time.Time) bool {
	if c.RevokedAt != nil {
		return false
	}
	return c.ExpiresAt == nil || c.ExpiresAt.After(now)
}

// Provider serves one participant's privacy capability.
type Provider struct {
	participantID domain.ParticipantID
	recorder      audit.Recorder

	mu       sync.RWMutex
	consents map[string][]ConsentRecord
}

func New(participantID domain.ParticipantID, recorder audit.Recorder) *Provider {
	if recorder == nil {
		recorder = audit.Discard{}
	}
	return &Provider{
		participantID: participantID,
		recorder:      recorder,
		consents:      make(map[string][]ConsentRecord),
	}
}

// GrantConsent records a consent grant.
func (p *Provider) GrantConsent(ctx context.Context, subjectID, purpose string, ttl time.Duration) (ConsentRecord, error) {
	if subjectID == "" || purpose == "" {
		return ConsentRecord{}, dErrors.New(dErrors.CodeBadRequest, "subject id and purpose are required")
	}
	record := ConsentRecord{
		SubjectID: subjectID,
		Purpose:   purpose,
		GrantedAt: time.Now(),
	}
	if ttl > 0 {
		expires := record.GrantedAt.Add(ttl)
		record.ExpiresAt = &expires
	}
	p.mu.Lock()
	p.consents[subjectID] = append(p.consents[subjectID], record)
	p.mu.Unlock()

	p.recorder.Record(ctx, audit.Event{
		Action:        "privacy.grant_consent",
		ParticipantID: p.participantID,
		Actor:         subjectID,
		Outcome:       purpose,
	})
	return record, nil
}

// RevokeConsent stamps every matching grant as revoked.
func (p *Provider) RevokeConsent(ctx context.Context, subjectID, purpose string) error {
	now := time.Now()
	p.mu.Lock()
	records := p.consents[subjectID]
	revoked := false
	for i := range records {
		if records[i].Purpose == purpose && records[i].RevokedAt == nil {
			records[i].RevokedAt = &now
			revoked = true
		}
	}
	p.consents[subjectID] = records
	p.mu.Unlock()

	if !revoked {
		return dErrors.Newf(dErrors.CodeNotFound, "no active consent for purpose %s", purpose)
	}
	p.recorder.Record(ctx, audit.Event{
		Action:        "privacy.revoke_consent",
		ParticipantID: p.participantID,
		Actor:         subjectID,
		Outcome:       purpose,
	})
	return nil
}

// Consents returns a subject's consent records in grant order.
func (p *Provider) Consents(subjectID string) []ConsentRecord {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]ConsentRecord{}, p.consents[subjectID]...)
}

// ConformanceCriteria returns the Privacy component catalog.
func (p *Provider) ConformanceCriteria() []conformance.Criterion {
	return []conformance.Criterion{
		{
			ID:                   "PCTF04-PRIV-01",
			Description:          "Personal information is collected only with recorded consent",
			AssuranceLevel:       domain.LOA2,
			RiskLevel:            conformance.RiskHigh,
			Required:             true,
			MitigationStrategies: []string{"Consent record per purpose", "Purpose limitation check"},
		},
		{
			ID:                   "PCTF04-PRIV-02",
			Description:          "Consent withdrawal is honored without deleting the audit trail",
			AssuranceLevel:       domain.LOA2,
			RiskLevel:            conformance.RiskHigh,
			Required:             true,
			MitigationStrategies: []string{"Revocation timestamps", "Append-only consent history"},
		},
		{
			ID:                   "PCTF04-PRIV-03",
			Description:          "Consent records carry expiry where retention is time-bound",
			AssuranceLevel:       domain.LOA1,
			RiskLevel:            conformance.RiskMedium,
			Required:             false,
			MitigationStrategies: []string{"TTL on grants"},
		},
	}
}
