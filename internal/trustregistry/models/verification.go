package models

import (
	"time"

	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
)

// VerificationRequest asks the registry whether a participant can be relied
// on. RequestedBy is informational; the registry does not authenticate
// callers.
type VerificationRequest struct {
	ParticipantID domain.ParticipantID `json:"participant_id"`
	RequestedBy   string               `json:"requested_by,omitempty"`
	Purpose       string               `json:"purpose,omitempty"`
}

// VerificationDetails itemizes the checks behind a verification decision.
type VerificationDetails struct {
	CriteriaChecked []string `json:"criteria_checked"`
	Passed          []string `json:"passed"`
	Failed          []string `json:"failed"`
	Warnings        []string `json:"warnings"`
}

// ValidityWindow bounds how long a verification result should be relied on.
// It is a data value only; nothing schedules invalidation when it lapses.
type ValidityWindow struct {
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
}

// TrustVerificationResult is the point-in-time outcome of evaluating an
// entry. Immutable once created; appended to the per-participant history in
// call order.
type TrustVerificationResult struct {
	ParticipantID    domain.ParticipantID `json:"participant_id"`
	TrustStatus      TrustStatus          `json:"trust_status"`
	TrustScore       int                  `json:"trust_score"`
	VerificationDate time.Time            `json:"verification_date"`
	Details          VerificationDetails  `json:"verification_details"`
	Validity         ValidityWindow       `json:"validity"`
}

// SearchCriteria filters registry entries. Zero-valued fields are ignored;
// set fields are AND-combined. No pagination.
type SearchCriteria struct {
	Type           domain.ParticipantType `json:"type,omitempty"`
	Status         TrustStatus            `json:"status,omitempty"`
	AssuranceLevel domain.AssuranceLevel  `json:"assurance_level,omitempty"`
	MinTrustScore  int                    `json:"min_trust_score,omitempty"`
}

// StatusUpdate reports the outcome of an admin status transition.
type StatusUpdate struct {
	ParticipantID  domain.ParticipantID `json:"participant_id"`
	PreviousStatus TrustStatus          `json:"previous_status"`
	NewStatus      TrustStatus          `json:"new_status"`
	TrustScore     int                  `json:"trust_score"`
	Reason         string               `json:"reason"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// MaintenanceReport summarizes one maintenance sweep.
type MaintenanceReport struct {
	EntriesChecked  int       `json:"entries_checked"`
	ScoresUpdated   int       `json:"scores_updated"`
	EntriesDemoted  int       `json:"entries_demoted"`
	CompletedAt     time.Time `json:"completed_at"`
	IntegrityIssues []string  `json:"integrity_issues,omitempty"`
}
