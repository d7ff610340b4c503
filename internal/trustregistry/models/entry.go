package models

import (
	"time"

	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
)

// TrustStatus is the registry's state machine for an entry.
//
// Transitions:
//   - TRUSTED → SUSPENDED: automatic, maintenance sweep only, on expiry
//   - any → any: explicit admin transition via UpdateStatus
//   - REVOKED and SUSPENDED are never auto-promoted
//   - UNKNOWN is never assigned internally; it is reserved for callers
//     representing "not found" outside the entry itself
type TrustStatus string

const (
	StatusTrusted     TrustStatus = "TRUSTED"
	StatusProvisional TrustStatus = "PROVISIONAL"
	StatusSuspended   TrustStatus = "SUSPENDED"
	StatusRevoked     TrustStatus = "REVOKED"
	StatusUnknown     TrustStatus = "UNKNOWN"
)

func (s TrustStatus) IsValid() bool {
	switch s {
	case StatusTrusted, StatusProvisional, StatusSuspended, StatusRevoked, StatusUnknown:
		return true
	}
	return false
}

// CertificationStatus is the lifecycle state of a single certification.
type CertificationStatus string

const (
	CertificationActive    CertificationStatus = "ACTIVE"
	CertificationSuspended CertificationStatus = "SUSPENDED"
	CertificationExpired   CertificationStatus = "EXPIRED"
	CertificationRevoked   CertificationStatus = "REVOKED"
)

// Certification is a credential issued to a participant by an external
// authority. It has no lifecycle of its own; it lives and dies with the
// entry that lists it.
type Certification struct {
	CertificationID       string              `json:"certification_id"`
	IssuingAuthority      string              `json:"issuing_authority"`
	CertificationStandard string              `json:"certification_standard"`
	IssuanceDate          time.Time           `json:"issuance_date"`
	ExpirationDate        *time.Time          `json:"expiration_date,omitempty"`
	Scope                 []string            `json:"scope"`
	Status                CertificationStatus `json:"status"`
}

// IsActiveAt reports whether the certification counts as active at the
// given instant: status ACTIVE and either no expiry or an expiry in the
// future. Verification and scoring share this predicate.
func (c Certification) IsActiveAt(now time.Time) bool {
	if c.Status != CertificationActive {
		return false
	}
	return c.ExpirationDate == nil || c.ExpirationDate.After(now)
}

// ContactInformation identifies who to reach about an entry.
type ContactInformation struct {
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// TrustRegistryEntry is the registry's record about a participant. It is
// distinct from the orchestrator's participant record: registering with the
// framework does not create a registry entry.
//
// Invariant: 0 <= TrustScore <= 100 at all times. Out-of-range values are
// reported as integrity errors by the maintenance sweep, never silently
// clamped during validation; the scoring function clamps its own output.
type TrustRegistryEntry struct {
	ParticipantID       domain.ParticipantID   `json:"participant_id"`
	Name                string                 `json:"name"`
	Type                domain.ParticipantType `json:"type"`
	Status              TrustStatus            `json:"status"`
	AssuranceLevel      domain.AssuranceLevel  `json:"assurance_level"`
	Certifications      []Certification        `json:"certifications"`
	RegistrationDate    time.Time              `json:"registration_date"`
	LastVerified        time.Time              `json:"last_verified"`
	ExpirationDate      *time.Time             `json:"expiration_date,omitempty"`
	TrustScore          int                    `json:"trust_score"`
	GovernanceFramework string                 `json:"governance_framework"`
	ContactInformation  ContactInformation     `json:"contact_information"`
	PublicKeys          []string               `json:"public_keys,omitempty"`
}

// ActiveCertifications returns the certifications active at the given
// instant, in catalog order.
func (e *TrustRegistryEntry) ActiveCertifications(now time.Time) []Certification {
	var active []Certification
	for _, c := range e.Certifications {
		if c.IsActiveAt(now) {
			active = append(active, c)
		}
	}
	return active
}

// IsExpiredAt reports whether the entry itself has an expiration date in
// the past.
func (e *TrustRegistryEntry) IsExpiredAt(now time.Time) bool {
	return e.ExpirationDate != nil && e.ExpirationDate.Before(now)
}
