package models

import (
	"time"

	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
)

// Participant is the orchestrator's record of an ecosystem actor. It is
// distinct from any trust registry entry: framework registration does not
// create one. Identity fields are immutable after registration; IsActive
// may be flipped by administration outside the core.
type Participant struct {
	ParticipantID      domain.ParticipantID   `json:"participant_id"`
	Name               string                 `json:"name"`
	Type               domain.ParticipantType `json:"type"`
	CertificationLevel domain.AssuranceLevel  `json:"certification_level"`
	IsActive           bool                   `json:"is_active"`
	RegistrationDate   time.Time              `json:"registration_date"`
}

// EcosystemValidation reports participant coverage of the ecosystem.
type EcosystemValidation struct {
	Valid             bool                           `json:"valid"`
	TotalParticipants int                            `json:"total_participants"`
	ByType            map[domain.ParticipantType]int `json:"by_type"`
	Issues            []string                       `json:"issues"`
	ValidatedAt       time.Time                      `json:"validated_at"`
}

// StatusReport is a counts snapshot of the orchestrator's state.
type StatusReport struct {
	TotalParticipants  int                            `json:"total_participants"`
	ActiveParticipants int                            `json:"active_participants"`
	ByType             map[domain.ParticipantType]int `json:"by_type"`
	ProvidersByKind    map[string]int                 `json:"providers_by_kind"`
	GeneratedAt        time.Time                      `json:"generated_at"`
}
