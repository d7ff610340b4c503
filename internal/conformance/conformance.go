// Package conformance defines the capability-provider contract: every
// provider publishes a static criterion catalog, and the orchestrator folds
// per-criterion assessments into component and overall conformance.
package conformance

import (
	"time"

	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
)

// Component identifies a PCTF capability component.
type Component string

const (
	ComponentAuthentication Component = "AUTHENTICATION"
	ComponentVerifiedPerson Component = "VERIFIED_PERSON"
	ComponentPrivacy        Component = "PRIVACY"
	ComponentInfrastructure Component = "INFRASTRUCTURE"
	ComponentDigitalWallet  Component = "DIGITAL_WALLET"
	ComponentTrustRegistry  Component = "TRUST_REGISTRY"
)

// Components returns every component in assessment order. The order of
// componentResults in an assessment follows this enumeration; consumers
// diff reports, so it is an observable contract.
func Components() []Component {
	return []Component{
		ComponentAuthentication,
		ComponentVerifiedPerson,
		ComponentPrivacy,
		ComponentInfrastructure,
		ComponentDigitalWallet,
		ComponentTrustRegistry,
	}
}

// RiskLevel rates the impact of failing a criterion.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Criterion is a named, risk-rated requirement a provider claims to
// satisfy. Catalogs are static per provider instance.
type Criterion struct {
	ID                   string                `json:"id"`
	Description          string                `json:"description"`
	AssuranceLevel       domain.AssuranceLevel `json:"assurance_level"`
	RiskLevel            RiskLevel             `json:"risk_level"`
	Required             bool                  `json:"required"`
	MitigationStrategies []string              `json:"mitigation_strategies"`
}

// Provider is the single capability every provider exposes to the core.
// Implementations must be side-effect-free and return a stable catalog.
type Provider interface {
	ConformanceCriteria() []Criterion
}

// AssessedCriterion is the outcome of assessing one criterion. Results are
// created fresh on every assessment and never persisted.
type AssessedCriterion struct {
	CriterionID  string    `json:"criterion_id"`
	Description  string    `json:"description"`
	IsConformant bool      `json:"is_conformant"`
	Evidence     string    `json:"evidence"`
	LastAssessed time.Time `json:"last_assessed"`
}

// ComponentResult aggregates one component's assessed criteria.
// IsConformant is the AND over all of them.
type ComponentResult struct {
	Component    Component           `json:"component"`
	IsConformant bool                `json:"is_conformant"`
	Criteria     []AssessedCriterion `json:"criteria"`
}

// AssessmentResult is the full conformance tree for one participant.
// OverallConformance is the AND over the components present; components a
// participant lacks are absent, not failed.
type AssessmentResult struct {
	ParticipantID      domain.ParticipantID `json:"participant_id"`
	OverallConformance bool                 `json:"overall_conformance"`
	ComponentResults   []ComponentResult    `json:"component_results"`
	AssessedAt         time.Time            `json:"assessed_at"`
}
