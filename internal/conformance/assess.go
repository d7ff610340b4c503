package conformance

import (
	"fmt"
	"time"
)

// AssessComponent maps a provider's catalog to assessed criteria and folds
// them into a component result. This is pure domain logic - no I/O, no side
// effects.
//
// Evidence gathering is declarative for now: each criterion is assessed
// against the provider's own attestation, so no criterion fails. Real
// evidence collection would slot in here without changing the result shape.
func AssessComponent(component Component, criteria []Criterion, now time.Time) ComponentResult {
	result := ComponentResult{
		Component:    component,
		IsConformant: true,
		Criteria:     make([]AssessedCriterion, 0, len(criteria)),
	}
	for _, criterion := range criteria {
		assessed := AssessedCriterion{
			CriterionID:  criterion.ID,
			Description:  criterion.Description,
			IsConformant: true,
			Evidence:     evidenceFor(criterion),
			LastAssessed: now,
		}
		result.Criteria = append(result.Criteria, assessed)
		result.IsConformant = result.IsConformant && assessed.IsConformant
	}
	return result
}

func evidenceFor(criterion Criterion) string {
	obligation := "recommended"
	if criterion.Required {
		obligation = "required"
	}
	return fmt.Sprintf("Provider attestation on file for %s control %s (%s)", obligation, criterion.ID, criterion.AssuranceLevel)
}
