package conformance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
)

func TestComponentsOrder(t *testing.T) {
	// Component order is an observable contract for report consumers.
	assert.Equal(t, []Component{
		ComponentAuthentication,
		ComponentVerifiedPerson,
		ComponentPrivacy,
		ComponentInfrastructure,
		ComponentDigitalWallet,
		ComponentTrustRegistry,
	}, Components())
}

func TestAssessComponent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	criteria := []Criterion{
		{ID: "AUTH-1", Description: "Credential binding", AssuranceLevel: domain.LOA2, RiskLevel: RiskHigh, Required: true},
		{ID: "AUTH-2", Description: "Session management", AssuranceLevel: domain.LOA2, RiskLevel: RiskMedium, Required: false},
	}

	result := AssessComponent(ComponentAuthentication, criteria, now)

	assert.Equal(t, ComponentAuthentication, result.Component)
	assert.True(t, result.IsConformant)
	assert.Len(t, result.Criteria, 2)
	for i, assessed := range result.Criteria {
		assert.Equal(t, criteria[i].ID, assessed.CriterionID)
		assert.True(t, assessed.IsConformant)
		assert.NotEmpty(t, assessed.Evidence)
		assert.Equal(t, now, assessed.LastAssessed)
	}
}

func TestAssessComponentEmptyCatalog(t *testing.T) {
	result := AssessComponent(ComponentPrivacy, nil, time.Now())
	assert.True(t, result.IsConformant)
	assert.Empty(t, result.Criteria)
}
