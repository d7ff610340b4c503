package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phi-beta/DIACC-PCTF/internal/conformance"
	"github.com/phi-beta/DIACC-PCTF/internal/framework/models"
	"github.com/phi-beta/DIACC-PCTF/internal/framework/store"
	dErrors "github.com/phi-beta/DIACC-PCTF/pkg/domain-errors"
	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
	"github.com/phi-beta/DIACC-PCTF/pkg/requestcontext"
)

func newAssessFixture(t *testing.T) (*Orchestrator, context.Context) {
	t.Helper()
	orchestrator := New(store.NewInMemory())
	ctx := requestcontext.WithTime(context.Background(), time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	return orchestrator, ctx
}

func registerAssess(t *testing.T, o *Orchestrator, ctx context.Context, id string, pt domain.ParticipantType, level domain.AssuranceLevel) {
	t.Helper()
	_, err := o.RegisterParticipant(ctx, models.Participant{
		ParticipantID:      domain.ParticipantID(id),
		Name:               "Participant " + id,
		Type:               pt,
		CertificationLevel: level,
		IsActive:           true,
	})
	require.NoError(t, err)
}

func TestAssessConformance(t *testing.T) {
	t.Run("unknown participant is not found", func(t *testing.T) {
		orchestrator, ctx := newAssessFixture(t)
		_, err := orchestrator.AssessConformance(ctx, "missing")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("single provider yields one component result", func(t *testing.T) {
		orchestrator, ctx := newAssessFixture(t)
		registerAssess(t, orchestrator, ctx, "asp-1", domain.ParticipantAuthenticationServiceProvider, domain.LOA2)

		result, err := orchestrator.AssessConformance(ctx, "asp-1")
		require.NoError(t, err)

		require.Len(t, result.ComponentResults, 1)
		assert.Equal(t, conformance.ComponentAuthentication, result.ComponentResults[0].Component)
		assert.Equal(t, result.ComponentResults[0].IsConformant, result.OverallConformance)
		assert.NotEmpty(t, result.ComponentResults[0].Criteria)
	})

	t.Run("LOA3 issuer yields privacy then infrastructure, in catalog order", func(t *testing.T) {
		orchestrator, ctx := newAssessFixture(t)
		registerAssess(t, orchestrator, ctx, "issuer-1", domain.ParticipantIssuer, domain.LOA3)

		result, err := orchestrator.AssessConformance(ctx, "issuer-1")
		require.NoError(t, err)

		require.Len(t, result.ComponentResults, 2)
		assert.Equal(t, conformance.ComponentPrivacy, result.ComponentResults[0].Component)
		assert.Equal(t, conformance.ComponentInfrastructure, result.ComponentResults[1].Component)
		assert.True(t, result.OverallConformance)
	})

	t.Run("overall verdict considers only attached components", func(t *testing.T) {
		orchestrator, ctx := newAssessFixture(t)
		registerAssess(t, orchestrator, ctx, "issuer-2", domain.ParticipantIssuer, domain.LOA1)

		result, err := orchestrator.AssessConformance(ctx, "issuer-2")
		require.NoError(t, err)

		// Privacy only: the missing five components are absent, not failed.
		require.Len(t, result.ComponentResults, 1)
		assert.True(t, result.OverallConformance)
	})

	t.Run("assessment result carries the request time", func(t *testing.T) {
		orchestrator, _ := newAssessFixture(t)
		now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
		ctx := requestcontext.WithTime(context.Background(), now)
		registerAssess(t, orchestrator, ctx, "wp-1", domain.ParticipantWalletProvider, domain.LOA2)

		result, err := orchestrator.AssessConformance(ctx, "wp-1")
		require.NoError(t, err)
		assert.Equal(t, now, result.AssessedAt)
		for _, component := range result.ComponentResults {
			for _, criterion := range component.Criteria {
				assert.Equal(t, now, criterion.LastAssessed)
			}
		}
	})
}
