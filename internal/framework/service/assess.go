package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/phi-beta/DIACC-PCTF/internal/audit"
	"github.com/phi-beta/DIACC-PCTF/internal/conformance"
	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
	"github.com/phi-beta/DIACC-PCTF/pkg/requestcontext"
)

// AssessConformance fans out over the participant's attached providers and
// folds their component results into one overall verdict. Components the
// participant lacks are absent from the result, not failed; the overall
// verdict is the AND over the components present. Nothing is persisted.
//
// Component order in the result follows conformance.Components(), which
// consumers diffing reports rely on.
func (o *Orchestrator) AssessConformance(ctx context.Context, id domain.ParticipantID) (conformance.AssessmentResult, error) {
	if _, err := o.Participant(ctx, id); err != nil {
		return conformance.AssessmentResult{}, err
	}

	now := requestcontext.Now(ctx)
	attached := o.attachedProviders(id)

	// Fixed slots keep the component order deterministic regardless of
	// which goroutine finishes first.
	slots := make([]*conformance.ComponentResult, len(attached))
	g, _ := errgroup.WithContext(ctx)
	for i, entry := range attached {
		i, entry := i, entry
		g.Go(func() error {
			result := conformance.AssessComponent(entry.component, entry.provider.ConformanceCriteria(), now)
			slots[i] = &result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return conformance.AssessmentResult{}, err
	}

	result := conformance.AssessmentResult{
		ParticipantID:      id,
		OverallConformance: true,
		ComponentResults:   make([]conformance.ComponentResult, 0, len(slots)),
		AssessedAt:         now,
	}
	for _, slot := range slots {
		result.ComponentResults = append(result.ComponentResults, *slot)
		result.OverallConformance = result.OverallConformance && slot.IsConformant
	}

	outcome := "conformant"
	if !result.OverallConformance {
		outcome = "nonconformant"
	}
	o.logger.InfoContext(ctx, "conformance assessed",
		"participant_id", id.String(),
		"components", len(result.ComponentResults),
		"overall", result.OverallConformance,
	)
	o.recorder.Record(ctx, audit.Event{
		Action:        "framework.assess_conformance",
		ParticipantID: id,
		Outcome:       outcome,
	})
	o.metrics.ObserveAssessment(outcome)

	return result, nil
}

type attachedProvider struct {
	component conformance.Component
	provider  conformance.Provider
}

// attachedProviders collects the participant's providers in the fixed
// component enumeration order.
func (o *Orchestrator) attachedProviders(id domain.ParticipantID) []attachedProvider {
	o.mu.RLock()
	defer o.mu.RUnlock()

	var attached []attachedProvider
	for _, component := range conformance.Components() {
		var provider conformance.Provider
		switch component {
		case conformance.ComponentAuthentication:
			if p, ok := o.authProviders[id]; ok {
				provider = p
			}
		case conformance.ComponentVerifiedPerson:
			if p, ok := o.idProviders[id]; ok {
				provider = p
			}
		case conformance.ComponentPrivacy:
			if p, ok := o.privProviders[id]; ok {
				provider = p
			}
		case conformance.ComponentInfrastructure:
			if p, ok := o.infraProviders[id]; ok {
				provider = p
			}
		case conformance.ComponentDigitalWallet:
			if p, ok := o.walletProvs[id]; ok {
				provider = p
			}
		case conformance.ComponentTrustRegistry:
			if p, ok := o.registryProvs[id]; ok {
				provider = p
			}
		}
		if provider != nil {
			attached = append(attached, attachedProvider{component: component, provider: provider})
		}
	}
	return attached
}
