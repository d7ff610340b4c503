// Package service implements the framework orchestrator: participant
// registration with capability-provider dispatch, ecosystem reporting, and
// conformance aggregation.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/phi-beta/DIACC-PCTF/internal/audit"
	"github.com/phi-beta/DIACC-PCTF/internal/conformance"
	"github.com/phi-beta/DIACC-PCTF/internal/framework/metrics"
	"github.com/phi-beta/DIACC-PCTF/internal/framework/models"
	"github.com/phi-beta/DIACC-PCTF/internal/providers/authentication"
	"github.com/phi-beta/DIACC-PCTF/internal/providers/identity"
	"github.com/phi-beta/DIACC-PCTF/internal/providers/infrastructure"
	"github.com/phi-beta/DIACC-PCTF/internal/providers/privacy"
	"github.com/phi-beta/DIACC-PCTF/internal/providers/registry"
	"github.com/phi-beta/DIACC-PCTF/internal/providers/wallet"
	dErrors "github.com/phi-beta/DIACC-PCTF/pkg/domain-errors"
	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
	"github.com/phi-beta/DIACC-PCTF/pkg/platform/sentinel"
	"github.com/phi-beta/DIACC-PCTF/pkg/requestcontext"
)

// ParticipantStore is the orchestrator's directory port.
type ParticipantStore interface {
	CreateIfAbsent(ctx context.Context, participant models.Participant) error
	FindByID(ctx context.Context, id domain.ParticipantID) (models.Participant, error)
	List(ctx context.Context) ([]models.Participant, error)
}

// Orchestrator owns the participant directory and one provider map per
// capability kind. Provider-internal state belongs to the providers; the
// orchestrator only holds the references.
type Orchestrator struct {
	participants ParticipantStore
	logger       *slog.Logger
	recorder     audit.Recorder
	metrics      *metrics.Metrics

	mu             sync.RWMutex
	authProviders  map[domain.ParticipantID]*authentication.Provider
	idProviders    map[domain.ParticipantID]*identity.Provider
	privProviders  map[domain.ParticipantID]*privacy.Provider
	infraProviders map[domain.ParticipantID]*infrastructure.Provider
	walletProvs    map[domain.ParticipantID]*wallet.Provider
	registryProvs  map[domain.ParticipantID]*registry.Provider
}

type Option func(o *Orchestrator)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

func WithRecorder(recorder audit.Recorder) Option {
	return func(o *Orchestrator) { o.recorder = recorder }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// New constructs an Orchestrator.
func New(participants ParticipantStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		participants:   participants,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder:       audit.Discard{},
		authProviders:  make(map[domain.ParticipantID]*authentication.Provider),
		idProviders:    make(map[domain.ParticipantID]*identity.Provider),
		privProviders:  make(map[domain.ParticipantID]*privacy.Provider),
		infraProviders: make(map[domain.ParticipantID]*infrastructure.Provider),
		walletProvs:    make(map[domain.ParticipantID]*wallet.Provider),
		registryProvs:  make(map[domain.ParticipantID]*registry.Provider),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RegisterParticipant validates the participant, stores it, and attaches
// capability providers according to its type. The dispatch table is a
// closed variant switch; a participant ends up in zero, one, or two
// provider maps.
func (o *Orchestrator) RegisterParticipant(ctx context.Context, participant models.Participant) (models.Participant, error) {
	if err := validateParticipant(participant); err != nil {
		return models.Participant{}, err
	}

	now := requestcontext.Now(ctx)
	if participant.RegistrationDate.IsZero() {
		participant.RegistrationDate = now
	}

	if err := o.participants.CreateIfAbsent(ctx, participant); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return models.Participant{}, dErrors.Newf(dErrors.CodeConflict, "participant %s is already registered", participant.ParticipantID)
		}
		return models.Participant{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store participant")
	}

	attached := o.attachProviders(participant)

	o.logger.InfoContext(ctx, "participant registered",
		"participant_id", participant.ParticipantID.String(),
		"type", participant.Type.String(),
		"certification_level", participant.CertificationLevel.String(),
		"providers", attached,
	)
	o.recorder.Record(ctx, audit.Event{
		Action:        "framework.register_participant",
		ParticipantID: participant.ParticipantID,
		Outcome:       fmt.Sprintf("providers=%v", attached),
	})
	o.metrics.ObserveRegistration(participant.Type.String())
	for _, component := range attached {
		o.metrics.ObserveAttachment(string(component))
	}
	return participant, nil
}

// attachProviders is the fixed type dispatch. Exhaustive over the
// participant type variant; unmatched types attach no provider, which is
// not an error.
func (o *Orchestrator) attachProviders(participant models.Participant) []conformance.Component {
	id := participant.ParticipantID
	var attached []conformance.Component

	o.mu.Lock()
	defer o.mu.Unlock()

	switch participant.Type {
	case domain.ParticipantAuthenticationServiceProvider, domain.ParticipantCredentialServiceProvider:
		o.authProviders[id] = authentication.New(id, o.recorder)
		attached = append(attached, conformance.ComponentAuthentication)

	case domain.ParticipantIdentityProvider:
		o.idProviders[id] = identity.New(id, o.recorder)
		attached = append(attached, conformance.ComponentVerifiedPerson)

	case domain.ParticipantWalletProvider:
		o.walletProvs[id] = wallet.New(id, wallet.KindCloud, o.recorder)
		attached = append(attached, conformance.ComponentDigitalWallet)

	case domain.ParticipantTrustRegistry:
		o.registryProvs[id] = registry.New(id)
		attached = append(attached, conformance.ComponentTrustRegistry)

	case domain.ParticipantIssuer, domain.ParticipantVerifier, domain.ParticipantRelyingParty:
		o.privProviders[id] = privacy.New(id, o.recorder)
		attached = append(attached, conformance.ComponentPrivacy)
		if participant.CertificationLevel.AtLeast(domain.LOA3) {
			o.infraProviders[id] = infrastructure.New(id)
			attached = append(attached, conformance.ComponentInfrastructure)
		}
	}
	return attached
}

// Participant returns the directory record for an id.
func (o *Orchestrator) Participant(ctx context.Context, id domain.ParticipantID) (models.Participant, error) {
	if id.IsZero() {
		return models.Participant{}, dErrors.New(dErrors.CodeBadRequest, "participant id is required")
	}
	participant, err := o.participants.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Participant{}, dErrors.Newf(dErrors.CodeNotFound, "participant %s is not registered", id)
		}
		return models.Participant{}, dErrors.Wrap(err, dErrors.CodeInternal, "participant directory failure")
	}
	return participant, nil
}

// Participants lists all registered participants in registration order.
func (o *Orchestrator) Participants(ctx context.Context) ([]models.Participant, error) {
	participants, err := o.participants.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "participant directory failure")
	}
	return participants, nil
}

// ParticipantsByType lists participants of one type in registration order.
func (o *Orchestrator) ParticipantsByType(ctx context.Context, t domain.ParticipantType) ([]models.Participant, error) {
	if !t.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "unknown participant type: %s", t)
	}
	participants, err := o.Participants(ctx)
	if err != nil {
		return nil, err
	}
	matches := make([]models.Participant, 0)
	for _, participant := range participants {
		if participant.Type == t {
			matches = append(matches, participant)
		}
	}
	return matches, nil
}

// ValidateEcosystem counts participants per type and runs the fixed
// interoperability checks.
func (o *Orchestrator) ValidateEcosystem(ctx context.Context) (models.EcosystemValidation, error) {
	participants, err := o.Participants(ctx)
	if err != nil {
		return models.EcosystemValidation{}, err
	}

	byType := make(map[domain.ParticipantType]int)
	for _, participant := range participants {
		byType[participant.Type]++
	}

	issues := []string{}
	if byType[domain.ParticipantIdentityProvider] == 0 {
		issues = append(issues, "no identity providers registered")
	}
	if byType[domain.ParticipantAuthenticationServiceProvider] == 0 {
		issues = append(issues, "no authentication providers registered")
	}

	return models.EcosystemValidation{
		Valid:             len(issues) == 0,
		TotalParticipants: len(participants),
		ByType:            byType,
		Issues:            issues,
		ValidatedAt:       requestcontext.Now(ctx),
	}, nil
}

// StatusReport snapshots directory and provider-map counts.
func (o *Orchestrator) StatusReport(ctx context.Context) (models.StatusReport, error) {
	participants, err := o.Participants(ctx)
	if err != nil {
		return models.StatusReport{}, err
	}

	byType := make(map[domain.ParticipantType]int)
	active := 0
	for _, participant := range participants {
		byType[participant.Type]++
		if participant.IsActive {
			active++
		}
	}

	o.mu.RLock()
	providers := map[string]int{
		string(conformance.ComponentAuthentication): len(o.authProviders),
		string(conformance.ComponentVerifiedPerson): len(o.idProviders),
		string(conformance.ComponentPrivacy):        len(o.privProviders),
		string(conformance.ComponentInfrastructure): len(o.infraProviders),
		string(conformance.ComponentDigitalWallet):  len(o.walletProvs),
		string(conformance.ComponentTrustRegistry):  len(o.registryProvs),
	}
	o.mu.RUnlock()

	return models.StatusReport{
		TotalParticipants:  len(participants),
		ActiveParticipants: active,
		ByType:             byType,
		ProvidersByKind:    providers,
		GeneratedAt:        requestcontext.Now(ctx),
	}, nil
}

// AuthenticationProvider exposes a participant's attached authentication
// provider, if any. The remaining accessors follow the same shape.
func (o *Orchestrator) AuthenticationProvider(id domain.ParticipantID) (*authentication.Provider, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, ok := o.authProviders[id]
	return p, ok
}

func (o *Orchestrator) IdentityProvider(id domain.ParticipantID) (*identity.Provider, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, ok := o.idProviders[id]
	return p, ok
}

func (o *Orchestrator) PrivacyProvider(id domain.ParticipantID) (*privacy.Provider, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, ok := o.privProviders[id]
	return p, ok
}

func (o *Orchestrator) InfrastructureProvider(id domain.ParticipantID) (*infrastructure.Provider, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, ok := o.infraProviders[id]
	return p, ok
}

func (o *Orchestrator) WalletProvider(id domain.ParticipantID) (*wallet.Provider, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, ok := o.walletProvs[id]
	return p, ok
}

func (o *Orchestrator) RegistryProvider(id domain.ParticipantID) (*registry.Provider, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, ok := o.registryProvs[id]
	return p, ok
}

func validateParticipant(participant models.Participant) error {
	var missing []string
	if participant.ParticipantID.IsZero() {
		missing = append(missing, "participant_id")
	}
	if participant.Name == "" {
		missing = append(missing, "name")
	}
	if !participant.Type.IsValid() {
		missing = append(missing, "type")
	}
	if !participant.CertificationLevel.IsValid() {
		missing = append(missing, "certification_level")
	}
	if len(missing) > 0 {
		return dErrors.New(dErrors.CodeValidation, "missing required fields").WithDetails(missing...)
	}
	return nil
}
