// Package service implements the trust registry engine: entry lifecycle,
// trust-score computation, verification decisions, and the maintenance
// sweep.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phi-beta/DIACC-PCTF/internal/audit"
	"github.com/phi-beta/DIACC-PCTF/internal/trustregistry/metrics"
	"github.com/phi-beta/DIACC-PCTF/internal/trustregistry/models"
	dErrors "github.com/phi-beta/DIACC-PCTF/pkg/domain-errors"
	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
	"github.com/phi-beta/DIACC-PCTF/pkg/platform/sentinel"
	"github.com/phi-beta/DIACC-PCTF/pkg/requestcontext"
)

// EntryStore is the registry's persistence port. The registry owns all
// mutation of entries; nothing else writes through this interface.
type EntryStore interface {
	CreateIfAbsent(ctx context.Context, entry models.TrustRegistryEntry) error
	FindByID(ctx context.Context, id domain.ParticipantID) (models.TrustRegistryEntry, error)
	Update(ctx context.Context, entry models.TrustRegistryEntry) error
	List(ctx context.Context) ([]models.TrustRegistryEntry, error)
}

// HistoryStore records verification results, append-only per participant.
type HistoryStore interface {
	AppendResult(ctx context.Context, result models.TrustVerificationResult) error
	History(ctx context.Context, id domain.ParticipantID) ([]models.TrustVerificationResult, error)
}

// Service is the trust registry engine.
type Service struct {
	entries  EntryStore
	history  HistoryStore
	logger   *slog.Logger
	recorder audit.Recorder
	metrics  *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithRecorder(recorder audit.Recorder) Option {
	return func(s *Service) { s.recorder = recorder }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a Service.
func New(entries EntryStore, history HistoryStore, opts ...Option) *Service {
	s := &Service{
		entries:  entries,
		history:  history,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder: audit.Discard{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates and stores a new registry entry, computing its initial
// trust score. The certification gate rejects the whole request, listing
// every offending certification, before anything is stored.
func (s *Service) Register(ctx context.Context, entry models.TrustRegistryEntry) (models.TrustRegistryEntry, error) {
	if err := validateEntry(entry); err != nil {
		return models.TrustRegistryEntry{}, err
	}

	now := requestcontext.Now(ctx)

	if _, err := s.entries.FindByID(ctx, entry.ParticipantID); err == nil {
		return models.TrustRegistryEntry{}, dErrors.Newf(dErrors.CodeConflict, "participant %s is already registered", entry.ParticipantID)
	}

	if findings := certificationFindings(entry, now); len(findings) > 0 {
		return models.TrustRegistryEntry{}, dErrors.New(dErrors.CodeCertification, "invalid certifications").WithDetails(findings...)
	}

	if entry.RegistrationDate.IsZero() {
		entry.RegistrationDate = now
	}
	if entry.LastVerified.IsZero() {
		entry.LastVerified = now
	}
	if entry.Status == "" {
		// The registry does not force a status on callers that supply one,
		// but the state machine needs a state.
		entry.Status = models.StatusProvisional
	}
	entry.TrustScore = ComputeTrustScore(entry, now)

	if err := s.entries.CreateIfAbsent(ctx, entry); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return models.TrustRegistryEntry{}, dErrors.Newf(dErrors.CodeConflict, "participant %s is already registered", entry.ParticipantID)
		}
		return models.TrustRegistryEntry{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store registry entry")
	}

	s.logger.InfoContext(ctx, "registry entry created",
		"participant_id", entry.ParticipantID.String(),
		"type", entry.Type.String(),
		"status", string(entry.Status),
		"trust_score", entry.TrustScore,
	)
	s.recorder.Record(ctx, audit.Event{
		Action:        "registry.register",
		ParticipantID: entry.ParticipantID,
		Outcome:       string(entry.Status),
	})
	if s.metrics != nil {
		s.metrics.Registrations.Inc()
		s.metrics.SetTrustScore(entry.ParticipantID.String(), entry.TrustScore)
	}
	return entry, nil
}

// GetEntry returns the registry's record for a participant.
func (s *Service) GetEntry(ctx context.Context, id domain.ParticipantID) (models.TrustRegistryEntry, error) {
	if id.IsZero() {
		return models.TrustRegistryEntry{}, dErrors.New(dErrors.CodeBadRequest, "participant id is required")
	}
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return models.TrustRegistryEntry{}, wrapEntryErr(id, err)
	}
	return entry, nil
}

// Search filters entries with AND-combined criteria. Zero-valued criteria
// fields are ignored. Results come back in registration order.
func (s *Service) Search(ctx context.Context, criteria models.SearchCriteria) ([]models.TrustRegistryEntry, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registry entries")
	}
	matches := make([]models.TrustRegistryEntry, 0)
	for _, entry := range entries {
		if criteria.Type != "" && entry.Type != criteria.Type {
			continue
		}
		if criteria.Status != "" && entry.Status != criteria.Status {
			continue
		}
		if criteria.AssuranceLevel != "" && entry.AssuranceLevel != criteria.AssuranceLevel {
			continue
		}
		if criteria.MinTrustScore > 0 && entry.TrustScore < criteria.MinTrustScore {
			continue
		}
		matches = append(matches, entry)
	}
	return matches, nil
}

// VerificationHistory returns a participant's verification results in call
// order. The participant must exist in the registry.
func (s *Service) VerificationHistory(ctx context.Context, id domain.ParticipantID) ([]models.TrustVerificationResult, error) {
	if _, err := s.GetEntry(ctx, id); err != nil {
		return nil, err
	}
	results, err := s.history.History(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification history")
	}
	return results, nil
}

// UpdateStatus performs an explicit admin transition. Any state may move to
// any state; the score is recomputed and lastVerified touched.
func (s *Service) UpdateStatus(ctx context.Context, id domain.ParticipantID, status models.TrustStatus, reason string) (models.StatusUpdate, error) {
	if id.IsZero() {
		return models.StatusUpdate{}, dErrors.New(dErrors.CodeBadRequest, "participant id is required")
	}
	if !status.IsValid() {
		return models.StatusUpdate{}, dErrors.Newf(dErrors.CodeBadRequest, "unknown trust status: %s", status)
	}

	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return models.StatusUpdate{}, wrapEntryErr(id, err)
	}

	now := requestcontext.Now(ctx)
	previous := entry.Status
	entry.Status = status
	entry.LastVerified = now
	entry.TrustScore = ComputeTrustScore(entry, now)

	if err := s.entries.Update(ctx, entry); err != nil {
		return models.StatusUpdate{}, wrapEntryErr(id, err)
	}

	s.logger.InfoContext(ctx, "registry status updated",
		"participant_id", id.String(),
		"previous_status", string(previous),
		"new_status", string(status),
		"trust_score", entry.TrustScore,
		"reason", reason,
	)
	s.recorder.Record(ctx, audit.Event{
		Action:        "registry.status_update",
		ParticipantID: id,
		Outcome:       string(status),
		Reason:        reason,
	})
	if s.metrics != nil {
		s.metrics.StatusUpdates.Inc()
		s.metrics.SetTrustScore(id.String(), entry.TrustScore)
	}

	return models.StatusUpdate{
		ParticipantID:  id,
		PreviousStatus: previous,
		NewStatus:      status,
		TrustScore:     entry.TrustScore,
		Reason:         reason,
		UpdatedAt:      now,
	}, nil
}

func wrapEntryErr(id domain.ParticipantID, err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, "participant %s is not in the trust registry", id)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "trust registry store failure")
}

func validateEntry(entry models.TrustRegistryEntry) error {
	var missing []string
	if entry.ParticipantID.IsZero() {
		missing = append(missing, "participant_id")
	}
	if entry.Name == "" {
		missing = append(missing, "name")
	}
	if !entry.Type.IsValid() {
		missing = append(missing, "type")
	}
	if !entry.AssuranceLevel.IsValid() {
		missing = append(missing, "assurance_level")
	}
	if entry.ContactInformation.Email == "" {
		missing = append(missing, "contact_information")
	}
	if len(missing) > 0 {
		return dErrors.New(dErrors.CodeValidation, "missing required fields").WithDetails(missing...)
	}
	if entry.Status != "" && !entry.Status.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown trust status: %s", entry.Status)
	}
	return nil
}

// certificationFindings applies the pre-registration certification gate:
// every certification missing its id or issuing authority, or already
// expired as of now, is reported.
func certificationFindings(entry models.TrustRegistryEntry, now time.Time) []string {
	var findings []string
	for i, cert := range entry.Certifications {
		label := cert.CertificationID
		if label == "" {
			label = fmt.Sprintf("certification[%d]", i)
		}
		if cert.CertificationID == "" {
			findings = append(findings, fmt.Sprintf("%s: missing certification id", label))
		}
		if cert.IssuingAuthority == "" {
			findings = append(findings, fmt.Sprintf("%s: missing issuing authority", label))
		}
		if cert.ExpirationDate != nil && cert.ExpirationDate.Before(now) {
			findings = append(findings, fmt.Sprintf("%s: expired on %s", label, cert.ExpirationDate.Format("2006-01-02")))
		}
	}
	return findings
}
