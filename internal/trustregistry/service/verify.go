package service

import (
	"context"
	"fmt"
	"time"

	"github.com/phi-beta/DIACC-PCTF/internal/audit"
	"github.com/phi-beta/DIACC-PCTF/internal/trustregistry/models"
	dErrors "github.com/phi-beta/DIACC-PCTF/pkg/domain-errors"
	"github.com/phi-beta/DIACC-PCTF/pkg/requestcontext"
)

// Score thresholds for the verification decision.
const (
	scorePassThreshold    = 70
	scoreWarningThreshold = 50
)

// How long a verification result should be relied on. Fixed, not
// configurable.
const verificationValidity = 24 * time.Hour

// VerifyTrust evaluates an entry against the decision procedure, appends the
// result to the participant's history, and touches lastVerified.
func (s *Service) VerifyTrust(ctx context.Context, req models.VerificationRequest) (models.TrustVerificationResult, error) {
	if req.ParticipantID.IsZero() {
		return models.TrustVerificationResult{}, dErrors.New(dErrors.CodeBadRequest, "participant id is required")
	}

	entry, err := s.entries.FindByID(ctx, req.ParticipantID)
	if err != nil {
		return models.TrustVerificationResult{}, wrapEntryErr(req.ParticipantID, err)
	}

	now := requestcontext.Now(ctx)
	result := EvaluateVerification(entry, now)

	if err := s.history.AppendResult(ctx, result); err != nil {
		return models.TrustVerificationResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record verification result")
	}

	entry.LastVerified = now
	if err := s.entries.Update(ctx, entry); err != nil {
		return models.TrustVerificationResult{}, wrapEntryErr(req.ParticipantID, err)
	}

	s.logger.InfoContext(ctx, "trust verified",
		"participant_id", req.ParticipantID.String(),
		"trust_status", string(result.TrustStatus),
		"trust_score", result.TrustScore,
		"requested_by", req.RequestedBy,
	)
	s.recorder.Record(ctx, audit.Event{
		Action:        "registry.verify",
		ParticipantID: req.ParticipantID,
		Actor:         req.RequestedBy,
		Outcome:       string(result.TrustStatus),
	})
	s.metrics.ObserveVerification(string(result.TrustStatus))

	return result, nil
}

// EvaluateVerification runs the verification decision procedure against an
// entry. This is pure domain logic - no I/O, no side effects.
//
// Checks, in order:
//  1. trust status must be TRUSTED
//  2. at least one active, non-expired certification
//  3. trust score: >= 70 passes, 50..69 warns without failing, < 50 fails
//
// The computed status starts at TRUSTED and downgrades to PROVISIONAL on
// any failure; a persisted non-TRUSTED status then overrides the computed
// value unconditionally. Persisted authority wins.
func EvaluateVerification(entry models.TrustRegistryEntry, now time.Time) models.TrustVerificationResult {
	details := models.VerificationDetails{
		CriteriaChecked: []string{"trust_status", "active_certifications", "trust_score"},
		Passed:          []string{},
		Failed:          []string{},
		Warnings:        []string{},
	}

	if entry.Status == models.StatusTrusted {
		details.Passed = append(details.Passed, "Trust status verification")
	} else {
		details.Failed = append(details.Failed, fmt.Sprintf("Trust status is %s", entry.Status))
	}

	if len(entry.ActiveCertifications(now)) > 0 {
		details.Passed = append(details.Passed, "Active certification verification")
	} else {
		details.Failed = append(details.Failed, "No active certifications")
	}

	switch {
	case entry.TrustScore >= scorePassThreshold:
		details.Passed = append(details.Passed, "Trust score verification")
	case entry.TrustScore >= scoreWarningThreshold:
		details.Warnings = append(details.Warnings, fmt.Sprintf("Trust score %d is below recommended threshold %d", entry.TrustScore, scorePassThreshold))
	default:
		details.Failed = append(details.Failed, fmt.Sprintf("Trust score %d is below minimum threshold %d", entry.TrustScore, scoreWarningThreshold))
	}

	status := models.StatusTrusted
	if len(details.Failed) > 0 {
		status = models.StatusProvisional
	}
	if entry.Status != models.StatusTrusted {
		status = entry.Status
	}

	return models.TrustVerificationResult{
		ParticipantID:    entry.ParticipantID,
		TrustStatus:      status,
		TrustScore:       entry.TrustScore,
		VerificationDate: now,
		Details:          details,
		Validity: models.ValidityWindow{
			ValidFrom:  now,
			ValidUntil: now.Add(verificationValidity),
		},
	}
}
