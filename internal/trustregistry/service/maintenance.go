package service

import (
	"context"
	"fmt"

	"github.com/phi-beta/DIACC-PCTF/internal/audit"
	"github.com/phi-beta/DIACC-PCTF/internal/trustregistry/models"
	dErrors "github.com/phi-beta/DIACC-PCTF/pkg/domain-errors"
	"github.com/phi-beta/DIACC-PCTF/pkg/requestcontext"
)

// RunMaintenance executes the registry sweep:
//
//	(a) integrity gate over a snapshot of all entries
//	(b) recompute every entry's trust score, persisting changes
//	(c) demote expired TRUSTED entries to SUSPENDED
//
// A corrupted score aborts the whole run before any mutation; the store is
// left unchanged. Expired entries and certifications are reported as
// findings but do not abort: expiry is the condition step (c) exists to
// repair, not corruption. REVOKED and SUSPENDED entries are never promoted.
func (s *Service) RunMaintenance(ctx context.Context) (models.MaintenanceReport, error) {
	now := requestcontext.Now(ctx)

	entries, err := s.entries.List(ctx)
	if err != nil {
		return models.MaintenanceReport{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registry entries")
	}

	var corruption, findings []string
	for _, entry := range entries {
		id := entry.ParticipantID.String()
		if entry.TrustScore < scoreMin || entry.TrustScore > scoreMax {
			corruption = append(corruption, fmt.Sprintf("%s: trust score %d out of range", id, entry.TrustScore))
		}
		if entry.IsExpiredAt(now) {
			findings = append(findings, fmt.Sprintf("%s: entry expired on %s", id, entry.ExpirationDate.Format("2006-01-02")))
		}
		for _, cert := range entry.Certifications {
			if cert.Status == models.CertificationActive && cert.ExpirationDate != nil && cert.ExpirationDate.Before(now) {
				findings = append(findings, fmt.Sprintf("%s: certification %s expired on %s", id, cert.CertificationID, cert.ExpirationDate.Format("2006-01-02")))
			}
		}
	}
	if len(corruption) > 0 {
		s.logger.ErrorContext(ctx, "registry integrity check failed", "issues", corruption)
		s.metrics.ObserveSweep("integrity_failure")
		return models.MaintenanceReport{}, dErrors.New(dErrors.CodeIntegrity, "registry integrity check failed").WithDetails(corruption...)
	}

	report := models.MaintenanceReport{
		EntriesChecked:  len(entries),
		CompletedAt:     now,
		IntegrityIssues: findings,
	}

	for _, entry := range entries {
		if score := ComputeTrustScore(entry, now); score != entry.TrustScore {
			entry.TrustScore = score
			if err := s.entries.Update(ctx, entry); err != nil {
				return models.MaintenanceReport{}, wrapEntryErr(entry.ParticipantID, err)
			}
			if s.metrics != nil {
				s.metrics.SetTrustScore(entry.ParticipantID.String(), score)
			}
			report.ScoresUpdated++
		}
	}

	for _, entry := range entries {
		if entry.Status != models.StatusTrusted || !entry.IsExpiredAt(now) {
			continue
		}
		// Re-read: the scoring pass above may have persisted a new score.
		current, err := s.entries.FindByID(ctx, entry.ParticipantID)
		if err != nil {
			return models.MaintenanceReport{}, wrapEntryErr(entry.ParticipantID, err)
		}
		current.Status = models.StatusSuspended
		if err := s.entries.Update(ctx, current); err != nil {
			return models.MaintenanceReport{}, wrapEntryErr(entry.ParticipantID, err)
		}
		s.recorder.Record(ctx, audit.Event{
			Action:        "registry.sweep_demotion",
			ParticipantID: entry.ParticipantID,
			Outcome:       string(models.StatusSuspended),
			Reason:        "entry expired",
		})
		if s.metrics != nil {
			s.metrics.SweepDemotions.Inc()
		}
		report.EntriesDemoted++
	}

	s.logger.InfoContext(ctx, "registry maintenance completed",
		"entries_checked", report.EntriesChecked,
		"scores_updated", report.ScoresUpdated,
		"entries_demoted", report.EntriesDemoted,
		"findings", len(findings),
	)
	s.metrics.ObserveSweep("ok")
	return report, nil
}
