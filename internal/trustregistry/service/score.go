package service

import (
	"time"

	"github.com/phi-beta/DIACC-PCTF/internal/trustregistry/models"
)

// Scoring weights. The formula is part of the registry's compatibility
// contract; consumers diff scores across registries, so changes here are
// breaking.
const (
	scoreBase = 50

	maxCertificationBonus = 20
	perCertificationBonus = 5

	longevityThresholdDays = 365
	longevityBonus         = 5

	stalenessThresholdDays = 90
	stalenessPenalty       = 5

	scoreMin = 0
	scoreMax = 100
)

var statusBonus = map[models.TrustStatus]int{
	models.StatusTrusted:     30,
	models.StatusProvisional: 10,
	models.StatusSuspended:   -20,
	models.StatusRevoked:     -50,
}

var assuranceBonus = map[string]int{
	"LOA1": 5,
	"LOA2": 10,
	"LOA3": 15,
	"LOA4": 20,
}

// ComputeTrustScore derives an entry's trust score at the given instant.
// This is pure domain logic - no I/O, no side effects - so calling it twice
// on an unchanged entry at the same instant yields the same value.
//
// score = 50 + status bonus + assurance bonus
//       + min(active certifications * 5, 20)
//       + longevity bonus (registered > 365 days)
//       - staleness penalty (unverified > 90 days)
// clamped to [0, 100].
func ComputeTrustScore(entry models.TrustRegistryEntry, now time.Time) int {
	score := scoreBase

	score += statusBonus[entry.Status]
	score += assuranceBonus[entry.AssuranceLevel.String()]

	certBonus := len(entry.ActiveCertifications(now)) * perCertificationBonus
	if certBonus > maxCertificationBonus {
		certBonus = maxCertificationBonus
	}
	score += certBonus

	if wholeDaysSince(entry.RegistrationDate, now) > longevityThresholdDays {
		score += longevityBonus
	}
	if wholeDaysSince(entry.LastVerified, now) > stalenessThresholdDays {
		score -= stalenessPenalty
	}

	if score < scoreMin {
		return scoreMin
	}
	if score > scoreMax {
		return scoreMax
	}
	return score
}

// wholeDaysSince floors the elapsed time to whole days. Negative spans
// (timestamps in the future) floor toward zero so they never trip the
// threshold comparisons.
func wholeDaysSince(t, now time.Time) int {
	if t.IsZero() || t.After(now) {
		return 0
	}
	return int(now.Sub(t).Hours() / 24)
}
