package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/phi-beta/DIACC-PCTF/internal/trustregistry/models"
	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
)

var scoreNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func scoreEntry(mutate func(e *models.TrustRegistryEntry)) models.TrustRegistryEntry {
	entry := models.TrustRegistryEntry{
		ParticipantID:    "participant-1",
		Name:             "Participant One",
		Type:             domain.ParticipantIssuer,
		Status:           models.StatusTrusted,
		AssuranceLevel:   domain.LOA2,
		RegistrationDate: scoreNow.AddDate(0, -1, 0),
		LastVerified:     scoreNow.AddDate(0, 0, -10),
	}
	if mutate != nil {
		mutate(&entry)
	}
	return entry
}

func activeCert(id string) models.Certification {
	expiry := scoreNow.AddDate(1, 0, 0)
	return models.Certification{
		CertificationID:  id,
		IssuingAuthority: "DIACC",
		IssuanceDate:     scoreNow.AddDate(-1, 0, 0),
		ExpirationDate:   &expiry,
		Status:           models.CertificationActive,
	}
}

func TestComputeTrustScore(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e *models.TrustRegistryEntry)
		want   int
	}{
		{
			name: "trusted LOA2 baseline",
			// 50 + 30 (trusted) + 10 (LOA2)
			want: 90,
		},
		{
			name: "provisional LOA1",
			mutate: func(e *models.TrustRegistryEntry) {
				e.Status = models.StatusProvisional
				e.AssuranceLevel = domain.LOA1
			},
			// 50 + 10 + 5
			want: 65,
		},
		{
			name: "suspended loses twenty",
			mutate: func(e *models.TrustRegistryEntry) {
				e.Status = models.StatusSuspended
			},
			// 50 - 20 + 10
			want: 40,
		},
		{
			name: "revoked LOA1 bottoms out low",
			mutate: func(e *models.TrustRegistryEntry) {
				e.Status = models.StatusRevoked
				e.AssuranceLevel = domain.LOA1
			},
			// 50 - 50 + 5
			want: 5,
		},
		{
			name: "certification bonus caps at twenty",
			mutate: func(e *models.TrustRegistryEntry) {
				e.AssuranceLevel = domain.LOA4
				for _, id := range []string{"c1", "c2", "c3", "c4", "c5", "c6"} {
					e.Certifications = append(e.Certifications, activeCert(id))
				}
			},
			// 50 + 30 + 20 + min(6*5, 20) = 120, clamped
			want: 100,
		},
		{
			name: "expired certifications earn nothing",
			mutate: func(e *models.TrustRegistryEntry) {
				cert := activeCert("old")
				past := scoreNow.AddDate(0, -1, 0)
				cert.ExpirationDate = &past
				e.Certifications = []models.Certification{cert}
			},
			want: 90,
		},
		{
			name: "longevity bonus after a year",
			mutate: func(e *models.TrustRegistryEntry) {
				e.RegistrationDate = scoreNow.AddDate(-2, 0, 0)
			},
			want: 95,
		},
		{
			name: "staleness penalty after ninety days",
			mutate: func(e *models.TrustRegistryEntry) {
				e.LastVerified = scoreNow.AddDate(0, -4, 0)
			},
			want: 85,
		},
		{
			name: "exactly ninety days is not stale",
			mutate: func(e *models.TrustRegistryEntry) {
				e.LastVerified = scoreNow.AddDate(0, 0, -90)
			},
			want: 90,
		},
		{
			name: "unknown status earns no bonus",
			mutate: func(e *models.TrustRegistryEntry) {
				e.Status = models.StatusUnknown
			},
			// 50 + 0 + 10
			want: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := scoreEntry(tt.mutate)
			got := ComputeTrustScore(entry, scoreNow)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

// TestComputeTrustScoreIdempotent checks the pure-function property: same
// entry, same instant, same score.
func TestComputeTrustScoreIdempotent(t *testing.T) {
	entry := scoreEntry(func(e *models.TrustRegistryEntry) {
		e.Certifications = []models.Certification{activeCert("c1")}
	})
	first := ComputeTrustScore(entry, scoreNow)
	second := ComputeTrustScore(entry, scoreNow)
	assert.Equal(t, first, second)
}
