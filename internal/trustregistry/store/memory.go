// Package store holds the trust registry's persistence layer. The registry
// is keyed by participant id with no secondary indices; search walks the
// primary map. Interfaces live on the consumer side (service package) so a
// future backing store can be swapped without touching business logic.
package store

import (
	"context"
	"sync"

	"github.com/phi-beta/DIACC-PCTF/internal/trustregistry/models"
	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
	"github.com/phi-beta/DIACC-PCTF/pkg/platform/sentinel"
)

// InMemory keeps registry entries and verification history in maps guarded
// by a single RWMutex. Writes for one participant are serialized by the
// lock, which is what the history append and score recompute paths require.
// Insertion order is tracked so List is deterministic.
type InMemory struct {
	mu      sync.RWMutex
	entries map[domain.ParticipantID]models.TrustRegistryEntry
	history map[domain.ParticipantID][]models.TrustVerificationResult
	order   []domain.ParticipantID
}

func NewInMemory() *InMemory {
	return &InMemory{
		entries: make(map[domain.ParticipantID]models.TrustRegistryEntry),
		history: make(map[domain.ParticipantID][]models.TrustVerificationResult),
	}
}

// CreateIfAbsent stores a new entry, failing with sentinel.ErrConflict when
// the participant id is already registered. The existing entry is left
// untouched on conflict.
func (s *InMemory) CreateIfAbsent(_ context.Context, entry models.TrustRegistryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.ParticipantID]; ok {
		return sentinel.ErrConflict
	}
	s.entries[entry.ParticipantID] = entry
	s.order = append(s.order, entry.ParticipantID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.ParticipantID) (models.TrustRegistryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.entries[id]; ok {
		return entry, nil
	}
	return models.TrustRegistryEntry{}, sentinel.ErrNotFound
}

// Update replaces an existing entry.
func (s *InMemory) Update(_ context.Context, entry models.TrustRegistryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.ParticipantID]; !ok {
		return sentinel.ErrNotFound
	}
	s.entries[entry.ParticipantID] = entry
	return nil
}

// List returns all entries in registration order.
func (s *InMemory) List(_ context.Context) ([]models.TrustRegistryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]models.TrustRegistryEntry, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, s.entries[id])
	}
	return entries, nil
}

// AppendResult records a verification result. History is append-only and
// unbounded; insertion order is chronological by construction.
func (s *InMemory) AppendResult(_ context.Context, result models.TrustVerificationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[result.ParticipantID] = append(s.history[result.ParticipantID], result)
	return nil
}

// History returns a copy of the verification history for a participant, in
// append order. Unknown participants yield an empty history, not an error:
// "never verified" and "not found" are distinguished by the entry lookup,
// not here.
func (s *InMemory) History(_ context.Context, id domain.ParticipantID) ([]models.TrustVerificationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.TrustVerificationResult{}, s.history[id]...), nil
}
