// Package store holds the orchestrator's participant directory. The
// directory is keyed by participant id; registration order is preserved so
// listings are deterministic.
package store

import (
	"context"
	"sync"

	"github.com/phi-beta/DIACC-PCTF/internal/framework/models"
	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
	"github.com/phi-beta/DIACC-PCTF/pkg/platform/sentinel"
)

// InMemory is the in-memory participant directory.
type InMemory struct {
	mu           sync.RWMutex
	participants map[domain.ParticipantID]models.Participant
	order        []domain.ParticipantID
}

func NewInMemory() *InMemory {
	return &InMemory{participants: make(map[domain.ParticipantID]models.Participant)}
}

// CreateIfAbsent stores a new participant, failing with sentinel.ErrConflict
// when the id is already registered.
func (s *InMemory) CreateIfAbsent(_ context.Context, participant models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[participant.ParticipantID]; ok {
		return sentinel.ErrConflict
	}
	s.participants[participant.ParticipantID] = participant
	s.order = append(s.order, participant.ParticipantID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.ParticipantID) (models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if participant, ok := s.participants[id]; ok {
		return participant, nil
	}
	return models.Participant{}, sentinel.ErrNotFound
}

// List returns all participants in registration order.
func (s *InMemory) List(_ context.Context) ([]models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	participants := make([]models.Participant, 0, len(s.order))
	for _, id := range s.order {
		participants = append(participants, s.participants[id])
	}
	return participants, nil
}
