package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/phi-beta/DIACC-PCTF/internal/framework/models"
	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
	"github.com/phi-beta/DIACC-PCTF/pkg/platform/sentinel"
)

type ParticipantStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *ParticipantStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestParticipantStoreSuite(t *testing.T) {
	suite.Run(t, new(ParticipantStoreSuite))
}

func (s *ParticipantStoreSuite) participant(id string, participantType domain.ParticipantType) models.Participant {
	return models.Participant{
		ParticipantID:      domain.ParticipantID(id),
		Name:               "Participant " + id,
		Type:               participantType,
		CertificationLevel: domain.LOA2,
		IsActive:           true,
	}
}

func (s *ParticipantStoreSuite) TestCreateAndFind() {
	participant := s.participant("idp-1", domain.ParticipantIdentityProvider)
	s.Require().NoError(s.store.CreateIfAbsent(s.ctx, participant))

	found, err := s.store.FindByID(s.ctx, "idp-1")
	s.Require().NoError(err)
	s.Equal(participant, found)
}

func (s *ParticipantStoreSuite) TestFindMissing() {
	_, err := s.store.FindByID(s.ctx, "missing")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ParticipantStoreSuite) TestDuplicateCreateRejected() {
	s.Require().NoError(s.store.CreateIfAbsent(s.ctx, s.participant("idp-1", domain.ParticipantIdentityProvider)))
	err := s.store.CreateIfAbsent(s.ctx, s.participant("idp-1", domain.ParticipantIssuer))
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	found, err := s.store.FindByID(s.ctx, "idp-1")
	s.Require().NoError(err)
	s.Equal(domain.ParticipantIdentityProvider, found.Type)
}

func (s *ParticipantStoreSuite) TestListPreservesRegistrationOrder() {
	ids := []string{"wallet-1", "asp-1", "idp-1"}
	for _, id := range ids {
		s.Require().NoError(s.store.CreateIfAbsent(s.ctx, s.participant(id, domain.ParticipantWalletProvider)))
	}

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	for i, id := range ids {
		s.Equal(domain.ParticipantID(id), all[i].ParticipantID)
	}
}
