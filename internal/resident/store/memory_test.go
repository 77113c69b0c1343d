package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"gatehouse/internal/resident/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
	"gatehouse/pkg/testutil"
)

type InMemoryResidentStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func TestInMemoryResidentStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryResidentStoreSuite))
}

func (s *InMemoryResidentStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
}

func (s *InMemoryResidentStoreSuite) seed(email, last string, addr models.Address) *models.Resident {
	r, err := models.NewResident(id.ResidentID(uuid.New()), "Test", last, email, "", addr, "", s.now)
	s.Require().NoError(err)
	s.now = s.now.Add(time.Second)
	s.Require().NoError(s.store.Create(s.ctx, r))
	return r
}

func (s *InMemoryResidentStoreSuite) TestFindByEmailIsCaseSensitive() {
	s.seed("Jane@x.com", "Doe", models.Address{})

	found, err := s.store.FindByEmail(s.ctx, "Jane@x.com")
	s.Require().NoError(err)
	s.Len(found, 1)

	found, err = s.store.FindByEmail(s.ctx, "jane@x.com")
	s.Require().NoError(err)
	s.Empty(found)
}

func (s *InMemoryResidentStoreSuite) TestFindByUnitIsCaseInsensitive() {
	first := s.seed("a@x.com", "Doe", models.Address{Phase: "1A", Block: "3", Lot: "12"})
	s.seed("b@x.com", "Roe", models.Address{Phase: "1a", Block: "3", Lot: "12"})
	s.seed("c@x.com", "Poe", models.Address{Phase: "1a", Block: "3", Lot: "13"})

	found, err := s.store.FindByUnit(s.ctx, models.Address{Phase: "1a", Block: "3", Lot: "12"})
	s.Require().NoError(err)
	s.Require().Len(found, 2)
	s.Equal(first.ID, found[0].ID, "oldest first")
}

func (s *InMemoryResidentStoreSuite) TestLinkAccount() {
	r := s.seed("a@x.com", "Doe", models.Address{Phase: "1", Block: "3", Lot: "12"})
	acct := id.AccountID(uuid.New())

	s.Run("first link wins", func() {
		s.Require().NoError(s.store.LinkAccount(s.ctx, r.ID, acct, s.now))
		got, err := s.store.FindByLinkedAccount(s.ctx, acct)
		s.Require().NoError(err)
		s.Equal(r.ID, got.ID)
	})

	s.Run("second link is rejected without overwrite", func() {
		err := s.store.LinkAccount(s.ctx, r.ID, id.AccountID(uuid.New()), s.now)
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
		got, _ := s.store.FindByID(s.ctx, r.ID)
		s.Equal(acct, *got.LinkedAccountID)
	})

	s.Run("linked resident shows up at unit", func() {
		got, err := s.store.FindLinkedAtUnit(s.ctx, models.Address{Phase: "1", Block: "3", Lot: "12"})
		s.Require().NoError(err)
		s.Equal(r.ID, got.ID)
	})

	s.Run("unknown resident", func() {
		err := s.store.LinkAccount(s.ctx, id.ResidentID(uuid.New()), acct, s.now)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryResidentStoreSuite) TestReturnedValuesAreCopies() {
	r := s.seed("a@x.com", "Doe", models.Address{})
	got, err := s.store.FindByID(s.ctx, r.ID)
	s.Require().NoError(err)
	got.LastName = "Mutated"

	again, _ := s.store.FindByID(s.ctx, r.ID)
	s.Equal("Doe", again.LastName)
}

func TestInMemoryLinkAccountRace(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()
	r, err := models.NewResident(id.ResidentID(uuid.New()), "Jane", "Doe", "a@x.com", "", models.Address{}, "", time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, r))

	result := testutil.RunConcurrent(20, func(int) error {
		return store.LinkAccount(ctx, r.ID, id.AccountID(uuid.New()), time.Now())
	})

	assert.Equal(t, int32(1), result.Successes)
	assert.Equal(t, int32(19), result.Lost)
}
