package state_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"samiti/internal/platform/database/dbtest"
	"samiti/internal/registry/models"
	"samiti/internal/registry/store/state"
	"samiti/pkg/platform/sentinel"
)

type Store interface {
	Create(ctx context.Context, s *models.StateCommittee) error
	FindByID(ctx context.Context, id int64) (*models.StateCommittee, error)
	FindByCode(ctx context.Context, code string) (*models.StateCommittee, error)
	List(ctx context.Context) ([]*models.StateCommittee, error)
}

type StoreSuite struct {
	suite.Suite
	newStore func(t *testing.T) Store
	store    Store
}

func TestInMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(*testing.T) Store { return state.NewInMemory() }})
}

func TestSQLStore(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(t *testing.T) Store { return state.NewSQL(dbtest.NewSQLite(t)) }})
}

func (s *StoreSuite) SetupTest() {
	s.store = s.newStore(s.T())
}

func newState(code string) *models.StateCommittee {
	return &models.StateCommittee{
		StateCode:    code,
		StateName:    "State " + code,
		ContactEmail: "office@" + code + ".example",
		Status:       models.StatusActive,
		CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func (s *StoreSuite) TestCreateAssignsID() {
	ctx := context.Background()
	first := newState("KL")
	second := newState("TN")

	s.Require().NoError(s.store.Create(ctx, first))
	s.Require().NoError(s.store.Create(ctx, second))

	s.Positive(first.ID)
	s.Greater(second.ID, first.ID)
}

func (s *StoreSuite) TestDuplicateCode() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, newState("KL")))

	err := s.store.Create(ctx, newState("KL"))

	s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *StoreSuite) TestFind() {
	ctx := context.Background()
	created := newState("KL")
	s.Require().NoError(s.store.Create(ctx, created))

	s.Run("by id", func() {
		got, err := s.store.FindByID(ctx, created.ID)
		s.Require().NoError(err)
		s.Equal("KL", got.StateCode)
		s.Equal("office@KL.example", got.ContactEmail)
		s.True(got.CreatedAt.Equal(created.CreatedAt))
	})

	s.Run("by code", func() {
		got, err := s.store.FindByCode(ctx, "KL")
		s.Require().NoError(err)
		s.Equal(created.ID, got.ID)
	})

	s.Run("missing", func() {
		_, err := s.store.FindByID(ctx, created.ID+100)
		s.ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.FindByCode(ctx, "XX")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *StoreSuite) TestListEmptyIsNotNil() {
	all, err := s.store.List(context.Background())
	s.Require().NoError(err)
	s.NotNil(all)
	s.Empty(all)
}

func (s *StoreSuite) TestListOrderedByID() {
	ctx := context.Background()
	for _, code := range []string{"C", "A", "B"} {
		s.Require().NoError(s.store.Create(ctx, newState(code)))
	}

	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]string{"C", "A", "B"}, []string{all[0].StateCode, all[1].StateCode, all[2].StateCode})
}
