package district_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"samiti/internal/platform/database/dbtest"
	"samiti/internal/registry/models"
	"samiti/internal/registry/store/district"
	"samiti/internal/registry/store/state"
	"samiti/pkg/platform/sentinel"
)

type Store interface {
	Create(ctx context.Context, d *models.DistrictCommittee) error
	FindByID(ctx context.Context, id int64) (*models.DistrictCommittee, error)
	FindByCode(ctx context.Context, code string) (*models.DistrictCommittee, error)
	List(ctx context.Context, stateID int64) ([]*models.DistrictCommittee, error)
}

type StoreSuite struct {
	suite.Suite
	sqlBacked bool
	store     Store
	stateIDs  [2]int64
}

func TestInMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{})
}

func TestSQLStore(t *testing.T) {
	suite.Run(t, &StoreSuite{sqlBacked: true})
}

func (s *StoreSuite) SetupTest() {
	ctx := context.Background()
	if !s.sqlBacked {
		s.store = district.NewInMemory()
		s.stateIDs = [2]int64{1, 2}
		return
	}
	db := dbtest.NewSQLite(s.T())
	s.store = district.NewSQL(db)
	s.stateIDs = [2]int64{seedState(ctx, s, db, "KL"), seedState(ctx, s, db, "TN")}
}

func seedState(ctx context.Context, s *StoreSuite, db *sql.DB, code string) int64 {
	st := &models.StateCommittee{StateCode: code, StateName: code, Status: models.StatusActive, CreatedAt: time.Now()}
	s.Require().NoError(state.NewSQL(db).Create(ctx, st))
	return st.ID
}

func (s *StoreSuite) newDistrict(stateID int64, code string) *models.DistrictCommittee {
	return &models.DistrictCommittee{
		StateID:      stateID,
		DistrictCode: code,
		DistrictName: "District " + code,
		Status:       models.StatusActive,
		CreatedAt:    time.Now().UTC(),
	}
}

func (s *StoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	d := s.newDistrict(s.stateIDs[0], "EKM")
	s.Require().NoError(s.store.Create(ctx, d))
	s.Positive(d.ID)

	got, err := s.store.FindByID(ctx, d.ID)
	s.Require().NoError(err)
	s.Equal("EKM", got.DistrictCode)
	s.Equal(s.stateIDs[0], got.StateID)

	byCode, err := s.store.FindByCode(ctx, "EKM")
	s.Require().NoError(err)
	s.Equal(d.ID, byCode.ID)

	_, err = s.store.FindByID(ctx, d.ID+1)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *StoreSuite) TestDuplicateCode() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newDistrict(s.stateIDs[0], "EKM")))
	err := s.store.Create(ctx, s.newDistrict(s.stateIDs[1], "EKM"))
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *StoreSuite) TestListFiltersByState() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newDistrict(s.stateIDs[0], "A1")))
	s.Require().NoError(s.store.Create(ctx, s.newDistrict(s.stateIDs[1], "B1")))
	s.Require().NoError(s.store.Create(ctx, s.newDistrict(s.stateIDs[0], "A2")))

	all, err := s.store.List(ctx, 0)
	s.Require().NoError(err)
	s.Len(all, 3)

	first, err := s.store.List(ctx, s.stateIDs[0])
	s.Require().NoError(err)
	s.Require().Len(first, 2)
	s.Equal("A1", first[0].DistrictCode)
	s.Equal("A2", first[1].DistrictCode)

	none, err := s.store.List(ctx, 999)
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *StoreSuite) TestMissingParentRejectedBySQL() {
	if !s.sqlBacked {
		s.T().Skip("foreign keys are enforced by the database")
	}
	err := s.store.Create(context.Background(), s.newDistrict(999, "X1"))
	s.ErrorIs(err, sentinel.ErrMissingParent)
}
