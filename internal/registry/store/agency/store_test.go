package agency_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"samiti/internal/platform/database/dbtest"
	"samiti/internal/registry/models"
	"samiti/internal/registry/store/agency"
	"samiti/internal/registry/store/district"
	"samiti/internal/registry/store/state"
	"samiti/pkg/platform/sentinel"
)

type Store interface {
	Create(ctx context.Context, a *models.AgencyMember) error
	FindByID(ctx context.Context, id int64) (*models.AgencyMember, error)
	FindByCode(ctx context.Context, code string) (*models.AgencyMember, error)
	List(ctx context.Context, districtID int64) ([]*models.AgencyMember, error)
}

type StoreSuite struct {
	suite.Suite
	sqlBacked   bool
	store       Store
	districtIDs [2]int64
}

func TestInMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{})
}

func TestSQLStore(t *testing.T) {
	suite.Run(t, &StoreSuite{sqlBacked: true})
}

func (s *StoreSuite) SetupTest() {
	if !s.sqlBacked {
		s.store = agency.NewInMemory()
		s.districtIDs = [2]int64{1, 2}
		return
	}
	ctx := context.Background()
	db := dbtest.NewSQLite(s.T())
	now := time.Now().UTC()

	st := &models.StateCommittee{StateCode: "KL", StateName: "Kerala", Status: models.StatusActive, CreatedAt: now}
	s.Require().NoError(state.NewSQL(db).Create(ctx, st))
	districts := district.NewSQL(db)
	for i, code := range []string{"EKM", "TVM"} {
		d := &models.DistrictCommittee{StateID: st.ID, DistrictCode: code, DistrictName: code, Status: models.StatusActive, CreatedAt: now}
		s.Require().NoError(districts.Create(ctx, d))
		s.districtIDs[i] = d.ID
	}
	s.store = agency.NewSQL(db)
}

func (s *StoreSuite) newAgency(districtID int64, code string) *models.AgencyMember {
	return &models.AgencyMember{
		DistrictID:       districtID,
		AgencyCode:       code,
		LegalName:        "Agency " + code,
		ContactPerson:    "Anil",
		ContactPhone:     "9876543210",
		GSTNumber:        "32ABCDE1234F1Z5",
		MembershipStatus: models.MembershipStatusPending,
		CreatedAt:        time.Now().UTC(),
	}
}

func (s *StoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	a := s.newAgency(s.districtIDs[0], "AG1")
	s.Require().NoError(s.store.Create(ctx, a))
	s.Positive(a.ID)

	got, err := s.store.FindByID(ctx, a.ID)
	s.Require().NoError(err)
	s.Equal("AG1", got.AgencyCode)
	s.Equal(models.MembershipStatusPending, got.MembershipStatus)
	s.Equal("32ABCDE1234F1Z5", got.GSTNumber)

	byCode, err := s.store.FindByCode(ctx, "AG1")
	s.Require().NoError(err)
	s.Equal(a.ID, byCode.ID)

	_, err = s.store.FindByCode(ctx, "missing")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *StoreSuite) TestDuplicateCode() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newAgency(s.districtIDs[0], "AG1")))
	s.ErrorIs(s.store.Create(ctx, s.newAgency(s.districtIDs[1], "AG1")), sentinel.ErrAlreadyUsed)
}

func (s *StoreSuite) TestListNewestFirst() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newAgency(s.districtIDs[0], "AG1")))
	s.Require().NoError(s.store.Create(ctx, s.newAgency(s.districtIDs[1], "AG2")))
	s.Require().NoError(s.store.Create(ctx, s.newAgency(s.districtIDs[0], "AG3")))

	all, err := s.store.List(ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("AG3", all[0].AgencyCode)
	s.Equal("AG1", all[2].AgencyCode)

	filtered, err := s.store.List(ctx, s.districtIDs[0])
	s.Require().NoError(err)
	s.Require().Len(filtered, 2)
	s.Equal("AG3", filtered[0].AgencyCode)
	s.Equal("AG1", filtered[1].AgencyCode)
}

func (s *StoreSuite) TestMissingParentRejectedBySQL() {
	if !s.sqlBacked {
		s.T().Skip("foreign keys are enforced by the database")
	}
	s.ErrorIs(s.store.Create(context.Background(), s.newAgency(999, "AGX")), sentinel.ErrMissingParent)
}
