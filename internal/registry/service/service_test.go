package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"samiti/internal/registry/models"
	"samiti/internal/registry/store/agency"
	"samiti/internal/registry/store/district"
	"samiti/internal/registry/store/state"
	dErrors "samiti/pkg/domain-errors"
	audit "samiti/pkg/platform/audit"
	"samiti/pkg/platform/audit/publisher"
	auditmemory "samiti/pkg/platform/audit/store/memory"
	"samiti/pkg/platform/sentinel"
	"samiti/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx       context.Context
	states    *state.InMemoryStore
	districts *district.InMemoryStore
	agencies  *agency.InMemoryStore
	auditLog  *auditmemory.InMemoryStore
	service   *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

var fixedNow = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func (s *ServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), fixedNow)
	s.ctx = requestcontext.WithPrincipal(s.ctx, 7, "STATE")
	s.states = state.NewInMemory()
	s.districts = district.NewInMemory()
	s.agencies = agency.NewInMemory()
	s.auditLog = auditmemory.NewInMemoryStore()
	s.service = New(s.states, s.districts, s.agencies,
		WithAuditPublisher(publisher.NewPublisher(s.auditLog)),
	)
}

func (s *ServiceSuite) createState(code string) *models.StateCommittee {
	st, err := s.service.CreateState(s.ctx, &models.CreateStateRequest{StateCode: code, StateName: "State " + code})
	s.Require().NoError(err)
	return st
}

func (s *ServiceSuite) createDistrict(stateID int64, code string) *models.DistrictCommittee {
	d, err := s.service.CreateDistrict(s.ctx, &models.CreateDistrictRequest{StateID: stateID, DistrictCode: code, DistrictName: "District " + code})
	s.Require().NoError(err)
	return d
}

func (s *ServiceSuite) agencyRequest(districtID int64, code string) *models.CreateAgencyRequest {
	return &models.CreateAgencyRequest{
		DistrictID:    districtID,
		AgencyCode:    code,
		LegalName:     "Agency " + code,
		ContactPerson: "Anil",
		ContactPhone:  "9876543210",
	}
}

func (s *ServiceSuite) TestCreateState() {
	s.Run("creates an active state stamped with the request time", func() {
		st := s.createState("KL")
		s.Positive(st.ID)
		s.Equal(models.StatusActive, st.Status)
		s.Equal(fixedNow, st.CreatedAt)

		events, err := s.auditLog.ListAll(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(string(audit.EventStateCreated), events[0].Action)
		s.Equal(int64(7), events[0].ActorID)
		s.Equal(fmt.Sprint(st.ID), events[0].SubjectID)
	})

	s.Run("duplicate code is a conflict and creates nothing", func() {
		_, err := s.service.CreateState(s.ctx, &models.CreateStateRequest{StateCode: "KL", StateName: "Again"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal("State with this code already exists", err.Error())

		states, err := s.service.ListStates(s.ctx)
		s.Require().NoError(err)
		s.Len(states, 1)
	})
}

func (s *ServiceSuite) TestCreateStateLostRace() {
	svc := New(racingStates{StateStore: s.states}, s.districts, s.agencies)
	_, err := svc.CreateState(s.ctx, &models.CreateStateRequest{StateCode: "KL", StateName: "Kerala"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestListStatesEmpty() {
	states, err := s.service.ListStates(s.ctx)
	s.Require().NoError(err)
	s.NotNil(states)
	s.Empty(states)
}

func (s *ServiceSuite) TestGetState() {
	kl := s.createState("KL")
	tn := s.createState("TN")
	s.createDistrict(kl.ID, "EKM")
	s.createDistrict(tn.ID, "CHN")
	s.createDistrict(kl.ID, "TVM")

	got, err := s.service.GetState(s.ctx, kl.ID)
	s.Require().NoError(err)
	s.Equal("KL", got.StateCode)
	s.Require().Len(got.Districts, 2)
	s.Equal("EKM", got.Districts[0].DistrictCode)
	s.Equal("TVM", got.Districts[1].DistrictCode)

	_, err = s.service.GetState(s.ctx, 999)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Equal("State not found", err.Error())
}

func (s *ServiceSuite) TestCreateDistrict() {
	s.Run("missing state is not found", func() {
		_, err := s.service.CreateDistrict(s.ctx, &models.CreateDistrictRequest{StateID: 42, DistrictCode: "EKM", DistrictName: "Ernakulam"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("State not found", err.Error())

		all, err := s.service.ListDistricts(s.ctx, 0)
		s.Require().NoError(err)
		s.Empty(all)
	})

	s.Run("duplicate code across states is a conflict", func() {
		kl := s.createState("KL")
		tn := s.createState("TN")
		d := s.createDistrict(kl.ID, "EKM")
		s.Equal(models.StatusActive, d.Status)

		_, err := s.service.CreateDistrict(s.ctx, &models.CreateDistrictRequest{StateID: tn.ID, DistrictCode: "EKM", DistrictName: "Other"})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal("District with this code already exists", err.Error())
	})
}

func (s *ServiceSuite) TestListAndGetDistricts() {
	kl := s.createState("KL")
	tn := s.createState("TN")
	s.createDistrict(kl.ID, "EKM")
	chn := s.createDistrict(tn.ID, "CHN")

	all, err := s.service.ListDistricts(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(all, 2)

	filtered, err := s.service.ListDistricts(s.ctx, tn.ID)
	s.Require().NoError(err)
	s.Require().Len(filtered, 1)
	s.Equal(chn.ID, filtered[0].ID)

	got, err := s.service.GetDistrict(s.ctx, chn.ID)
	s.Require().NoError(err)
	s.Equal("CHN", got.DistrictCode)

	_, err = s.service.GetDistrict(s.ctx, 999)
	s.Equal("District not found", err.Error())
}

func (s *ServiceSuite) TestCreateAgency() {
	kl := s.createState("KL")
	ekm := s.createDistrict(kl.ID, "EKM")

	s.Run("missing district is not found", func() {
		_, err := s.service.CreateAgency(s.ctx, s.agencyRequest(999, "AG1"))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("District not found", err.Error())
	})

	s.Run("creates a pending member", func() {
		a, err := s.service.CreateAgency(s.ctx, s.agencyRequest(ekm.ID, "AG1"))
		s.Require().NoError(err)
		s.Equal(models.MembershipStatusPending, a.MembershipStatus)
		s.Equal(fixedNow, a.CreatedAt)
	})

	s.Run("duplicate code is a conflict", func() {
		_, err := s.service.CreateAgency(s.ctx, s.agencyRequest(ekm.ID, "AG1"))
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal("Agency with this code already exists", err.Error())
	})
}

func (s *ServiceSuite) TestListAgenciesNewestFirst() {
	kl := s.createState("KL")
	ekm := s.createDistrict(kl.ID, "EKM")
	for _, code := range []string{"AG1", "AG2", "AG3"} {
		_, err := s.service.CreateAgency(s.ctx, s.agencyRequest(ekm.ID, code))
		s.Require().NoError(err)
	}

	agencies, err := s.service.ListAgencies(s.ctx, ekm.ID)
	s.Require().NoError(err)
	s.Require().Len(agencies, 3)
	s.Equal("AG3", agencies[0].AgencyCode)

	got, err := s.service.GetAgency(s.ctx, agencies[2].ID)
	s.Require().NoError(err)
	s.Equal("AG1", got.AgencyCode)

	s.Equal("Agency not found", s.service.AgencyExists(s.ctx, 999).Error())
}

func (s *ServiceSuite) TestStoreFailureIsInternal() {
	svc := New(failingStates{}, s.districts, s.agencies)
	_, err := svc.ListStates(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.ErrorIs(err, errBoom)
}

// racingStates reports every code as free, then fails the insert as a concurrent
// writer would.
type racingStates struct {
	StateStore
}

func (racingStates) FindByCode(context.Context, string) (*models.StateCommittee, error) {
	return nil, sentinel.ErrNotFound
}

func (racingStates) Create(context.Context, *models.StateCommittee) error {
	return fmt.Errorf("insert: %w", sentinel.ErrAlreadyUsed)
}

var errBoom = errors.New("connection reset")

type failingStates struct {
	StateStore
}

func (failingStates) List(context.Context) ([]*models.StateCommittee, error) {
	return nil, errBoom
}
