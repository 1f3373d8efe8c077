// Package service implements the committee registry: state committees, the
// district committees under them and the agency members under districts.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	registrymetrics "samiti/internal/registry/metrics"
	"samiti/internal/registry/models"
	dErrors "samiti/pkg/domain-errors"
	audit "samiti/pkg/platform/audit"
	"samiti/pkg/platform/sentinel"
	"samiti/pkg/requestcontext"
)

var tracer = otel.Tracer("samiti/internal/registry/service")

type StateStore interface {
	Create(ctx context.Context, state *models.StateCommittee) error
	FindByID(ctx context.Context, id int64) (*models.StateCommittee, error)
	FindByCode(ctx context.Context, code string) (*models.StateCommittee, error)
	List(ctx context.Context) ([]*models.StateCommittee, error)
}

type DistrictStore interface {
	Create(ctx context.Context, district *models.DistrictCommittee) error
	FindByID(ctx context.Context, id int64) (*models.DistrictCommittee, error)
	FindByCode(ctx context.Context, code string) (*models.DistrictCommittee, error)
	List(ctx context.Context, stateID int64) ([]*models.DistrictCommittee, error)
}

type AgencyStore interface {
	Create(ctx context.Context, agency *models.AgencyMember) error
	FindByID(ctx context.Context, id int64) (*models.AgencyMember, error)
	FindByCode(ctx context.Context, code string) (*models.AgencyMember, error)
	List(ctx context.Context, districtID int64) ([]*models.AgencyMember, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

const (
	kindState    = "state"
	kindDistrict = "district"
	kindAgency   = "agency"
)

// Service orchestrates registry reads and writes.
type Service struct {
	states         StateStore
	districts      DistrictStore
	agencies       AgencyStore
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *registrymetrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *registrymetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(states StateStore, districts DistrictStore, agencies AgencyStore, opts ...Option) *Service {
	s := &Service{states: states, districts: districts, agencies: agencies}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateState inserts a new ACTIVE state committee. The state code must be unused.
func (s *Service) CreateState(ctx context.Context, req *models.CreateStateRequest) (*models.StateCommittee, error) {
	ctx, span := tracer.Start(ctx, "registry.CreateState", trace.WithAttributes(attribute.String("state_code", req.StateCode)))
	defer span.End()

	if err := s.ensureUnused(ctx, kindState, func() error {
		_, err := s.states.FindByCode(ctx, req.StateCode)
		return err
	}); err != nil {
		return nil, err
	}

	state := &models.StateCommittee{
		StateCode:     req.StateCode,
		StateName:     req.StateName,
		ContactPerson: req.ContactPerson,
		ContactPhone:  req.ContactPhone,
		ContactEmail:  req.ContactEmail,
		Status:        models.StatusActive,
		CreatedAt:     requestcontext.Now(ctx),
	}
	if err := s.states.Create(ctx, state); err != nil {
		return nil, s.createErr(kindState, err)
	}

	s.metrics.IncrementCreated(kindState)
	s.logAudit(ctx, audit.EventStateCreated, "state_committee", state.ID)
	return state, nil
}

// ListStates returns every state committee ordered by id.
func (s *Service) ListStates(ctx context.Context) ([]*models.StateCommittee, error) {
	ctx, span := tracer.Start(ctx, "registry.ListStates")
	defer span.End()

	states, err := s.states.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list states")
	}
	return states, nil
}

// GetState returns a state committee with its districts.
func (s *Service) GetState(ctx context.Context, id int64) (*models.StateWithDistricts, error) {
	ctx, span := tracer.Start(ctx, "registry.GetState", trace.WithAttributes(attribute.Int64("state_id", id)))
	defer span.End()

	state, err := s.findState(ctx, id)
	if err != nil {
		return nil, err
	}
	districts, err := s.districts.List(ctx, state.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list districts")
	}
	return &models.StateWithDistricts{StateCommittee: state, Districts: districts}, nil
}

// CreateDistrict inserts a new ACTIVE district committee under an existing state.
func (s *Service) CreateDistrict(ctx context.Context, req *models.CreateDistrictRequest) (*models.DistrictCommittee, error) {
	ctx, span := tracer.Start(ctx, "registry.CreateDistrict", trace.WithAttributes(
		attribute.Int64("state_id", req.StateID),
		attribute.String("district_code", req.DistrictCode),
	))
	defer span.End()

	if _, err := s.findState(ctx, req.StateID); err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			s.metrics.IncrementRejected(kindDistrict, "missing_parent")
		}
		return nil, err
	}
	if err := s.ensureUnused(ctx, kindDistrict, func() error {
		_, err := s.districts.FindByCode(ctx, req.DistrictCode)
		return err
	}); err != nil {
		return nil, err
	}

	district := &models.DistrictCommittee{
		StateID:       req.StateID,
		DistrictCode:  req.DistrictCode,
		DistrictName:  req.DistrictName,
		ContactPerson: req.ContactPerson,
		ContactPhone:  req.ContactPhone,
		ContactEmail:  req.ContactEmail,
		Status:        models.StatusActive,
		CreatedAt:     requestcontext.Now(ctx),
	}
	if err := s.districts.Create(ctx, district); err != nil {
		return nil, s.createErr(kindDistrict, err)
	}

	s.metrics.IncrementCreated(kindDistrict)
	s.logAudit(ctx, audit.EventDistrictCreated, "district_committee", district.ID)
	return district, nil
}

// ListDistricts returns districts ordered by id, optionally limited to one state.
// A zero stateID lists all districts.
func (s *Service) ListDistricts(ctx context.Context, stateID int64) ([]*models.DistrictCommittee, error) {
	ctx, span := tracer.Start(ctx, "registry.ListDistricts")
	defer span.End()

	districts, err := s.districts.List(ctx, stateID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list districts")
	}
	return districts, nil
}

func (s *Service) GetDistrict(ctx context.Context, id int64) (*models.DistrictCommittee, error) {
	ctx, span := tracer.Start(ctx, "registry.GetDistrict", trace.WithAttributes(attribute.Int64("district_id", id)))
	defer span.End()

	return s.findDistrict(ctx, id)
}

// CreateAgency inserts a PENDING agency member under an existing district.
func (s *Service) CreateAgency(ctx context.Context, req *models.CreateAgencyRequest) (*models.AgencyMember, error) {
	ctx, span := tracer.Start(ctx, "registry.CreateAgency", trace.WithAttributes(
		attribute.Int64("district_id", req.DistrictID),
		attribute.String("agency_code", req.AgencyCode),
	))
	defer span.End()

	if _, err := s.findDistrict(ctx, req.DistrictID); err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			s.metrics.IncrementRejected(kindAgency, "missing_parent")
		}
		return nil, err
	}
	if err := s.ensureUnused(ctx, kindAgency, func() error {
		_, err := s.agencies.FindByCode(ctx, req.AgencyCode)
		return err
	}); err != nil {
		return nil, err
	}

	agency := &models.AgencyMember{
		DistrictID:       req.DistrictID,
		AgencyCode:       req.AgencyCode,
		LegalName:        req.LegalName,
		TradeName:        req.TradeName,
		ContactPerson:    req.ContactPerson,
		ContactPhone:     req.ContactPhone,
		ContactEmail:     req.ContactEmail,
		AddressLine1:     req.AddressLine1,
		AddressLine2:     req.AddressLine2,
		City:             req.City,
		Pincode:          req.Pincode,
		GSTNumber:        req.GSTNumber,
		MembershipStatus: models.MembershipStatusPending,
		CreatedAt:        requestcontext.Now(ctx),
	}
	if err := s.agencies.Create(ctx, agency); err != nil {
		return nil, s.createErr(kindAgency, err)
	}

	s.metrics.IncrementCreated(kindAgency)
	s.logAudit(ctx, audit.EventAgencyCreated, "agency_member", agency.ID)
	return agency, nil
}

// ListAgencies returns agencies newest first, optionally limited to one district.
func (s *Service) ListAgencies(ctx context.Context, districtID int64) ([]*models.AgencyMember, error) {
	ctx, span := tracer.Start(ctx, "registry.ListAgencies")
	defer span.End()

	agencies, err := s.agencies.List(ctx, districtID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list agencies")
	}
	return agencies, nil
}

func (s *Service) GetAgency(ctx context.Context, id int64) (*models.AgencyMember, error) {
	ctx, span := tracer.Start(ctx, "registry.GetAgency", trace.WithAttributes(attribute.Int64("agency_id", id)))
	defer span.End()

	agency, err := s.agencies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Agency not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load agency")
	}
	return agency, nil
}

// StateExists, DistrictExists and AgencyExists let other modules check scope ids
// without depending on the registry stores.
func (s *Service) StateExists(ctx context.Context, id int64) error {
	_, err := s.findState(ctx, id)
	return err
}

func (s *Service) DistrictExists(ctx context.Context, id int64) error {
	_, err := s.findDistrict(ctx, id)
	return err
}

func (s *Service) AgencyExists(ctx context.Context, id int64) error {
	_, err := s.GetAgency(ctx, id)
	return err
}

func (s *Service) findState(ctx context.Context, id int64) (*models.StateCommittee, error) {
	state, err := s.states.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "State not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load state")
	}
	return state, nil
}

func (s *Service) findDistrict(ctx context.Context, id int64) (*models.DistrictCommittee, error) {
	district, err := s.districts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "District not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load district")
	}
	return district, nil
}

// ensureUnused runs a lookup by natural key and turns a hit into a conflict.
func (s *Service) ensureUnused(ctx context.Context, kind string, lookup func() error) error {
	err := lookup()
	switch {
	case err == nil:
		s.metrics.IncrementRejected(kind, "duplicate_code")
		return conflictErr(kind)
	case errors.Is(err, sentinel.ErrNotFound):
		return nil
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check "+kind+" code")
	}
}

// createErr maps store write failures. A unique violation here means another
// request won the race after the pre-check.
func (s *Service) createErr(kind string, err error) error {
	switch {
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		s.metrics.IncrementRejected(kind, "duplicate_code")
		return conflictErr(kind)
	case errors.Is(err, sentinel.ErrMissingParent):
		s.metrics.IncrementRejected(kind, "missing_parent")
		if kind == kindAgency {
			return dErrors.New(dErrors.CodeNotFound, "District not found")
		}
		return dErrors.New(dErrors.CodeNotFound, "State not found")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create "+kind)
	}
}

func conflictErr(kind string) error {
	switch kind {
	case kindState:
		return dErrors.New(dErrors.CodeConflict, "State with this code already exists")
	case kindDistrict:
		return dErrors.New(dErrors.CodeConflict, "District with this code already exists")
	default:
		return dErrors.New(dErrors.CodeConflict, "Agency with this code already exists")
	}
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, subjectType string, subjectID int64) {
	actorID := requestcontext.UserID(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event),
			"event", string(event),
			"log_type", "audit",
			"subject_type", subjectType,
			"subject_id", subjectID,
			"actor_id", actorID,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		Action:      string(event),
		ActorID:     actorID,
		SubjectType: subjectType,
		SubjectID:   strconv.FormatInt(subjectID, 10),
	}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
	}
}
