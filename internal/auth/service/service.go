// Package service implements login, registration and account lookup.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"samiti/internal/auth/lockout"
	authmetrics "samiti/internal/auth/metrics"
	"samiti/internal/auth/models"
	"samiti/internal/auth/password"
	dErrors "samiti/pkg/domain-errors"
	audit "samiti/pkg/platform/audit"
	"samiti/pkg/platform/sentinel"
	"samiti/pkg/requestcontext"
)

var tracer = otel.Tracer("samiti/internal/auth/service")

const invalidCredentials = "Invalid login_id or password."

type UserStore interface {
	Create(ctx context.Context, user *models.UserAccount) error
	FindByID(ctx context.Context, id int64) (*models.UserAccount, error)
	FindByLoginID(ctx context.Context, loginID string) (*models.UserAccount, error)
	FindByMobileNumber(ctx context.Context, mobile string) (*models.UserAccount, error)
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateAccessToken(userID int64, roleType string, expiresIn time.Duration) (string, error)
}

// ScopeChecker confirms that the committee or agency a new account is scoped to
// exists. Implementations return a not_found domain error otherwise.
type ScopeChecker interface {
	StateExists(ctx context.Context, id int64) error
	DistrictExists(ctx context.Context, id int64) error
	AgencyExists(ctx context.Context, id int64) error
}

type Lockout interface {
	Check(ctx context.Context, loginID string) (*lockout.Status, error)
	RecordFailure(ctx context.Context, loginID string) (*lockout.Status, error)
	Clear(ctx context.Context, loginID string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates credential checks and account creation.
type Service struct {
	users          UserStore
	tokens         TokenIssuer
	scopes         ScopeChecker
	lockout        Lockout
	tokenTTL       time.Duration
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *authmetrics.Metrics
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

func WithMetrics(m *authmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLockout enables failed-login lockout.
func WithLockout(l Lockout) Option {
	return func(s *Service) {
		s.lockout = l
	}
}

// WithTokenTTL overrides the 24h access token lifetime.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

func New(users UserStore, tokens TokenIssuer, scopes ScopeChecker, opts ...Option) *Service {
	s := &Service{
		users:    users,
		tokens:   tokens,
		scopes:   scopes,
		tokenTTL: 24 * time.Hour,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TokenTTL is the lifetime of issued access tokens.
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Login verifies credentials and issues an access token. Unknown login ids and
// wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
	ctx, span := tracer.Start(ctx, "auth.Login")
	defer span.End()

	if s.lockout != nil {
		status, err := s.lockout.Check(ctx, req.LoginID)
		if err != nil {
			return nil, err
		}
		if status.Locked {
			s.metrics.IncrementLogin(authmetrics.OutcomeLocked)
			s.logAudit(ctx, audit.EventLoginLocked, 0, req.LoginID, "too many failures")
			return nil, dErrors.New(dErrors.CodeTooManyRequests,
				fmt.Sprintf("Too many failed login attempts. Try again in %d minutes.", retryMinutes(status.RetryAfter)))
		}
	}

	user, err := s.users.FindByLoginID(ctx, req.LoginID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, s.loginFailed(ctx, req.LoginID, "unknown login id")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	if err := password.Verify(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, s.loginFailed(ctx, req.LoginID, "wrong password")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
	}

	if s.lockout != nil {
		if err := s.lockout.Clear(ctx, req.LoginID); err != nil {
			s.logger.WarnContext(ctx, "failed to clear login failures", "error", err)
		}
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, string(user.RoleType), s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate access token")
	}

	span.SetAttributes(attribute.Int64("user_id", user.ID))
	s.metrics.IncrementLogin(authmetrics.OutcomeSuccess)
	s.logAudit(ctx, audit.EventLoginSucceeded, user.ID, strconv.FormatInt(user.ID, 10), "")
	return &models.LoginResult{AccessToken: token, RoleType: user.RoleType, User: user}, nil
}

func (s *Service) loginFailed(ctx context.Context, loginID, reason string) error {
	s.metrics.IncrementLogin(authmetrics.OutcomeFailed)
	s.logAudit(ctx, audit.EventLoginFailed, 0, loginID, reason)
	if s.lockout != nil {
		status, err := s.lockout.RecordFailure(ctx, loginID)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to record login failure", "error", err)
		} else if status.Locked {
			s.logAudit(ctx, audit.EventLoginLocked, 0, loginID, "threshold reached")
		}
	}
	return dErrors.New(dErrors.CodeBadRequest, invalidCredentials)
}

// Register creates an account on behalf of the authenticated caller. The caller's
// role bounds which roles may be created.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserAccount, error) {
	ctx, span := tracer.Start(ctx, "auth.Register", trace.WithAttributes(
		attribute.String("role_type", string(req.RoleType)),
	))
	defer span.End()

	if !req.RoleType.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "role_type must be one of: STATE, DISTRICT, AGENCY")
	}
	caller := models.RoleType(requestcontext.RoleType(ctx))
	if !caller.CanRegister(req.RoleType) {
		return nil, dErrors.New(dErrors.CodeForbidden,
			fmt.Sprintf("You are not allowed to create a user with role_type %s.", req.RoleType))
	}

	scopeID := req.ScopeID()
	if scopeID == nil || *scopeID <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("%s is required for role_type %s", scopeField(req.RoleType), req.RoleType))
	}
	if err := s.checkScope(ctx, req.RoleType, *scopeID); err != nil {
		return nil, err
	}

	if err := s.ensureUnused(ctx, req); err != nil {
		return nil, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user := &models.UserAccount{
		LoginID:      req.LoginID,
		PasswordHash: hash,
		MobileNumber: req.MobileNumber,
		RoleType:     req.RoleType,
		Status:       models.StatusActive,
		CreatedAt:    requestcontext.Now(ctx),
	}
	id := *scopeID
	switch req.RoleType {
	case models.RoleState:
		user.StateID = &id
	case models.RoleDistrict:
		user.DistrictID = &id
	case models.RoleAgency:
		user.AgencyID = &id
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrAlreadyUsed):
			return nil, dErrors.New(dErrors.CodeConflict, "Login ID or mobile number already exists.")
		case errors.Is(err, sentinel.ErrMissingParent):
			return nil, dErrors.New(dErrors.CodeNotFound, scopeEntity(req.RoleType)+" not found")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
		}
	}

	s.metrics.IncrementRegistered(string(user.RoleType))
	s.logAudit(ctx, audit.EventUserRegistered, requestcontext.UserID(ctx), strconv.FormatInt(user.ID, 10), string(user.RoleType))
	return user, nil
}

// Me returns the account of the authenticated caller.
func (s *Service) Me(ctx context.Context) (*models.UserAccount, error) {
	ctx, span := tracer.Start(ctx, "auth.Me")
	defer span.End()

	user, err := s.users.FindByID(ctx, requestcontext.UserID(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

func (s *Service) checkScope(ctx context.Context, role models.RoleType, id int64) error {
	var err error
	switch role {
	case models.RoleState:
		err = s.scopes.StateExists(ctx, id)
	case models.RoleDistrict:
		err = s.scopes.DistrictExists(ctx, id)
	case models.RoleAgency:
		err = s.scopes.AgencyExists(ctx, id)
	}
	if err == nil || dErrors.HasCode(err, dErrors.CodeNotFound) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check scope")
}

func (s *Service) ensureUnused(ctx context.Context, req *models.RegisterRequest) error {
	if _, err := s.users.FindByLoginID(ctx, req.LoginID); err == nil {
		return dErrors.New(dErrors.CodeConflict, "Login ID already exists.")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check login id")
	}
	if _, err := s.users.FindByMobileNumber(ctx, req.MobileNumber); err == nil {
		return dErrors.New(dErrors.CodeConflict, "Mobile number already exists.")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check mobile number")
	}
	return nil
}

func scopeField(role models.RoleType) string {
	switch role {
	case models.RoleState:
		return "state_id"
	case models.RoleDistrict:
		return "district_id"
	default:
		return "agency_id"
	}
}

func scopeEntity(role models.RoleType) string {
	switch role {
	case models.RoleState:
		return "State"
	case models.RoleDistrict:
		return "District"
	default:
		return "Agency"
	}
}

func retryMinutes(d time.Duration) int {
	m := int((d + time.Minute - 1) / time.Minute)
	return max(m, 1)
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, actorID int64, subjectID, reason string) {
	s.logger.InfoContext(ctx, string(event),
		"event", string(event),
		"log_type", "audit",
		"actor_id", actorID,
		"subject_id", subjectID,
		"reason", reason,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		Action:      string(event),
		ActorID:     actorID,
		SubjectType: "user_account",
		SubjectID:   subjectID,
		Reason:      reason,
	}); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
	}
}
