// Package service publishes and reads announcements.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"samiti/internal/announcement/models"
	dErrors "samiti/pkg/domain-errors"
	audit "samiti/pkg/platform/audit"
	"samiti/pkg/platform/sentinel"
	"samiti/pkg/requestcontext"
)

var tracer = otel.Tracer("samiti/internal/announcement/service")

type Store interface {
	Create(ctx context.Context, a *models.Announcement) error
	FindByID(ctx context.Context, id int64) (*models.Announcement, error)
	List(ctx context.Context) ([]*models.Announcement, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	store          Store
	logger         *slog.Logger
	auditPublisher AuditPublisher
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

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create publishes an announcement authored by the authenticated caller.
func (s *Service) Create(ctx context.Context, req *models.CreateAnnouncementRequest) (*models.Announcement, error) {
	ctx, span := tracer.Start(ctx, "announcement.Create", trace.WithAttributes(attribute.String("audience", req.Audience)))
	defer span.End()

	authorID := requestcontext.UserID(ctx)
	if authorID == 0 {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	audience := req.Audience
	if audience == "" {
		audience = models.AudienceAll
	}

	a := &models.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		Audience:  audience,
		CreatedBy: authorID,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, a); err != nil {
		if errors.Is(err, sentinel.ErrMissingParent) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "author account no longer exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create announcement")
	}

	s.logger.InfoContext(ctx, string(audit.EventAnnouncementCreated),
		"event", string(audit.EventAnnouncementCreated),
		"log_type", "audit",
		"announcement_id", a.ID,
		"actor_id", authorID,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.auditPublisher != nil {
		if err := s.auditPublisher.Emit(ctx, audit.Event{
			Action:      string(audit.EventAnnouncementCreated),
			ActorID:     authorID,
			SubjectType: "announcement",
			SubjectID:   strconv.FormatInt(a.ID, 10),
		}); err != nil {
			s.logger.WarnContext(ctx, "failed to emit audit event", "error", err)
		}
	}
	return a, nil
}

// List returns announcements newest first.
func (s *Service) List(ctx context.Context) ([]*models.Announcement, error) {
	ctx, span := tracer.Start(ctx, "announcement.List")
	defer span.End()

	list, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list announcements")
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Announcement, error) {
	ctx, span := tracer.Start(ctx, "announcement.Get", trace.WithAttributes(attribute.Int64("announcement_id", id)))
	defer span.End()

	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Announcement not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load announcement")
	}
	return a, nil
}
