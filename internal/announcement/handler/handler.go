package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"samiti/internal/announcement/models"
	dErrors "samiti/pkg/domain-errors"
	"samiti/pkg/platform/httputil"
	authmw "samiti/pkg/platform/middleware/auth"
	request "samiti/pkg/platform/middleware/request"
)

// Service defines the announcement operations the handler exposes.
type Service interface {
	Create(ctx context.Context, req *models.CreateAnnouncementRequest) (*models.Announcement, error)
	List(ctx context.Context) ([]*models.Announcement, error)
	Get(ctx context.Context, id int64) (*models.Announcement, error)
}

type Handler struct {
	service      Service
	logger       *slog.Logger
	jwtValidator authmw.JWTValidator
}

func New(service Service, logger *slog.Logger, jwtValidator authmw.JWTValidator) *Handler {
	return &Handler{service: service, logger: logger, jwtValidator: jwtValidator}
}

// Register registers the announcement routes. Only create requires a token.
func (h *Handler) Register(r chi.Router) {
	r.Route("/announcement", func(r chi.Router) {
		r.With(authmw.RequireAuth(h.jwtValidator, h.logger)).Post("/create", h.HandleCreate)
		r.Get("/getAll", h.HandleList)
		r.Get("/get/{id}", h.HandleGet)
	})
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateAnnouncementRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	a, err := h.service.Create(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "create announcement", requestID, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "Announcement created successfully", a)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.service.List(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "list announcements", request.GetRequestID(ctx), err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "Announcements fetched successfully", list)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid Announcement id"))
		return
	}
	a, err := h.service.Get(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "get announcement", requestID, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "Announcement fetched successfully", a)
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op, requestID string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "failed to "+op, "request_id", requestID, "error", err)
	}
	httputil.WriteError(w, err)
}
