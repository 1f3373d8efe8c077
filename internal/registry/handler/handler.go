package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"samiti/internal/registry/models"
	dErrors "samiti/pkg/domain-errors"
	"samiti/pkg/platform/httputil"
	request "samiti/pkg/platform/middleware/request"
)

// Service defines the registry operations the handler exposes.
type Service interface {
	CreateState(ctx context.Context, req *models.CreateStateRequest) (*models.StateCommittee, error)
	ListStates(ctx context.Context) ([]*models.StateCommittee, error)
	GetState(ctx context.Context, id int64) (*models.StateWithDistricts, error)
	CreateDistrict(ctx context.Context, req *models.CreateDistrictRequest) (*models.DistrictCommittee, error)
	ListDistricts(ctx context.Context, stateID int64) ([]*models.DistrictCommittee, error)
	GetDistrict(ctx context.Context, id int64) (*models.DistrictCommittee, error)
	CreateAgency(ctx context.Context, req *models.CreateAgencyRequest) (*models.AgencyMember, error)
	ListAgencies(ctx context.Context, districtID int64) ([]*models.AgencyMember, error)
	GetAgency(ctx context.Context, id int64) (*models.AgencyMember, error)
}

// Handler serves the state, district and agency endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the registry routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/state", func(r chi.Router) {
		r.Post("/create", h.HandleCreateState)
		r.Get("/getAll", h.HandleListStates)
		r.Get("/get/{id}", h.HandleGetState)
	})
	r.Route("/district", func(r chi.Router) {
		r.Post("/create", h.HandleCreateDistrict)
		r.Get("/getAll", h.HandleListDistricts)
		r.Get("/get/{id}", h.HandleGetDistrict)
	})
	r.Route("/agency", func(r chi.Router) {
		r.Post("/create", h.HandleCreateAgency)
		r.Get("/getAll", h.HandleListAgencies)
		r.Get("/get/{id}", h.HandleGetAgency)
	})
}

func (h *Handler) HandleCreateState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateStateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	state, err := h.service.CreateState(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "create state", requestID, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "State created successfully", state)
}

func (h *Handler) HandleListStates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	states, err := h.service.ListStates(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "list states", request.GetRequestID(ctx), err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "States fetched successfully", states)
}

func (h *Handler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	id, ok := h.pathID(w, r, "State")
	if !ok {
		return
	}
	state, err := h.service.GetState(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "get state", requestID, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "State fetched successfully", state)
}

func (h *Handler) HandleCreateDistrict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateDistrictRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	district, err := h.service.CreateDistrict(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "create district", requestID, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "District created successfully", district)
}

func (h *Handler) HandleListDistricts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	stateID, ok := h.queryID(w, r, "state_id")
	if !ok {
		return
	}
	districts, err := h.service.ListDistricts(ctx, stateID)
	if err != nil {
		h.writeServiceError(ctx, w, "list districts", requestID, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "Districts fetched successfully", districts)
}

func (h *Handler) HandleGetDistrict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	id, ok := h.pathID(w, r, "District")
	if !ok {
		return
	}
	district, err := h.service.GetDistrict(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "get district", requestID, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "District fetched successfully", district)
}

func (h *Handler) HandleCreateAgency(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateAgencyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	agency, err := h.service.CreateAgency(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "create agency", requestID, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "Agency created successfully", agency)
}

func (h *Handler) HandleListAgencies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	districtID, ok := h.queryID(w, r, "district_id")
	if !ok {
		return
	}
	agencies, err := h.service.ListAgencies(ctx, districtID)
	if err != nil {
		h.writeServiceError(ctx, w, "list agencies", requestID, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "Agencies fetched successfully", agencies)
}

func (h *Handler) HandleGetAgency(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	id, ok := h.pathID(w, r, "Agency")
	if !ok {
		return
	}
	agency, err := h.service.GetAgency(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "get agency", requestID, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "Agency fetched successfully", agency)
}

// pathID parses the {id} URL parameter as a positive integer.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, entity string) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.logger.WarnContext(r.Context(), "invalid path id",
			"id", raw,
			"request_id", request.GetRequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid "+entity+" id"))
		return 0, false
	}
	return id, true
}

// queryID parses an optional positive integer filter; absent means zero.
func (h *Handler) queryID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op, requestID string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "failed to "+op,
			"request_id", requestID,
			"error", err,
		)
	} else {
		h.logger.WarnContext(ctx, op+" rejected",
			"request_id", requestID,
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
