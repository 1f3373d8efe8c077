package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"samiti/internal/auth/models"
	dErrors "samiti/pkg/domain-errors"
	"samiti/pkg/platform/httputil"
	authmw "samiti/pkg/platform/middleware/auth"
	request "samiti/pkg/platform/middleware/request"
)

// Service defines the account operations the handler exposes.
type Service interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.UserAccount, error)
	Me(ctx context.Context) (*models.UserAccount, error)
	TokenTTL() time.Duration
}

// Handler serves the /auth endpoints.
type Handler struct {
	service      Service
	logger       *slog.Logger
	jwtValidator authmw.JWTValidator
	cookieSecure bool
}

func New(service Service, logger *slog.Logger, jwtValidator authmw.JWTValidator, cookieSecure bool) *Handler {
	return &Handler{
		service:      service,
		logger:       logger,
		jwtValidator: jwtValidator,
		cookieSecure: cookieSecure,
	}
}

// Register registers the auth routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.HandleLogin)
		r.Post("/logout", h.HandleLogout)
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth(h.jwtValidator, h.logger))
			r.Post("/register", h.HandleRegister)
			r.Get("/me", h.HandleMe)
		})
	})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.service.Login(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "login", requestID, err)
		return
	}

	h.setAccessCookie(w, res.AccessToken, int(h.service.TokenTTL().Seconds()))
	httputil.WriteSuccess(w, http.StatusOK, "Login successful.", res)
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	user, err := h.service.Register(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "register user", requestID, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "User registered successfully.", user)
}

// HandleLogout expires the access cookie. Issued tokens stay valid until they expire.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.setAccessCookie(w, "", -1)
	httputil.WriteSuccess(w, http.StatusOK, "Logout successful.", nil)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.service.Me(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "load current user", request.GetRequestID(ctx), err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "User fetched successfully.", user)
}

func (h *Handler) setAccessCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     authmw.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
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
