// Package httpapi assembles the public router: shared middleware, operational
// endpoints and every module's routes.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"samiti/internal/platform/metrics"
	dErrors "samiti/pkg/domain-errors"
	"samiti/pkg/platform/httputil"
	"samiti/pkg/platform/middleware/admin"
	"samiti/pkg/platform/middleware/metadata"
	request "samiti/pkg/platform/middleware/request"
	"samiti/pkg/platform/middleware/requesttime"
)

// RouteRegistrar is implemented by every module handler.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// Deps carries what the router needs from main.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	AdminToken     string
	RequestTimeout time.Duration
	Health         []HealthCheck
	Modules        []RouteRegistrar
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(deps.Logger))
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(deps.Logger))
	r.Use(deps.Metrics.Middleware)
	if deps.RequestTimeout > 0 {
		r.Use(chimw.Timeout(deps.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "Route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorEnvelope{
			Error:   "method_not_allowed",
			Message: "Method not allowed",
		})
	})

	r.Get("/health", healthHandler(deps.Health, deps.Logger))
	r.With(admin.RequireAdminToken(deps.AdminToken, deps.Logger)).Handle("/metrics", promhttp.Handler())

	for _, m := range deps.Modules {
		m.Register(r)
	}
	return r
}
