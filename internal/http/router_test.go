package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	announcementhandler "samiti/internal/announcement/handler"
	announcementservice "samiti/internal/announcement/service"
	announcementstore "samiti/internal/announcement/store"
	authhandler "samiti/internal/auth/handler"
	authmodels "samiti/internal/auth/models"
	"samiti/internal/auth/password"
	authservice "samiti/internal/auth/service"
	"samiti/internal/auth/store/user"
	jwttoken "samiti/internal/jwt_token"
	registryhandler "samiti/internal/registry/handler"
	registrymodels "samiti/internal/registry/models"
	registryservice "samiti/internal/registry/service"
	"samiti/internal/registry/store/agency"
	"samiti/internal/registry/store/district"
	"samiti/internal/registry/store/state"
	request "samiti/pkg/platform/middleware/request"
	"samiti/pkg/testutil"
)

type RouterSuite struct {
	suite.Suite
	router  http.Handler
	healthy error
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.healthy = nil
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	registry := registryservice.New(state.NewInMemory(), district.NewInMemory(), agency.NewInMemory())
	kl, err := registry.CreateState(ctx, &registrymodels.CreateStateRequest{StateCode: "KL", StateName: "Kerala"})
	s.Require().NoError(err)

	users := user.New()
	hash, err := password.Hash("bootstrap-pass")
	s.Require().NoError(err)
	s.Require().NoError(users.Create(ctx, &authmodels.UserAccount{
		LoginID: "kl-admin", PasswordHash: hash, MobileNumber: "9000000001",
		RoleType: authmodels.RoleState, StateID: &kl.ID, Status: authmodels.StatusActive,
	}))

	jwt := jwttoken.NewJWTService("router-test-key", "samiti-test")
	validator := jwttoken.NewJWTServiceAdapter(jwt)

	s.router = NewRouter(Deps{
		Logger:     logger,
		AdminToken: "ops-token",
		Health: []HealthCheck{{Name: "database", Check: func(context.Context) error {
			return s.healthy
		}}},
		Modules: []RouteRegistrar{
			registryhandler.New(registry, logger),
			authhandler.New(authservice.New(users, jwt, registry), logger, validator, false),
			announcementhandler.New(announcementservice.New(announcementstore.NewInMemory()), logger, validator),
		},
	})
}

func (s *RouterSuite) TestHealth() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/health"))
	s.Equal(http.StatusOK, rr.Code)
	s.JSONEq(`{"status":"ok"}`, rr.Body.String())
	s.NotEmpty(rr.Header().Get(request.RequestIDHeader))

	s.healthy = errors.New("connection refused")
	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/health"))
	s.Equal(http.StatusServiceUnavailable, rr.Code)
}

func (s *RouterSuite) TestMetricsRequiresAdminToken() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/metrics"))
	s.Equal(http.StatusUnauthorized, rr.Code)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/metrics")
	req.Header.Set("X-Admin-Token", "ops-token")
	rr = testutil.DoRequest(s.router, req)
	s.Equal(http.StatusOK, rr.Code)
}

func (s *RouterSuite) TestUnknownRoute() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/nope"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *RouterSuite) TestDuplicateStateCode() {
	body := map[string]string{"state_code": "TN", "state_name": "Tamil Nadu"}
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/state/create", body))
	s.Equal(http.StatusCreated, rr.Code)

	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/state/create", body))
	s.Equal(http.StatusConflict, rr.Code)

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/state/getAll"))
	s.Len(testutil.UnmarshalData[[]registrymodels.StateCommittee](s.T(), rr), 2)
}

func (s *RouterSuite) TestDistrictWithUnknownState() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/district/create", map[string]any{
		"state_id": 999, "district_code": "X", "district_name": "Nowhere",
	}))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *RouterSuite) TestEmptyLists() {
	for _, path := range []string{"/agency/getAll", "/district/getAll", "/announcement/getAll"} {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, path))
		s.Equal(http.StatusOK, rr.Code, path)
		s.Contains(rr.Body.String(), `"data":[]`, path)
	}
}

func (s *RouterSuite) TestLoginThenRegisterWithCookie() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login",
		map[string]string{"login_id": "kl-admin", "password": "bootstrap-pass"}))
	s.Require().Equal(http.StatusOK, rr.Code)

	access := testutil.AccessCookie(s.T(), rr)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/register", map[string]any{
		"login_id": "kl-deputy", "password": "password1", "mobile_number": "9000000002",
		"role_type": "STATE", "state_id": 1,
	})
	req.AddCookie(access)
	rr = testutil.DoRequest(s.router, req)
	s.Equal(http.StatusCreated, rr.Code)

	req = testutil.NewJSONRequest(s.T(), http.MethodPost, "/announcement/create", map[string]string{
		"title": "Welcome", "content": "First notice",
	})
	req.AddCookie(access)
	rr = testutil.DoRequest(s.router, req)
	s.Equal(http.StatusCreated, rr.Code)
}

func (s *RouterSuite) TestWrongPasswordDoesNotRevealField() {
	wrongPass := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login",
		map[string]string{"login_id": "kl-admin", "password": "nope"}))
	unknown := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login",
		map[string]string{"login_id": "ghost", "password": "nope"}))

	s.Equal(http.StatusBadRequest, wrongPass.Code)
	s.Equal(wrongPass.Body.String(), unknown.Body.String())
}
