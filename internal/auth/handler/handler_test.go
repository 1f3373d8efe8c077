package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"samiti/internal/auth/handler/mocks"
	"samiti/internal/auth/models"
	jwttoken "samiti/internal/jwt_token"
	dErrors "samiti/pkg/domain-errors"
	authmw "samiti/pkg/platform/middleware/auth"
	"samiti/pkg/requestcontext"
	"samiti/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/auth-mocks.go -package=mocks Service

type AuthHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	jwt     *jwttoken.JWTService
	router  http.Handler
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.jwt = jwttoken.NewJWTService("handler-test-key", "samiti-test")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(s.service, logger, jwttoken.NewJWTServiceAdapter(s.jwt), true).Register(r)
	s.router = r
}

func (s *AuthHandlerSuite) token(userID int64, role models.RoleType) string {
	tok, err := s.jwt.GenerateAccessToken(userID, string(role), time.Hour)
	s.Require().NoError(err)
	return tok
}

func (s *AuthHandlerSuite) TestLogin() {
	s.Run("missing credentials", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login", map[string]string{}))
		s.Equal(http.StatusBadRequest, rr.Code)
		s.Equal("login_id, password are required", testutil.UnmarshalErrorResponse(s.T(), rr).Message)
	})

	s.Run("bad credentials", func() {
		s.service.EXPECT().Login(gomock.Any(), &models.LoginRequest{LoginID: "kl", Password: "wrong"}).
			Return(nil, dErrors.New(dErrors.CodeBadRequest, "Invalid login_id or password."))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login",
			map[string]string{"login_id": "kl", "password": "wrong"}))
		s.Equal(http.StatusBadRequest, rr.Code)
		s.Empty(rr.Result().Cookies())
		s.Equal("Invalid login_id or password.", testutil.UnmarshalErrorResponse(s.T(), rr).Message)
	})

	s.Run("locked out", func() {
		s.service.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeTooManyRequests, "Too many failed login attempts. Try again in 15 minutes."))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login",
			map[string]string{"login_id": "kl", "password": "wrong"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusTooManyRequests, "too_many_requests")
	})

	s.Run("sets an http only cookie", func() {
		stateID := int64(1)
		s.service.EXPECT().Login(gomock.Any(), gomock.Any()).Return(&models.LoginResult{
			AccessToken: "signed.jwt.value",
			RoleType:    models.RoleState,
			User:        &models.UserAccount{ID: 3, LoginID: "kl", PasswordHash: "hash", RoleType: models.RoleState, StateID: &stateID},
		}, nil)
		s.service.EXPECT().TokenTTL().Return(24 * time.Hour)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login",
			map[string]string{"login_id": "kl", "password": "right"}))
		s.Equal(http.StatusOK, rr.Code)

		cookies := rr.Result().Cookies()
		s.Require().Len(cookies, 1)
		c := cookies[0]
		s.Equal(authmw.CookieName, c.Name)
		s.Equal("signed.jwt.value", c.Value)
		s.True(c.HttpOnly)
		s.True(c.Secure)
		s.Equal(http.SameSiteLaxMode, c.SameSite)
		s.Equal(86400, c.MaxAge)

		s.NotContains(rr.Body.String(), "password_hash")
		data := testutil.UnmarshalData[models.LoginResult](s.T(), rr)
		s.Equal("signed.jwt.value", data.AccessToken)
		s.Equal(models.RoleState, data.RoleType)
		s.Equal("kl", data.User.LoginID)
	})
}

func (s *AuthHandlerSuite) TestRegisterRequiresToken() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/register", map[string]string{}))
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Equal("Access token is missing", testutil.UnmarshalErrorResponse(s.T(), rr).Message)
}

func (s *AuthHandlerSuite) TestRegister() {
	body := map[string]any{
		"login_id": "tn", "password": "password1", "mobile_number": "9876543210",
		"role_type": "STATE", "state_id": 2,
	}

	s.Run("forbidden role", func() {
		s.service.EXPECT().Register(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, req *models.RegisterRequest) (*models.UserAccount, error) {
				s.Equal("DISTRICT", requestcontext.RoleType(ctx))
				s.Equal(int64(5), requestcontext.UserID(ctx))
				return nil, dErrors.New(dErrors.CodeForbidden, "You are not allowed to create a user with role_type STATE.")
			})

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/register", body)
		req.Header.Set("Authorization", "Bearer "+s.token(5, models.RoleDistrict))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	})

	s.Run("created via cookie auth", func() {
		s.service.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(&models.UserAccount{ID: 9, LoginID: "tn", RoleType: models.RoleState, Status: models.StatusActive}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/register", body)
		req.AddCookie(&http.Cookie{Name: authmw.CookieName, Value: s.token(1, models.RoleState)})
		rr := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusCreated, rr.Code)
		s.Equal(int64(9), testutil.UnmarshalData[models.UserAccount](s.T(), rr).ID)
	})
}

func (s *AuthHandlerSuite) TestLogoutClearsCookie() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, "/auth/logout"))

	s.Equal(http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.Equal(authmw.CookieName, cookies[0].Name)
	s.Empty(cookies[0].Value)
	s.Negative(cookies[0].MaxAge)
}

func (s *AuthHandlerSuite) TestMe() {
	s.Run("expired token", func() {
		expired, err := s.jwt.GenerateAccessToken(1, "STATE", -time.Minute)
		s.Require().NoError(err)
		req := testutil.NewRequest(s.T(), http.MethodGet, "/auth/me")
		req.Header.Set("Authorization", "Bearer "+expired)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("current user", func() {
		s.service.EXPECT().Me(gomock.Any()).Return(&models.UserAccount{ID: 4, LoginID: "kl"}, nil)

		req := testutil.NewRequest(s.T(), http.MethodGet, "/auth/me")
		req.Header.Set("Authorization", "Bearer "+s.token(4, models.RoleState))
		rr := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusOK, rr.Code)
		s.Equal("kl", testutil.UnmarshalData[models.UserAccount](s.T(), rr).LoginID)
	})
}
