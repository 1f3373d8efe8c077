package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	ClearCookies()
	Expand(s string) string
}

// RegisterSteps registers authentication-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, steps.login)
	ctx.Step(`^I log in as the bootstrap user$`, steps.loginBootstrap)
	ctx.Step(`^I log out$`, steps.logout)
	ctx.Step(`^I forget my session$`, steps.forgetSession)
	ctx.Step(`^I request my profile$`, steps.requestProfile)
	ctx.Step(`^I register a "([^"]*)" user "([^"]*)" with password "([^"]*)" mobile "([^"]*)" and scope "([^"]*)"$`, steps.register)

	ctx.Step(`^I fail to log in as "([^"]*)" (\d+) times$`, steps.failLoginNTimes)
	ctx.Step(`^the response should indicate lockout$`, steps.shouldIndicateLockout)
	ctx.Step(`^I remember the response body$`, steps.rememberBody)
	ctx.Step(`^the response body should match the remembered one$`, steps.bodyShouldMatchRemembered)
}

type authSteps struct {
	tc         TestContext
	remembered string
}

func (s *authSteps) login(_ context.Context, loginID, password string) error {
	return s.tc.POST("/auth/login", map[string]any{
		"login_id": s.tc.Expand(loginID),
		"password": s.tc.Expand(password),
	})
}

func (s *authSteps) loginBootstrap(ctx context.Context) error {
	if err := s.login(ctx, "{bootstrap_login}", "{bootstrap_password}"); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("bootstrap login failed with %d: %s", status, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *authSteps) logout(_ context.Context) error {
	return s.tc.POST("/auth/logout", map[string]any{})
}

func (s *authSteps) forgetSession(_ context.Context) error {
	s.tc.ClearCookies()
	return nil
}

func (s *authSteps) requestProfile(_ context.Context) error {
	return s.tc.GET("/auth/me", nil)
}

func (s *authSteps) register(_ context.Context, role, loginID, password, mobile, scope string) error {
	body := map[string]any{
		"login_id":      s.tc.Expand(loginID),
		"password":      s.tc.Expand(password),
		"mobile_number": s.tc.Expand(mobile),
		"role_type":     role,
	}
	if scope != "" {
		id, err := strconv.ParseInt(s.tc.Expand(scope), 10, 64)
		if err != nil {
			return fmt.Errorf("scope %q is not an id: %w", scope, err)
		}
		switch strings.ToUpper(role) {
		case "STATE":
			body["state_id"] = id
		case "DISTRICT":
			body["district_id"] = id
		case "AGENCY":
			body["agency_id"] = id
		}
	}
	return s.tc.POST("/auth/register", body)
}

func (s *authSteps) failLoginNTimes(ctx context.Context, loginID string, n int) error {
	for i := 0; i < n; i++ {
		if err := s.login(ctx, loginID, "definitely-wrong-password"); err != nil {
			return err
		}
		if status := s.tc.GetLastResponseStatus(); status != 400 {
			return fmt.Errorf("attempt %d: expected 400, got %d", i+1, status)
		}
	}
	return nil
}

func (s *authSteps) shouldIndicateLockout(_ context.Context) error {
	if status := s.tc.GetLastResponseStatus(); status != 429 {
		return fmt.Errorf("expected 429, got %d: %s", status, s.tc.GetLastResponseBody())
	}
	msg, err := s.tc.GetResponseField("message")
	if err != nil {
		return err
	}
	if !strings.Contains(fmt.Sprint(msg), "Too many failed login attempts") {
		return fmt.Errorf("unexpected lockout message %q", msg)
	}
	return nil
}

func (s *authSteps) rememberBody(_ context.Context) error {
	s.remembered = string(s.tc.GetLastResponseBody())
	return nil
}

func (s *authSteps) bodyShouldMatchRemembered(_ context.Context) error {
	if got := string(s.tc.GetLastResponseBody()); got != s.remembered {
		return fmt.Errorf("responses differ:\n%s\n%s", s.remembered, got)
	}
	return nil
}
