package e2e

import (
	"github.com/cucumber/godog"

	"samiti/e2e/steps/auth"
	"samiti/e2e/steps/common"
	"samiti/e2e/steps/registry"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic requests and envelope assertions
	common.RegisterSteps(ctx, tc)

	// Login, registration and lockout
	auth.RegisterSteps(ctx, tc)

	// State, district and agency committees, plus announcements
	registry.RegisterSteps(ctx, tc)
}
