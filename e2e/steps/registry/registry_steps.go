package registry

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	Save(name, value string)
	Expand(s string) string
}

// RegisterSteps registers committee and announcement steps. Codes sent to the
// API get the run suffix so reruns against one database do not collide, and
// created ids are saved under the bare code: "{KL}" later expands to the state id.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &registrySteps{tc: tc}

	ctx.Step(`^a state "([^"]*)" named "([^"]*)" exists$`, steps.stateExists)
	ctx.Step(`^a district "([^"]*)" named "([^"]*)" exists in state "([^"]*)"$`, steps.districtExists)
	ctx.Step(`^an agency "([^"]*)" exists in district "([^"]*)"$`, steps.agencyExists)
	ctx.Step(`^I post an announcement "([^"]*)" for audience "([^"]*)"$`, steps.postAnnouncement)
}

type registrySteps struct {
	tc TestContext
}

func (s *registrySteps) stateExists(_ context.Context, code, name string) error {
	return s.create("/state/create", code, map[string]any{
		"state_code": s.code(code),
		"state_name": name,
	})
}

func (s *registrySteps) districtExists(_ context.Context, code, name, state string) error {
	stateID, err := s.id(state)
	if err != nil {
		return err
	}
	return s.create("/district/create", code, map[string]any{
		"state_id":      stateID,
		"district_code": s.code(code),
		"district_name": name,
	})
}

func (s *registrySteps) agencyExists(_ context.Context, code, district string) error {
	districtID, err := s.id(district)
	if err != nil {
		return err
	}
	return s.create("/agency/create", code, map[string]any{
		"district_id":    districtID,
		"agency_code":    s.code(code),
		"legal_name":     "Agency " + s.code(code),
		"contact_person": "E2E Runner",
		"contact_phone":  "9999999999",
	})
}

func (s *registrySteps) postAnnouncement(_ context.Context, title, audience string) error {
	return s.tc.POST("/announcement/create", map[string]any{
		"title":    title,
		"content":  "Posted by the e2e suite.",
		"audience": audience,
	})
}

func (s *registrySteps) create(path, code string, body map[string]any) error {
	if err := s.tc.POST(path, body); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 201 {
		return fmt.Errorf("POST %s: expected 201, got %d: %s", path, status, s.tc.GetLastResponseBody())
	}
	id, err := s.tc.GetResponseField("data.id")
	if err != nil {
		return err
	}
	s.tc.Save(code, fmt.Sprintf("%.0f", id))
	return nil
}

func (s *registrySteps) code(alias string) string {
	return s.tc.Expand(alias + "-{run}")
}

func (s *registrySteps) id(code string) (int64, error) {
	raw := s.tc.Expand("{" + code + "}")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("no saved id for %q", code)
	}
	return id, nil
}
