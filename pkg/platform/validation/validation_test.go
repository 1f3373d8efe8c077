package validation

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "samiti/pkg/domain-errors"
)

type sample struct {
	Code  string `json:"state_code" validate:"required,max=10"`
	Name  string `json:"state_name" validate:"required"`
	Email string `json:"contact_email" validate:"omitempty,email"`
	Level string `json:"level" validate:"omitempty,oneof=LOW HIGH"`
}

type ValidationSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationSuite))
}

func (s *ValidationSuite) TestStruct() {
	s.Run("valid struct passes", func() {
		s.NoError(Struct(&sample{Code: "KL", Name: "Kerala"}))
	})

	s.Run("missing fields are listed together", func() {
		err := Struct(&sample{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal("state_code, state_name are required", err.Error())
	})

	s.Run("single missing field uses singular form", func() {
		err := Struct(&sample{Code: "KL"})
		s.Require().Error(err)
		s.Equal("state_name is required", err.Error())
	})

	s.Run("rule failures are described", func() {
		err := Struct(&sample{Code: "KERALA-STATE", Name: "Kerala", Email: "nope", Level: "MID"})
		s.Require().Error(err)
		s.Contains(err.Error(), "state_code must not exceed 10 characters")
		s.Contains(err.Error(), "contact_email must be a valid email address")
		s.Contains(err.Error(), "level must be one of: LOW HIGH")
	})
}
