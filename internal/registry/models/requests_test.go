package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "samiti/pkg/domain-errors"
)

func TestCreateStateRequestValidate(t *testing.T) {
	t.Run("both required fields missing", func(t *testing.T) {
		err := (&CreateStateRequest{}).Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "state_code, state_name are required", err.Error())
	})

	t.Run("whitespace only counts as missing after normalize", func(t *testing.T) {
		req := &CreateStateRequest{StateCode: "  ", StateName: "Kerala"}
		req.Normalize()
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, "state_code is required", err.Error())
	})

	t.Run("bad email", func(t *testing.T) {
		req := &CreateStateRequest{StateCode: "KL", StateName: "Kerala", ContactEmail: "nope"}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "contact_email must be a valid email address")
	})

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, (&CreateStateRequest{StateCode: "KL", StateName: "Kerala"}).Validate())
	})
}

func TestCreateDistrictRequestValidate(t *testing.T) {
	err := (&CreateDistrictRequest{DistrictName: "Ernakulam"}).Validate()
	require.Error(t, err)
	assert.Equal(t, "state_id, district_code are required", err.Error())

	err = (&CreateDistrictRequest{StateID: -1, DistrictCode: "EKM", DistrictName: "Ernakulam"}).Validate()
	require.Error(t, err)
	assert.Equal(t, "state_id must be greater than 0", err.Error())
}

func TestCreateAgencyRequest(t *testing.T) {
	err := (&CreateAgencyRequest{DistrictID: 1, AgencyCode: "AG1"}).Validate()
	require.Error(t, err)
	assert.Equal(t, "legal_name, contact_person, contact_phone are required", err.Error())

	req := &CreateAgencyRequest{
		DistrictID: 1, AgencyCode: " AG1 ", LegalName: "Acme", ContactPerson: "Anil",
		ContactPhone: "98765", GSTNumber: " 32abcde1234f1z5 ",
	}
	req.Normalize()
	require.NoError(t, req.Validate())
	assert.Equal(t, "AG1", req.AgencyCode)
	assert.Equal(t, "32ABCDE1234F1Z5", req.GSTNumber)
}

func TestParentIDsAcceptNumericStrings(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int64
	}{
		{"number", `{"state_id": 3, "district_code": "EKM", "district_name": "Ernakulam"}`, 3},
		{"string", `{"state_id": "3", "district_code": "EKM", "district_name": "Ernakulam"}`, 3},
		{"empty string", `{"state_id": "", "district_code": "EKM", "district_name": "Ernakulam"}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateDistrictRequest
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &req))
			assert.Equal(t, tt.want, req.StateID)
			assert.Equal(t, "EKM", req.DistrictCode)
			assert.Equal(t, "Ernakulam", req.DistrictName)
		})
	}

	var agency CreateAgencyRequest
	require.NoError(t, json.Unmarshal([]byte(`{"district_id": "9", "agency_code": "AG1"}`), &agency))
	assert.Equal(t, int64(9), agency.DistrictID)
	assert.Equal(t, "AG1", agency.AgencyCode)

	assert.Error(t, json.Unmarshal([]byte(`{"state_id": "KL"}`), &CreateDistrictRequest{}))
}
