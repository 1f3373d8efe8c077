package models

import (
	"encoding/json"
	"strings"

	"samiti/pkg/platform/jsonnum"
	"samiti/pkg/platform/validation"
)

// CreateStateRequest is the body of POST /state/create.
type CreateStateRequest struct {
	StateCode     string `json:"state_code" validate:"required,max=50"`
	StateName     string `json:"state_name" validate:"required,max=255"`
	ContactPerson string `json:"contact_person" validate:"max=255"`
	ContactPhone  string `json:"contact_phone" validate:"max=20"`
	ContactEmail  string `json:"contact_email" validate:"omitempty,email"`
}

func (r *CreateStateRequest) Normalize() {
	r.StateCode = strings.TrimSpace(r.StateCode)
	r.StateName = strings.TrimSpace(r.StateName)
	r.ContactPerson = strings.TrimSpace(r.ContactPerson)
	r.ContactPhone = strings.TrimSpace(r.ContactPhone)
	r.ContactEmail = strings.TrimSpace(r.ContactEmail)
}

func (r *CreateStateRequest) Validate() error {
	return validation.Struct(r)
}

// CreateDistrictRequest is the body of POST /district/create.
type CreateDistrictRequest struct {
	StateID       int64  `json:"state_id" validate:"required,gt=0"`
	DistrictCode  string `json:"district_code" validate:"required,max=50"`
	DistrictName  string `json:"district_name" validate:"required,max=255"`
	ContactPerson string `json:"contact_person" validate:"max=255"`
	ContactPhone  string `json:"contact_phone" validate:"max=20"`
	ContactEmail  string `json:"contact_email" validate:"omitempty,email"`
}

// UnmarshalJSON accepts state_id as a number or a numeric string.
func (r *CreateDistrictRequest) UnmarshalJSON(b []byte) error {
	type plain CreateDistrictRequest
	aux := struct {
		*plain
		StateID jsonnum.Int64 `json:"state_id"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.StateID = aux.StateID.Value
	return nil
}

func (r *CreateDistrictRequest) Normalize() {
	r.DistrictCode = strings.TrimSpace(r.DistrictCode)
	r.DistrictName = strings.TrimSpace(r.DistrictName)
	r.ContactPerson = strings.TrimSpace(r.ContactPerson)
	r.ContactPhone = strings.TrimSpace(r.ContactPhone)
	r.ContactEmail = strings.TrimSpace(r.ContactEmail)
}

func (r *CreateDistrictRequest) Validate() error {
	return validation.Struct(r)
}

// CreateAgencyRequest is the body of POST /agency/create.
type CreateAgencyRequest struct {
	DistrictID    int64  `json:"district_id" validate:"required,gt=0"`
	AgencyCode    string `json:"agency_code" validate:"required,max=50"`
	LegalName     string `json:"legal_name" validate:"required,max=255"`
	TradeName     string `json:"trade_name" validate:"max=255"`
	ContactPerson string `json:"contact_person" validate:"required,max=255"`
	ContactPhone  string `json:"contact_phone" validate:"required,max=20"`
	ContactEmail  string `json:"contact_email" validate:"omitempty,email"`
	AddressLine1  string `json:"address_line1" validate:"max=255"`
	AddressLine2  string `json:"address_line2" validate:"max=255"`
	City          string `json:"city" validate:"max=100"`
	Pincode       string `json:"pincode" validate:"omitempty,numeric,max=10"`
	GSTNumber     string `json:"gst_number" validate:"max=20"`
}

// UnmarshalJSON accepts district_id as a number or a numeric string.
func (r *CreateAgencyRequest) UnmarshalJSON(b []byte) error {
	type plain CreateAgencyRequest
	aux := struct {
		*plain
		DistrictID jsonnum.Int64 `json:"district_id"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.DistrictID = aux.DistrictID.Value
	return nil
}

func (r *CreateAgencyRequest) Normalize() {
	r.AgencyCode = strings.TrimSpace(r.AgencyCode)
	r.LegalName = strings.TrimSpace(r.LegalName)
	r.TradeName = strings.TrimSpace(r.TradeName)
	r.ContactPerson = strings.TrimSpace(r.ContactPerson)
	r.ContactPhone = strings.TrimSpace(r.ContactPhone)
	r.ContactEmail = strings.TrimSpace(r.ContactEmail)
	r.AddressLine1 = strings.TrimSpace(r.AddressLine1)
	r.AddressLine2 = strings.TrimSpace(r.AddressLine2)
	r.City = strings.TrimSpace(r.City)
	r.Pincode = strings.TrimSpace(r.Pincode)
	r.GSTNumber = strings.ToUpper(strings.TrimSpace(r.GSTNumber))
}

func (r *CreateAgencyRequest) Validate() error {
	return validation.Struct(r)
}
