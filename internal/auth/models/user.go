// Package models holds user accounts and the role rules for who may register whom.
package models

import (
	"encoding/json"
	"strings"
	"time"

	"samiti/pkg/platform/jsonnum"
	"samiti/pkg/platform/validation"
)

// RoleType is the permission level of a user account.
type RoleType string

const (
	RoleState    RoleType = "STATE"
	RoleDistrict RoleType = "DISTRICT"
	RoleAgency   RoleType = "AGENCY"
)

// StatusActive is assigned to every new account.
const StatusActive = "ACTIVE"

// registrable lists the roles each caller role may create.
var registrable = map[RoleType][]RoleType{
	RoleState:    {RoleState, RoleDistrict, RoleAgency},
	RoleDistrict: {RoleDistrict, RoleAgency},
	RoleAgency:   {RoleAgency},
}

func (r RoleType) IsValid() bool {
	_, ok := registrable[r]
	return ok
}

// CanRegister reports whether a caller holding r may create an account with target.
func (r RoleType) CanRegister(target RoleType) bool {
	for _, allowed := range registrable[r] {
		if allowed == target {
			return true
		}
	}
	return false
}

// UserAccount is a login identity scoped to exactly one committee or agency.
type UserAccount struct {
	ID           int64     `json:"id"`
	LoginID      string    `json:"login_id"`
	PasswordHash string    `json:"-"`
	MobileNumber string    `json:"mobile_number"`
	RoleType     RoleType  `json:"role_type"`
	StateID      *int64    `json:"state_id"`
	DistrictID   *int64    `json:"district_id"`
	AgencyID     *int64    `json:"agency_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// ScopeID returns the committee or agency id matching the account's role.
func (u *UserAccount) ScopeID() *int64 {
	switch u.RoleType {
	case RoleState:
		return u.StateID
	case RoleDistrict:
		return u.DistrictID
	case RoleAgency:
		return u.AgencyID
	}
	return nil
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	LoginID  string `json:"login_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.LoginID = strings.TrimSpace(r.LoginID)
}

func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

// RegisterRequest is the body of POST /auth/register. Only the scope id matching
// RoleType is kept; the others are ignored.
type RegisterRequest struct {
	LoginID      string   `json:"login_id" validate:"required,max=100"`
	Password     string   `json:"password" validate:"required,max=72"`
	MobileNumber string   `json:"mobile_number" validate:"required"`
	RoleType     RoleType `json:"role_type" validate:"required"`
	StateID      *int64   `json:"state_id"`
	DistrictID   *int64   `json:"district_id"`
	AgencyID     *int64   `json:"agency_id"`
}

// UnmarshalJSON accepts the scope ids as numbers or numeric strings.
func (r *RegisterRequest) UnmarshalJSON(b []byte) error {
	type plain RegisterRequest
	aux := struct {
		*plain
		StateID    jsonnum.Int64 `json:"state_id"`
		DistrictID jsonnum.Int64 `json:"district_id"`
		AgencyID   jsonnum.Int64 `json:"agency_id"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.StateID = aux.StateID.Ptr()
	r.DistrictID = aux.DistrictID.Ptr()
	r.AgencyID = aux.AgencyID.Ptr()
	return nil
}

func (r *RegisterRequest) Normalize() {
	r.LoginID = strings.TrimSpace(r.LoginID)
	r.MobileNumber = strings.TrimSpace(r.MobileNumber)
	r.RoleType = RoleType(strings.ToUpper(strings.TrimSpace(string(r.RoleType))))
}

func (r *RegisterRequest) Validate() error {
	return validation.Struct(r)
}

// ScopeID returns the requested scope id for the requested role.
func (r *RegisterRequest) ScopeID() *int64 {
	switch r.RoleType {
	case RoleState:
		return r.StateID
	case RoleDistrict:
		return r.DistrictID
	case RoleAgency:
		return r.AgencyID
	}
	return nil
}

// LoginResult is returned to the caller after a successful login.
type LoginResult struct {
	AccessToken string       `json:"access_token"`
	RoleType    RoleType     `json:"role_type"`
	User        *UserAccount `json:"user"`
}
