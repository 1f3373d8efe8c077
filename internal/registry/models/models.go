// Package models holds the committee hierarchy: state committees own district
// committees, which own agency members. Rows are created once and never updated.
package models

import "time"

// Status values assigned on create.
const (
	StatusActive            = "ACTIVE"
	MembershipStatusPending = "PENDING"
)

// StateCommittee is the root of the registry hierarchy.
type StateCommittee struct {
	ID            int64     `json:"id"`
	StateCode     string    `json:"state_code"`
	StateName     string    `json:"state_name"`
	ContactPerson string    `json:"contact_person"`
	ContactPhone  string    `json:"contact_phone"`
	ContactEmail  string    `json:"contact_email"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// StateWithDistricts is a state together with its district committees.
type StateWithDistricts struct {
	*StateCommittee
	Districts []*DistrictCommittee `json:"districts"`
}

// DistrictCommittee belongs to exactly one state committee.
type DistrictCommittee struct {
	ID            int64     `json:"id"`
	StateID       int64     `json:"state_id"`
	DistrictCode  string    `json:"district_code"`
	DistrictName  string    `json:"district_name"`
	ContactPerson string    `json:"contact_person"`
	ContactPhone  string    `json:"contact_phone"`
	ContactEmail  string    `json:"contact_email"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// AgencyMember is an organization registered under a district committee.
type AgencyMember struct {
	ID               int64     `json:"id"`
	DistrictID       int64     `json:"district_id"`
	AgencyCode       string    `json:"agency_code"`
	LegalName        string    `json:"legal_name"`
	TradeName        string    `json:"trade_name"`
	ContactPerson    string    `json:"contact_person"`
	ContactPhone     string    `json:"contact_phone"`
	ContactEmail     string    `json:"contact_email"`
	AddressLine1     string    `json:"address_line1"`
	AddressLine2     string    `json:"address_line2"`
	City             string    `json:"city"`
	Pincode          string    `json:"pincode"`
	GSTNumber        string    `json:"gst_number"`
	MembershipStatus string    `json:"membership_status"`
	CreatedAt        time.Time `json:"created_at"`
}
