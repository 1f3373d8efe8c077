// Package models holds announcements published by authenticated users.
package models

import (
	"strings"
	"time"

	"samiti/pkg/platform/validation"
)

// Audience values. ALL is assigned when a request omits it.
const (
	AudienceAll      = "ALL"
	AudienceState    = "STATE"
	AudienceDistrict = "DISTRICT"
	AudienceAgency   = "AGENCY"
)

// Announcement is an immutable notice addressed to one role or to everyone.
type Announcement struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Audience  string    `json:"audience"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAnnouncementRequest is the body of POST /announcement/create.
type CreateAnnouncementRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required"`
	Audience string `json:"audience" validate:"oneof=ALL STATE DISTRICT AGENCY"`
}

func (r *CreateAnnouncementRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
	r.Audience = strings.ToUpper(strings.TrimSpace(r.Audience))
	if r.Audience == "" {
		r.Audience = AudienceAll
	}
}

func (r *CreateAnnouncementRequest) Validate() error {
	return validation.Struct(r)
}
