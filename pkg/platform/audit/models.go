package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// route or retain them differently.
type EventCategory string

const (
	// CategoryCompliance covers account lifecycle events.
	CategoryCompliance EventCategory = "compliance"
	// CategorySecurity covers authentication failures and lockouts.
	CategorySecurity EventCategory = "security"
	// CategoryOperations covers routine registry writes.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category    EventCategory `json:"category"`
	Timestamp   time.Time     `json:"timestamp"`
	Action      string        `json:"action"`
	ActorID     int64         `json:"actor_id,omitempty"`
	SubjectType string        `json:"subject_type,omitempty"`
	SubjectID   string        `json:"subject_id,omitempty"`
	Reason      string        `json:"reason,omitempty"`
	RequestID   string        `json:"request_id,omitempty"`
	TraceID     string        `json:"trace_id,omitempty"`
	ClientIP    string        `json:"client_ip,omitempty"`
	UserAgent   string        `json:"user_agent,omitempty"`
}

type AuditEvent string

const (
	// Registry events
	EventStateCreated    AuditEvent = "state_created"
	EventDistrictCreated AuditEvent = "district_created"
	EventAgencyCreated   AuditEvent = "agency_created"

	// Auth events
	EventUserRegistered AuditEvent = "user_registered"
	EventLoginSucceeded AuditEvent = "login_succeeded"
	EventLoginFailed    AuditEvent = "login_failed"
	EventLoginLocked    AuditEvent = "login_locked"

	// Announcement events
	EventAnnouncementCreated AuditEvent = "announcement_created"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventUserRegistered: CategoryCompliance,

	EventLoginFailed: CategorySecurity,
	EventLoginLocked: CategorySecurity,

	EventLoginSucceeded:      CategoryOperations,
	EventStateCreated:        CategoryOperations,
	EventDistrictCreated:     CategoryOperations,
	EventAgencyCreated:       CategoryOperations,
	EventAnnouncementCreated: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists or forwards audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
