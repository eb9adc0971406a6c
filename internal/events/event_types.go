package events

import (
	"time"

	"github.com/spec-kit/campaign-calendar/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCampaignCreated     EventType = "campaign_created"
	EventCampaignDeleted     EventType = "campaign_deleted"
	EventCampaignsCleared    EventType = "campaigns_cleared"
	EventAssignmentDelivered EventType = "assignment_delivered"
	EventAssignmentFallback  EventType = "assignment_fallback"
)

// Actor identifies who triggered an event by claimed address and resolved role.
type Actor struct {
	Address string      `json:"address"`
	Role    domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	EventID   string    `json:"event_id,omitempty"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// CampaignCreatedPayload payload.
type CampaignCreatedPayload struct {
	Title        string         `json:"title"`
	Urgency      domain.Urgency `json:"urgency"`
	AssigneeID   *string        `json:"assignee_id,omitempty"`
	DepartmentID *string        `json:"department_id,omitempty"`
}

// CampaignsClearedPayload payload.
type CampaignsClearedPayload struct {
	Count int64 `json:"count"`
}

// AssignmentPayload describes the outcome of one assignment notification.
type AssignmentPayload struct {
	AssigneeID        string `json:"assignee_id"`
	Recipient         string `json:"recipient"`
	DeliveryError     string `json:"delivery_error,omitempty"`
	BookkeepingFailed bool   `json:"bookkeeping_failed"`
}
