package dto

import (
	"time"

	"github.com/spec-kit/campaign-calendar/internal/domain"
	"github.com/spec-kit/campaign-calendar/internal/service"
)

// DateLayout is the wire format of campaign dates.
const DateLayout = "2006-01-02"

// CreateEventRequest payload for POST /events.
type CreateEventRequest struct {
	Title        string  `json:"title" validate:"required,max=200"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	Urgency      string  `json:"urgency" validate:"required,oneof='Very High' High Medium Low"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=4000"`
	AssigneeID   *string `json:"assignee_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
}

// EventResponse is the wire form of an event.
type EventResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Date         string    `json:"date"`
	Urgency      string    `json:"urgency"`
	UrgencyLabel string    `json:"urgency_label"`
	Description  *string   `json:"description,omitempty"`
	AssigneeID   *string   `json:"assignee_id,omitempty"`
	DepartmentID *string   `json:"department_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CalendarEventResponse adds resolved directory names.
type CalendarEventResponse struct {
	EventResponse
	AssigneeName   string `json:"assignee_name"`
	AssigneeAvatar string `json:"assignee_avatar,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
}

// CreateEventResponse reports the created event and the assignment outcome.
type CreateEventResponse struct {
	Event      EventResponse            `json:"event"`
	Assignment *service.DeliveryOutcome `json:"assignment,omitempty"`
	Signals    []service.Signal         `json:"signals"`
}

// NewEventResponse maps a domain event.
func NewEventResponse(e domain.Event) EventResponse {
	return EventResponse{
		ID:           e.ID,
		Title:        e.Title,
		Date:         domain.CalendarDate(e.Date).Format(DateLayout),
		Urgency:      string(e.Urgency),
		UrgencyLabel: e.Urgency.Label(),
		Description:  e.Description,
		AssigneeID:   e.AssigneeID,
		DepartmentID: e.DepartmentID,
		CreatedAt:    e.CreatedAt,
	}
}

// NewCalendarEventResponse maps a calendar entry.
func NewCalendarEventResponse(entry service.CalendarEntry) CalendarEventResponse {
	return CalendarEventResponse{
		EventResponse:  NewEventResponse(entry.Event),
		AssigneeName:   entry.AssigneeName,
		AssigneeAvatar: entry.AssigneeAvatar,
		DepartmentName: entry.DepartmentName,
	}
}
