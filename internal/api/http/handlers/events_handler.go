package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campaign-calendar/internal/api/dto"
	"github.com/spec-kit/campaign-calendar/internal/domain"
	"github.com/spec-kit/campaign-calendar/internal/service"
	apperrors "github.com/spec-kit/campaign-calendar/pkg/util"
)

// EventsHandler serves the calendar.
type EventsHandler struct {
	service *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{service: eventService}
}

// ListEvents GET /events.
func (h *EventsHandler) ListEvents(c *fiber.Ctx) error {
	query, err := parseEventQuery(c)
	if err != nil {
		return err
	}
	entries, err := h.service.ListCalendar(c.UserContext(), callerFrom(c), query)
	if err != nil {
		return err
	}
	items := make([]dto.CalendarEventResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewCalendarEventResponse(entry))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetEvent GET /events/:id.
func (h *EventsHandler) GetEvent(c *fiber.Ctx) error {
	event, err := h.service.GetVisible(c.UserContext(), callerFrom(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(*event)})
}

// CreateEvent POST /events.
func (h *EventsHandler) CreateEvent(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"date": "must match " + dto.DateLayout})
	}

	result, err := h.service.CreateEvent(c.UserContext(), callerFrom(c), service.EventCreateInput{
		Title:        req.Title,
		Date:         date,
		Urgency:      domain.Urgency(req.Urgency),
		Description:  req.Description,
		AssigneeID:   req.AssigneeID,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CreateEventResponse{
		Event:      dto.NewEventResponse(result.Event),
		Assignment: result.Assignment,
		Signals:    result.Signals,
	}})
}

// DeleteEvent DELETE /events/:id.
func (h *EventsHandler) DeleteEvent(c *fiber.Ctx) error {
	if err := h.service.DeleteEvent(c.UserContext(), callerFrom(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// DeleteAllEvents DELETE /events.
func (h *EventsHandler) DeleteAllEvents(c *fiber.Ctx) error {
	n, err := h.service.DeleteAllEvents(c.UserContext(), callerFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": n}})
}

func parseEventQuery(c *fiber.Ctx) (service.EventQuery, error) {
	q := service.EventQuery{
		Text:       c.Query("search"),
		AssigneeID: strings.TrimSpace(c.Query("assignee_id")),
	}
	if raw := strings.TrimSpace(c.Query("urgency")); raw != "" {
		urgency := domain.Urgency(raw)
		if !urgency.Valid() {
			return q, apperrors.NewValidationError("invalid urgency filter", map[string]any{"urgency": raw})
		}
		q.Urgency = urgency
	}
	return q, nil
}
