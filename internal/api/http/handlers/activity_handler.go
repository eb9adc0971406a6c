package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campaign-calendar/internal/api/dto"
	"github.com/spec-kit/campaign-calendar/internal/service"
)

// ActivityHandler serves notifications and the activity log.
type ActivityHandler struct {
	service *service.ActivityService
}

// NewActivityHandler constructs handler.
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: activityService}
}

// ListNotifications GET /notifications.
func (h *ActivityHandler) ListNotifications(c *fiber.Ctx) error {
	list, err := h.service.ListNotifications(c.UserContext(), callerFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NotificationListResponse{Items: list.Items, Unread: list.Unread}})
}

// MarkNotificationsRead POST /notifications/read.
func (h *ActivityHandler) MarkNotificationsRead(c *fiber.Ctx) error {
	if err := h.service.MarkNotificationsRead(c.UserContext(), callerFrom(c)); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ClearNotifications DELETE /notifications.
func (h *ActivityHandler) ClearNotifications(c *fiber.Ctx) error {
	if err := h.service.ClearNotifications(c.UserContext(), callerFrom(c)); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListActivityLog GET /activity-log.
func (h *ActivityHandler) ListActivityLog(c *fiber.Ctx) error {
	entries, err := h.service.ListAuditLog(c.UserContext(), callerFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": entries})
}

// ClearActivityLog DELETE /activity-log.
func (h *ActivityHandler) ClearActivityLog(c *fiber.Ctx) error {
	if err := h.service.ClearAuditLog(c.UserContext(), callerFrom(c)); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
