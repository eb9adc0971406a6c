package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campaign-calendar/internal/api/dto"
	"github.com/spec-kit/campaign-calendar/internal/service"
	apperrors "github.com/spec-kit/campaign-calendar/pkg/util"
)

// AccessHandler describes the caller.
type AccessHandler struct {
	directory *service.DirectoryService
}

// NewAccessHandler constructs handler.
func NewAccessHandler(directory *service.DirectoryService) *AccessHandler {
	return &AccessHandler{directory: directory}
}

// Me GET /access/me.
func (h *AccessHandler) Me(c *fiber.Ctx) error {
	view, err := h.directory.DescribeCaller(c.UserContext(), callerFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CallerResponse{
		Address:        view.Address,
		Role:           string(view.Role),
		DepartmentID:   view.DepartmentID,
		DepartmentName: view.DepartmentName,
	}})
}

// Holidays GET /holidays?year=YYYY. Defaults to the current year.
func Holidays(c *fiber.Ctx) error {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return apperrors.NewValidationError("invalid year", map[string]any{"year": raw})
		}
		year = parsed
	}
	return c.JSON(fiber.Map{"data": service.HolidaysForYear(year)})
}
