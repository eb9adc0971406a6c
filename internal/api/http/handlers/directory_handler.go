package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campaign-calendar/internal/api/dto"
	"github.com/spec-kit/campaign-calendar/internal/domain"
	"github.com/spec-kit/campaign-calendar/internal/service"
	apperrors "github.com/spec-kit/campaign-calendar/pkg/util"
)

// DirectoryHandler serves users, departments and the address table.
type DirectoryHandler struct {
	service *service.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directoryService *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: directoryService}
}

// ListUsers GET /directory/users.
func (h *DirectoryHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.NewUserResponse(u))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateUser POST /directory/users.
func (h *DirectoryHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	user, err := h.service.CreateUser(c.UserContext(), callerFrom(c), service.UserCreateInput{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(*user)})
}

// DeleteUser DELETE /directory/users/:id.
func (h *DirectoryHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.service.DeleteUser(c.UserContext(), callerFrom(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListDepartments GET /directory/departments.
func (h *DirectoryHandler) ListDepartments(c *fiber.Ctx) error {
	depts, err := h.service.ListDepartments(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		items = append(items, dto.NewDepartmentResponse(d))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateDepartment POST /directory/departments.
func (h *DirectoryHandler) CreateDepartment(c *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	dept, err := h.service.CreateDepartment(c.UserContext(), callerFrom(c), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewDepartmentResponse(*dept)})
}

// DeleteDepartment DELETE /directory/departments/:id.
func (h *DirectoryHandler) DeleteDepartment(c *fiber.Ctx) error {
	if err := h.service.DeleteDepartment(c.UserContext(), callerFrom(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetAccessMap GET /directory/access-map.
func (h *DirectoryHandler) GetAccessMap(c *fiber.Ctx) error {
	accessMap, err := h.service.GetAccessMap(c.UserContext(), callerFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccessMapResponse(accessMap)})
}

// ReplaceAccessMap PUT /directory/access-map.
func (h *DirectoryHandler) ReplaceAccessMap(c *fiber.Ctx) error {
	var req dto.AccessMapRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	saved, err := h.service.ReplaceAccessMap(c.UserContext(), callerFrom(c), domain.AccessMap{
		DesignerAddress:     req.DesignerAddress,
		DepartmentAddresses: req.DepartmentAddresses,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccessMapResponse(saved)})
}

// SetDepartmentAddress PUT /directory/access-map/departments/:address.
func (h *DirectoryHandler) SetDepartmentAddress(c *fiber.Ctx) error {
	address, err := addressParam(c)
	if err != nil {
		return err
	}
	var req dto.DepartmentAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if err := h.service.SetDepartmentAddress(c.UserContext(), callerFrom(c), address, req.DepartmentID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// RemoveDepartmentAddress DELETE /directory/access-map/departments/:address.
func (h *DirectoryHandler) RemoveDepartmentAddress(c *fiber.Ctx) error {
	address, err := addressParam(c)
	if err != nil {
		return err
	}
	if err := h.service.RemoveDepartmentAddress(c.UserContext(), callerFrom(c), address); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func addressParam(c *fiber.Ctx) (string, error) {
	address, err := url.PathUnescape(c.Params("address"))
	if err != nil || address == "" {
		return "", apperrors.NewValidationError("invalid address", map[string]any{"address": c.Params("address")})
	}
	return address, nil
}
