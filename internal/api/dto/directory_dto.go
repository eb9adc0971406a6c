package dto

import (
	"time"

	"github.com/spec-kit/campaign-calendar/internal/domain"
)

// CreateUserRequest payload for POST /directory/users.
type CreateUserRequest struct {
	Name   string `json:"name" validate:"required,max=120"`
	Email  string `json:"email" validate:"required,email"`
	Avatar string `json:"avatar" validate:"max=2048"`
}

// CreateDepartmentRequest payload for POST /directory/departments.
type CreateDepartmentRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// AccessMapRequest payload for PUT /directory/access-map.
type AccessMapRequest struct {
	DesignerAddress     string            `json:"designer_address" validate:"required"`
	DepartmentAddresses map[string]string `json:"department_addresses"`
}

// DepartmentAddressRequest payload for PUT /directory/access-map/departments/:address.
type DepartmentAddressRequest struct {
	DepartmentID string `json:"department_id" validate:"required"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

type DepartmentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type AccessMapResponse struct {
	DesignerAddress     string            `json:"designer_address"`
	DepartmentAddresses map[string]string `json:"department_addresses"`
}

// CallerResponse is returned by GET /access/me.
type CallerResponse struct {
	Address        string `json:"address"`
	Role           string `json:"role"`
	DepartmentID   string `json:"department_id,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
}

func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar, CreatedAt: u.CreatedAt}
}

func NewDepartmentResponse(d domain.Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt}
}

func NewAccessMapResponse(m domain.AccessMap) AccessMapResponse {
	addresses := m.DepartmentAddresses
	if addresses == nil {
		addresses = map[string]string{}
	}
	return AccessMapResponse{DesignerAddress: m.DesignerAddress, DepartmentAddresses: addresses}
}
