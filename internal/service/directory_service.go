package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spec-kit/campaign-calendar/internal/domain"
	"github.com/spec-kit/campaign-calendar/internal/repository"
	apperrors "github.com/spec-kit/campaign-calendar/pkg/util"
)

const defaultAvatar = "👤"

// DirectoryService manages users, departments and the address table.
// Deletes never cascade to events or address entries.
type DirectoryService struct {
	users       repository.UserRepository
	departments repository.DepartmentRepository
	accessMaps  repository.AccessMapRepository
	validate    *validator.Validate
	logger      *zap.Logger
}

// DirectoryDependencies bundles repositories.
type DirectoryDependencies struct {
	UserRepo       repository.UserRepository
	DepartmentRepo repository.DepartmentRepository
	AccessMapRepo  repository.AccessMapRepository
	Logger         *zap.Logger
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{
		users:       deps.UserRepo,
		departments: deps.DepartmentRepo,
		accessMaps:  deps.AccessMapRepo,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
	}
}

// UserCreateInput describes a new directory user.
type UserCreateInput struct {
	Name   string
	Email  string
	Avatar string
}

// CallerView describes how the service sees the caller.
type CallerView struct {
	Address        string
	Role           domain.Role
	DepartmentID   string
	DepartmentName string
}

func (s *DirectoryService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

func (s *DirectoryService) CreateUser(ctx context.Context, caller Caller, input UserCreateInput) (*domain.User, error) {
	if err := requireDesigner(caller); err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:   strings.TrimSpace(input.Name),
		Email:  strings.TrimSpace(input.Email),
		Avatar: strings.TrimSpace(input.Avatar),
	}
	details := map[string]any{}
	if user.Name == "" {
		details["name"] = "required"
	}
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		details["email"] = "must be a valid email address"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid user", details)
	}
	if user.Avatar == "" {
		user.Avatar = defaultAvatar
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (s *DirectoryService) DeleteUser(ctx context.Context, caller Caller, id string) error {
	if err := requireDesigner(caller); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *DirectoryService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return depts, nil
}

func (s *DirectoryService) CreateDepartment(ctx context.Context, caller Caller, name string) (*domain.Department, error) {
	if err := requireDesigner(caller); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("invalid department", map[string]any{"name": "required"})
	}
	dept := &domain.Department{Name: name}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, apperrors.MapError(err)
	}
	return dept, nil
}

func (s *DirectoryService) DeleteDepartment(ctx context.Context, caller Caller, id string) error {
	if err := requireDesigner(caller); err != nil {
		return err
	}
	if err := s.departments.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFound("department", map[string]any{"department_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// GetAccessMap returns the current address table; an unconfigured table is empty.
func (s *DirectoryService) GetAccessMap(ctx context.Context, caller Caller) (domain.AccessMap, error) {
	if err := requireDesigner(caller); err != nil {
		return domain.AccessMap{}, err
	}
	return s.currentAccessMap(ctx)
}

// ReplaceAccessMap stores a new address table. A department address equal to
// the designer address is kept but shadowed by the designer role.
func (s *DirectoryService) ReplaceAccessMap(ctx context.Context, caller Caller, accessMap domain.AccessMap) (domain.AccessMap, error) {
	if err := requireDesigner(caller); err != nil {
		return domain.AccessMap{}, err
	}
	clean := domain.AccessMap{
		DesignerAddress:     strings.TrimSpace(accessMap.DesignerAddress),
		DepartmentAddresses: make(map[string]string, len(accessMap.DepartmentAddresses)),
	}
	if clean.DesignerAddress == "" {
		return domain.AccessMap{}, apperrors.NewValidationError("invalid access map",
			map[string]any{"designer_address": "required"})
	}
	for addr, deptID := range accessMap.DepartmentAddresses {
		addr, deptID = strings.TrimSpace(addr), strings.TrimSpace(deptID)
		if addr == "" || deptID == "" {
			return domain.AccessMap{}, apperrors.NewValidationError("invalid access map",
				map[string]any{"department_addresses": "address and department id are required"})
		}
		clean.DepartmentAddresses[addr] = deptID
	}
	s.warnIfShadowed(clean)

	if err := s.accessMaps.Save(ctx, clean); err != nil {
		return domain.AccessMap{}, apperrors.MapError(err)
	}
	return clean, nil
}

// SetDepartmentAddress maps one address to an existing department.
func (s *DirectoryService) SetDepartmentAddress(ctx context.Context, caller Caller, address, departmentID string) error {
	if err := requireDesigner(caller); err != nil {
		return err
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return apperrors.NewValidationError("invalid address", map[string]any{"address": "required"})
	}
	if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFound("department", map[string]any{"department_id": departmentID})
		}
		return apperrors.MapError(err)
	}
	if err := s.accessMaps.SetDepartmentAddress(ctx, address, departmentID); err != nil {
		return apperrors.MapError(err)
	}
	if current, err := s.currentAccessMap(ctx); err == nil {
		s.warnIfShadowed(current)
	}
	return nil
}

func (s *DirectoryService) RemoveDepartmentAddress(ctx context.Context, caller Caller, address string) error {
	if err := requireDesigner(caller); err != nil {
		return err
	}
	if err := s.accessMaps.RemoveDepartmentAddress(ctx, address); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFound("department address", map[string]any{"address": address})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// DescribeCaller resolves the caller's department name for display.
func (s *DirectoryService) DescribeCaller(ctx context.Context, caller Caller) (CallerView, error) {
	view := CallerView{
		Address:      caller.Address,
		Role:         caller.Scope.Role,
		DepartmentID: caller.Scope.DepartmentID,
	}
	if caller.Scope.Role != domain.RoleDepartmentUser {
		return view, nil
	}
	dept, err := s.departments.GetByID(ctx, caller.Scope.DepartmentID)
	switch {
	case err == nil:
		view.DepartmentName = dept.Name
	case apperrors.IsNotFound(err):
		view.DepartmentName = domain.UnknownName
	default:
		return CallerView{}, apperrors.MapError(err)
	}
	return view, nil
}

func (s *DirectoryService) currentAccessMap(ctx context.Context) (domain.AccessMap, error) {
	accessMap, err := s.accessMaps.Get(ctx)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return domain.AccessMap{DepartmentAddresses: map[string]string{}}, nil
		}
		return domain.AccessMap{}, apperrors.MapError(err)
	}
	return accessMap, nil
}

func (s *DirectoryService) warnIfShadowed(accessMap domain.AccessMap) {
	if deptID, ok := accessMap.DepartmentAddresses[accessMap.DesignerAddress]; ok {
		s.logger.Warn("department address shadowed by designer address",
			zap.String("address", accessMap.DesignerAddress),
			zap.String("department_id", deptID))
	}
}
