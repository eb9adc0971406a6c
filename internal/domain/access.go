package domain

// Role is the access level derived from a caller's claimed address.
type Role string

const (
	RoleDesigner       Role = "designer"
	RoleDepartmentUser Role = "department_user"
	RoleGuest          Role = "guest"
)

// AccessMap binds caller addresses to roles.
type AccessMap struct {
	DesignerAddress     string
	DepartmentAddresses map[string]string // address -> department id
}

// AccessScope is the resolved role of a caller plus its department restriction.
// It is recomputed for every request and never persisted.
type AccessScope struct {
	Role         Role
	DepartmentID string
}

// IsDesigner reports whether the scope carries full access.
func (s AccessScope) IsDesigner() bool {
	return s.Role == RoleDesigner
}

// Clone returns a deep copy so callers can mutate the address table safely.
func (m AccessMap) Clone() AccessMap {
	out := AccessMap{
		DesignerAddress:     m.DesignerAddress,
		DepartmentAddresses: make(map[string]string, len(m.DepartmentAddresses)),
	}
	for addr, dept := range m.DepartmentAddresses {
		out.DepartmentAddresses[addr] = dept
	}
	return out
}
