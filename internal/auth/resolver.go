package auth

import "github.com/spec-kit/campaign-calendar/internal/domain"

// ResolveRole maps a claimed caller address to a role. The first match wins:
// designer address, then department addresses, then guest.
// An empty designer address never matches.
func ResolveRole(callerAddress string, accessMap domain.AccessMap) domain.AccessScope {
	if accessMap.DesignerAddress != "" && callerAddress == accessMap.DesignerAddress {
		return domain.AccessScope{Role: domain.RoleDesigner}
	}
	if deptID, ok := accessMap.DepartmentAddresses[callerAddress]; ok {
		return domain.AccessScope{Role: domain.RoleDepartmentUser, DepartmentID: deptID}
	}
	return domain.AccessScope{Role: domain.RoleGuest}
}
