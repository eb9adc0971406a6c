package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/campaign-calendar/internal/domain"
	"github.com/spec-kit/campaign-calendar/internal/repository"
	apperrors "github.com/spec-kit/campaign-calendar/pkg/util"
)

const principalKey = "access_principal"

// Principal is the caller as seen by the access model.
type Principal struct {
	Address string
	Scope   domain.AccessScope
}

// AccessMiddleware resolves the caller's role from its claimed address.
// The access map is read on every request so changes apply immediately.
type AccessMiddleware struct {
	accessMaps repository.AccessMapRepository
	header     string
	logger     *zap.Logger
}

// NewAccessMiddleware constructs middleware. header names the request header
// carrying the claimed address; the connection IP is used when it is absent.
func NewAccessMiddleware(accessMaps repository.AccessMapRepository, header string, logger *zap.Logger) *AccessMiddleware {
	return &AccessMiddleware{accessMaps: accessMaps, header: header, logger: logger}
}

// Handle stores the resolved Principal in the request locals.
func (m *AccessMiddleware) Handle(c *fiber.Ctx) error {
	address := m.callerAddress(c)

	accessMap, err := m.accessMaps.Get(c.UserContext())
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return apperrors.MapError(err)
		}
		m.logger.Debug("access map not configured; resolving as guest", zap.String("address", address))
		accessMap = domain.AccessMap{}
	}

	principal := &Principal{Address: address, Scope: ResolveRole(address, accessMap)}
	c.Locals(principalKey, principal)
	return c.Next()
}

func (m *AccessMiddleware) callerAddress(c *fiber.Ctx) string {
	if m.header != "" {
		if claimed := strings.TrimSpace(c.Get(m.header)); claimed != "" {
			return claimed
		}
	}
	return c.IP()
}

// PrincipalFromContext retrieves the resolved caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// ScopeFromContext returns the caller scope, defaulting to guest.
func ScopeFromContext(c *fiber.Ctx) domain.AccessScope {
	if principal, ok := PrincipalFromContext(c); ok {
		return principal.Scope
	}
	return domain.AccessScope{Role: domain.RoleGuest}
}
