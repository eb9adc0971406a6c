package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campaign-calendar/internal/auth"
	"github.com/spec-kit/campaign-calendar/internal/service"
)

func callerFrom(c *fiber.Ctx) service.Caller {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return service.Caller{Address: c.IP(), Scope: auth.ScopeFromContext(c)}
	}
	return service.Caller{Address: principal.Address, Scope: principal.Scope}
}
