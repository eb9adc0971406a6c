package service

import (
	"github.com/spec-kit/campaign-calendar/internal/domain"
	"github.com/spec-kit/campaign-calendar/internal/events"
	apperrors "github.com/spec-kit/campaign-calendar/pkg/util"
)

// Caller is the resolved identity of whoever invokes a service operation.
type Caller struct {
	Address string
	Scope   domain.AccessScope
}

func (c Caller) actor() events.Actor {
	return events.Actor{Address: c.Address, Role: c.Scope.Role}
}

func requireDesigner(c Caller) error {
	if !c.Scope.IsDesigner() {
		return apperrors.NewForbidden("designer role required")
	}
	return nil
}
