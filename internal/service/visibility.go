package service

import (
	"strings"

	"github.com/samber/lo"

	"github.com/spec-kit/campaign-calendar/internal/domain"
)

// EventQuery narrows the visible events. Zero-valued fields do not filter.
type EventQuery struct {
	Text       string
	AssigneeID string
	Urgency    domain.Urgency
}

// FilterEvents returns the events the scope may see that also match q,
// in input order. It is pure and is re-run on every read.
func FilterEvents(events []domain.Event, scope domain.AccessScope, q EventQuery) []domain.Event {
	text := strings.ToLower(q.Text)
	return lo.Filter(events, func(e domain.Event, _ int) bool {
		return scopeAllows(scope, e) && q.matches(e, text)
	})
}

// CanSee reports whether a single event is visible to the scope.
func CanSee(scope domain.AccessScope, e domain.Event) bool {
	return scopeAllows(scope, e)
}

func scopeAllows(scope domain.AccessScope, e domain.Event) bool {
	switch scope.Role {
	case domain.RoleDesigner:
		return true
	case domain.RoleDepartmentUser:
		return e.DepartmentID != nil && *e.DepartmentID == scope.DepartmentID
	default:
		return false
	}
}

func (q EventQuery) matches(e domain.Event, text string) bool {
	if text != "" &&
		!strings.Contains(strings.ToLower(e.Title), text) &&
		!strings.Contains(strings.ToLower(e.ID), text) {
		return false
	}
	if q.AssigneeID != "" && (e.AssigneeID == nil || *e.AssigneeID != q.AssigneeID) {
		return false
	}
	if q.Urgency != "" && e.Urgency != q.Urgency {
		return false
	}
	return true
}
