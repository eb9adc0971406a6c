package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/campaign-calendar/internal/domain"
	"github.com/spec-kit/campaign-calendar/internal/events"
	"github.com/spec-kit/campaign-calendar/internal/repository"
	apperrors "github.com/spec-kit/campaign-calendar/pkg/util"
)

const (
	createdWithoutAssignee = "Kampanya oluşturuldu (Atama yok)."
	createdMessage         = "Kampanya oluşturuldu."
	unassignedName         = "unassigned"
)

// EventService coordinates campaign events on the calendar.
type EventService struct {
	events      repository.EventRepository
	users       repository.UserRepository
	departments repository.DepartmentRepository
	notifier    *AssignmentNotifier
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// EventDependencies bundles collaborators for the event service.
type EventDependencies struct {
	EventRepo      repository.EventRepository
	UserRepo       repository.UserRepository
	DepartmentRepo repository.DepartmentRepository
	Notifier       *AssignmentNotifier
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewEventService constructs the service.
func NewEventService(deps EventDependencies) *EventService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{
		events:      deps.EventRepo,
		users:       deps.UserRepo,
		departments: deps.DepartmentRepo,
		notifier:    deps.Notifier,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
	}
}

// EventCreateInput describes a new campaign.
type EventCreateInput struct {
	Title        string
	Date         time.Time
	Urgency      domain.Urgency
	Description  *string
	AssigneeID   *string
	DepartmentID *string
}

// EventCreateResult is the created event plus the assignment outcome, if any.
type EventCreateResult struct {
	Event      domain.Event
	Assignment *DeliveryOutcome
	Signals    []Signal
}

// CalendarEntry is a visible event with directory names resolved.
type CalendarEntry struct {
	Event          domain.Event
	AssigneeName   string
	AssigneeAvatar string
	DepartmentName string
}

// CreateEvent stores a campaign and, when it names an existing assignee,
// runs the assignment notification. Notification failures never fail creation.
func (s *EventService) CreateEvent(ctx context.Context, caller Caller, input EventCreateInput) (*EventCreateResult, error) {
	if err := requireDesigner(caller); err != nil {
		return nil, err
	}

	event := &domain.Event{
		Title:        strings.TrimSpace(input.Title),
		Date:         domain.CalendarDate(input.Date),
		Urgency:      input.Urgency,
		Description:  trimOptional(input.Description),
		AssigneeID:   trimOptional(input.AssigneeID),
		DepartmentID: trimOptional(input.DepartmentID),
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventCampaignCreated,
		EventID: event.ID,
		Actor:   caller.actor(),
		Payload: events.CampaignCreatedPayload{
			Title:        event.Title,
			Urgency:      event.Urgency,
			AssigneeID:   event.AssigneeID,
			DepartmentID: event.DepartmentID,
		},
	})

	result := &EventCreateResult{Event: *event}
	if event.AssigneeID == nil {
		result.Signals = []Signal{{Kind: SignalSuccess, Message: createdWithoutAssignee}}
		return result, nil
	}

	result.Signals = []Signal{{Kind: SignalSuccess, Message: createdMessage}}
	assignee, err := s.users.GetByID(ctx, *event.AssigneeID)
	if err != nil {
		s.logger.Warn("assignee not found; skipping assignment notification",
			zap.String("event_id", event.ID),
			zap.String("assignee_id", *event.AssigneeID),
			zap.Error(err))
		return result, nil
	}

	outcome := s.notifier.NotifyAssignment(ctx, *event, *assignee, AssignmentContext{
		DepartmentName: s.departmentName(ctx, event.DepartmentID),
		Actor:          caller.actor(),
	})
	result.Assignment = &outcome
	result.Signals = append(result.Signals, outcome.Signals...)
	return result, nil
}

// departmentName returns "" when the event has no department or it no longer exists.
func (s *EventService) departmentName(ctx context.Context, departmentID *string) string {
	if departmentID == nil {
		return ""
	}
	dept, err := s.departments.GetByID(ctx, *departmentID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.Warn("lookup requesting department", zap.String("department_id", *departmentID), zap.Error(err))
		}
		return ""
	}
	return dept.Name
}

// ListVisible returns the events the caller may see that match q, in store order.
func (s *EventService) ListVisible(ctx context.Context, caller Caller, q EventQuery) ([]domain.Event, error) {
	all, err := s.events.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return FilterEvents(all, caller.Scope, q), nil
}

// ListCalendar returns visible events with assignee and department names.
// Dangling references render as "unknown".
func (s *EventService) ListCalendar(ctx context.Context, caller Caller, q EventQuery) ([]CalendarEntry, error) {
	var (
		all   []domain.Event
		users []domain.User
		depts []domain.Department
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		all, err = s.events.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.users.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		depts, err = s.departments.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.MapError(err)
	}

	usersByID := lo.KeyBy(users, func(u domain.User) string { return u.ID })
	deptsByID := lo.KeyBy(depts, func(d domain.Department) string { return d.ID })

	visible := FilterEvents(all, caller.Scope, q)
	return lo.Map(visible, func(e domain.Event, _ int) CalendarEntry {
		entry := CalendarEntry{Event: e, AssigneeName: unassignedName}
		if e.AssigneeID != nil {
			entry.AssigneeName = domain.UnknownName
			if u, ok := usersByID[*e.AssigneeID]; ok {
				entry.AssigneeName = u.Name
				entry.AssigneeAvatar = u.Avatar
			}
		}
		if e.DepartmentID != nil {
			entry.DepartmentName = domain.UnknownName
			if d, ok := deptsByID[*e.DepartmentID]; ok {
				entry.DepartmentName = d.Name
			}
		}
		return entry
	}), nil
}

// GetVisible returns one event; events outside the caller's scope are reported as missing.
func (s *EventService) GetVisible(ctx context.Context, caller Caller, id string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("event", map[string]any{"event_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if !CanSee(caller.Scope, *event) {
		return nil, apperrors.NewNotFound("event", map[string]any{"event_id": id})
	}
	return event, nil
}

// DeleteEvent removes one event.
func (s *EventService) DeleteEvent(ctx context.Context, caller Caller, id string) error {
	if err := requireDesigner(caller); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFound("event", map[string]any{"event_id": id})
		}
		return apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{Type: events.EventCampaignDeleted, EventID: id, Actor: caller.actor()})
	return nil
}

// DeleteAllEvents removes every event and returns how many were removed.
func (s *EventService) DeleteAllEvents(ctx context.Context, caller Caller) (int64, error) {
	if err := requireDesigner(caller); err != nil {
		return 0, err
	}
	n, err := s.events.DeleteAll(ctx)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventCampaignsCleared,
		Actor:   caller.actor(),
		Payload: events.CampaignsClearedPayload{Count: n},
	})
	return n, nil
}

func (s *EventService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validateEvent(e *domain.Event) error {
	details := map[string]any{}
	if e.Title == "" {
		details["title"] = "required"
	}
	if e.Date.IsZero() {
		details["date"] = "required"
	}
	if !e.Urgency.Valid() {
		details["urgency"] = "must be one of Very High, High, Medium, Low"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid event", details)
	}
	return nil
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
