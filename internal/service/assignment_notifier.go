package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/campaign-calendar/internal/delivery"
	"github.com/spec-kit/campaign-calendar/internal/domain"
	"github.com/spec-kit/campaign-calendar/internal/events"
	"github.com/spec-kit/campaign-calendar/internal/repository"
)

// DeliveryState is the terminal state of one assignment notification.
type DeliveryState string

const (
	DeliveryStateDelivered       DeliveryState = "delivered"
	DeliveryStateFallbackHandoff DeliveryState = "fallback_handoff"
)

// SignalKind classifies a user-visible message.
type SignalKind string

const (
	SignalSuccess SignalKind = "success"
	SignalInfo    SignalKind = "info"
)

// Signal is a transient message for the caller's UI.
type Signal struct {
	Kind    SignalKind `json:"kind"`
	Message string     `json:"message"`
}

const (
	notificationTitle    = "Görev Ataması Yapıldı"
	deliveredMessage     = "✅ E-posta gönderildi!"
	fallbackMessage      = "Mail istemcisi açılıyor..."
	primarySubjectPrefix = "Görev Ataması: "
)

// DeliveryOutcome reports what happened to one assignment.
// BookkeepingErrors lists record writes that failed; they never abort delivery.
type DeliveryOutcome struct {
	State             DeliveryState `json:"state"`
	ReferenceCode     string        `json:"reference_code"`
	FallbackURI       string        `json:"fallback_uri,omitempty"`
	Signals           []Signal      `json:"signals"`
	BookkeepingErrors []string      `json:"bookkeeping_errors,omitempty"`
}

// AssignmentContext carries optional details used in the message.
type AssignmentContext struct {
	DepartmentName string
	Actor          events.Actor
}

// AssignmentNotifier records and delivers the notice for an assigned event.
type AssignmentNotifier struct {
	notifications repository.NotificationStore
	auditLog      repository.AuditLogStore
	channel       delivery.Channel
	handoff       delivery.Handoff
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	fallbackDelay time.Duration
	sleep         func(time.Duration)
	now           func() time.Time
}

// AssignmentNotifierDependencies bundles collaborators.
type AssignmentNotifierDependencies struct {
	Notifications repository.NotificationStore
	AuditLog      repository.AuditLogStore
	Channel       delivery.Channel
	Handoff       delivery.Handoff
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	FallbackDelay time.Duration
}

// NewAssignmentNotifier creates the notifier.
func NewAssignmentNotifier(deps AssignmentNotifierDependencies) *AssignmentNotifier {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	handoff := deps.Handoff
	if handoff == nil {
		handoff = delivery.NewLoggingHandoff(logger)
	}
	return &AssignmentNotifier{
		notifications: deps.Notifications,
		auditLog:      deps.AuditLog,
		channel:       deps.Channel,
		handoff:       handoff,
		dispatcher:    deps.Dispatcher,
		logger:        logger,
		fallbackDelay: deps.FallbackDelay,
		sleep:         time.Sleep,
		now:           time.Now,
	}
}

// NotifyAssignment runs the ordered steps: compose, record, deliver, fall back.
// It never returns an error; failures are reported in the outcome.
// Started notifications are not cancelled by the caller's context.
func (n *AssignmentNotifier) NotifyAssignment(ctx context.Context, event domain.Event, assignee domain.User, ac AssignmentContext) DeliveryOutcome {
	ctx = context.WithoutCancel(ctx)

	message := composeAssignmentMessage(event, ac.DepartmentName)
	ref := ReferenceCode(event.ID)
	outcome := DeliveryOutcome{ReferenceCode: ref}

	for _, err := range n.record(ctx, event, assignee) {
		outcome.BookkeepingErrors = append(outcome.BookkeepingErrors, err.Error())
	}

	err := n.send(ctx, delivery.Message{
		To:      assignee.Email,
		ToName:  assignee.Name,
		Subject: primarySubjectPrefix + event.Title,
		Body:    message,
		Metadata: map[string]string{
			delivery.MetaTitle:   event.Title,
			delivery.MetaRefID:   ref,
			delivery.MetaEventID: event.ID,
		},
	})
	if err == nil {
		outcome.State = DeliveryStateDelivered
		outcome.Signals = append(outcome.Signals, Signal{Kind: SignalSuccess, Message: deliveredMessage})
		n.publish(ctx, events.EventAssignmentDelivered, event, assignee, ac.Actor, nil, len(outcome.BookkeepingErrors) > 0)
		return outcome
	}

	n.logger.Warn("primary delivery failed; handing off to mail client",
		zap.String("event_id", event.ID),
		zap.String("recipient", assignee.Email),
		zap.Error(err))
	outcome.Signals = append(outcome.Signals, Signal{Kind: SignalInfo, Message: fallbackMessage})

	if n.fallbackDelay > 0 {
		n.sleep(n.fallbackDelay)
	}
	outcome.FallbackURI = delivery.BuildMailtoURI(
		assignee.Email,
		fallbackSubject(event.Title),
		fallbackBody(assignee.Name, message, ref),
	)
	n.handoff.Handoff(ctx, outcome.FallbackURI)
	outcome.State = DeliveryStateFallbackHandoff
	n.publish(ctx, events.EventAssignmentFallback, event, assignee, ac.Actor, err, len(outcome.BookkeepingErrors) > 0)
	return outcome
}

// record appends the audit entry and the notification. Each write is attempted
// regardless of the other's result.
func (n *AssignmentNotifier) record(ctx context.Context, event domain.Event, assignee domain.User) []error {
	var errs []error
	now := n.now()

	entry := &domain.AuditLogEntry{
		Message:   auditMessage(event.Title, assignee.Name, event.ID),
		Timestamp: now,
	}
	if err := n.auditLog.Append(ctx, entry); err != nil {
		n.logger.Error("append audit log entry", zap.String("event_id", event.ID), zap.Error(err))
		errs = append(errs, fmt.Errorf("audit log: %w", err))
	}

	notification := &domain.Notification{
		Title:     notificationTitle,
		Message:   notificationMessage(assignee.Name, event.Title),
		Timestamp: now,
		Channel:   domain.NotificationChannelEmail,
	}
	if err := n.notifications.Append(ctx, notification); err != nil {
		n.logger.Error("append notification", zap.String("event_id", event.ID), zap.Error(err))
		errs = append(errs, fmt.Errorf("notification: %w", err))
	}
	return errs
}

func (n *AssignmentNotifier) publish(ctx context.Context, eventType events.EventType, event domain.Event, assignee domain.User, actor events.Actor, deliveryErr error, bookkeepingFailed bool) {
	if n.dispatcher == nil {
		return
	}
	payload := events.AssignmentPayload{
		AssigneeID:        assignee.ID,
		Recipient:         assignee.Email,
		BookkeepingFailed: bookkeepingFailed,
	}
	if deliveryErr != nil {
		payload.DeliveryError = deliveryErr.Error()
	}
	_ = n.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EventID:   event.ID,
		Actor:     actor,
		Timestamp: n.now(),
		Payload:   payload,
	})
}

// send treats a panicking channel like a rejected send.
func (n *AssignmentNotifier) send(ctx context.Context, msg delivery.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("delivery channel panicked: %v", r)
		}
	}()
	return n.channel.Send(ctx, msg)
}
