package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/campaign-calendar/internal/events"
	"github.com/spec-kit/campaign-calendar/internal/observability"
)

// Delivery outcome labels.
const (
	OutcomeDelivered = "delivered"
	OutcomeFallback  = "fallback"
)

// NotificationWorker reacts to campaign and assignment events with logs and metrics.
type NotificationWorker struct {
	logger  *zap.Logger
	metrics *observability.Metrics
}

// StartNotificationWorker registers handlers on the dispatcher.
func StartNotificationWorker(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *NotificationWorker {
	w := &NotificationWorker{logger: logger, metrics: metrics}
	if dispatcher == nil {
		return w
	}
	dispatcher.Subscribe(events.EventCampaignCreated, w.handleCampaignCreated)
	dispatcher.Subscribe(events.EventCampaignDeleted, w.handleCampaignDeleted)
	dispatcher.Subscribe(events.EventCampaignsCleared, w.handleCampaignsCleared)
	dispatcher.Subscribe(events.EventAssignmentDelivered, w.handleAssignmentDelivered)
	dispatcher.Subscribe(events.EventAssignmentFallback, w.handleAssignmentFallback)
	return w
}

func (w *NotificationWorker) handleCampaignCreated(_ context.Context, event events.Event) error {
	w.logger.Info("CampaignCreated",
		zap.String("event_id", event.EventID),
		zap.String("actor", event.Actor.Address),
		zap.Any("payload", event.Payload))
	return nil
}

func (w *NotificationWorker) handleCampaignDeleted(_ context.Context, event events.Event) error {
	w.logger.Info("CampaignDeleted", zap.String("event_id", event.EventID), zap.String("actor", event.Actor.Address))
	return nil
}

func (w *NotificationWorker) handleCampaignsCleared(_ context.Context, event events.Event) error {
	w.logger.Info("CampaignsCleared", zap.String("actor", event.Actor.Address), zap.Any("payload", event.Payload))
	return nil
}

func (w *NotificationWorker) handleAssignmentDelivered(_ context.Context, event events.Event) error {
	w.metrics.RecordDelivery(OutcomeDelivered)
	w.logger.Info("AssignmentDelivered", zap.String("event_id", event.EventID), zap.Any("payload", event.Payload))
	w.warnOnBookkeeping(event)
	return nil
}

func (w *NotificationWorker) handleAssignmentFallback(_ context.Context, event events.Event) error {
	w.metrics.RecordDelivery(OutcomeFallback)
	w.logger.Info("AssignmentFallback", zap.String("event_id", event.EventID), zap.Any("payload", event.Payload))
	w.warnOnBookkeeping(event)
	return nil
}

func (w *NotificationWorker) warnOnBookkeeping(event events.Event) {
	payload, ok := event.Payload.(events.AssignmentPayload)
	if !ok || !payload.BookkeepingFailed {
		return
	}
	w.logger.Warn("assignment recorded without complete bookkeeping",
		zap.String("event_id", event.EventID),
		zap.String("assignee_id", payload.AssigneeID))
}
