package worker

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/campaign-calendar/internal/events"
	"github.com/spec-kit/campaign-calendar/internal/observability"
)

func TestNotificationWorker_CountsDeliveryOutcomes(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	metrics := observability.NewMetrics()
	core, logs := observer.New(zap.InfoLevel)
	StartNotificationWorker(dispatcher, zap.New(core), metrics)
	ctx := context.Background()

	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventAssignmentDelivered, EventID: "e1",
		Payload: events.AssignmentPayload{AssigneeID: "u1"}}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventAssignmentFallback, EventID: "e2",
		Payload: events.AssignmentPayload{AssigneeID: "u1", BookkeepingFailed: true}}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventAssignmentFallback, EventID: "e3",
		Payload: events.AssignmentPayload{AssigneeID: "u2"}}))

	series, err := testutil.GatherAndCount(metrics.Registry(), "calendar_assignment_deliveries_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series)

	assert.Equal(t, 1, logs.FilterMessage("AssignmentDelivered").Len())
	assert.Equal(t, 2, logs.FilterMessage("AssignmentFallback").Len())
	assert.Equal(t, 1, logs.FilterMessage("assignment recorded without complete bookkeeping").Len())
}

func TestNotificationWorker_LogsCampaignEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	core, logs := observer.New(zap.InfoLevel)
	StartNotificationWorker(dispatcher, zap.New(core), nil)
	ctx := context.Background()

	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventCampaignCreated, EventID: "e1"}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventCampaignDeleted, EventID: "e1"}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventCampaignsCleared}))

	assert.Equal(t, 3, logs.Len())
}
