package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/campaign-calendar/internal/domain"
	"github.com/spec-kit/campaign-calendar/internal/events"
	"github.com/spec-kit/campaign-calendar/internal/repository"
)

type notifierFixture struct {
	notifier      *AssignmentNotifier
	notifications repository.NotificationStore
	auditLog      repository.AuditLogStore
	channel       *fakeChannel
	handoff       *fakeHandoff
	sleeps        []time.Duration
	published     []events.Event
}

func newNotifierFixture(t *testing.T, channelErr error) *notifierFixture {
	t.Helper()
	f := &notifierFixture{
		notifications: repository.NewMemoryNotificationStore(),
		auditLog:      repository.NewMemoryAuditLogStore(),
		channel:       &fakeChannel{err: channelErr},
		handoff:       &fakeHandoff{},
	}
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	record := func(_ context.Context, e events.Event) error {
		f.published = append(f.published, e)
		return nil
	}
	dispatcher.Subscribe(events.EventAssignmentDelivered, record)
	dispatcher.Subscribe(events.EventAssignmentFallback, record)

	f.notifier = NewAssignmentNotifier(AssignmentNotifierDependencies{
		Notifications: f.notifications,
		AuditLog:      f.auditLog,
		Channel:       f.channel,
		Handoff:       f.handoff,
		Dispatcher:    dispatcher,
		Logger:        zap.NewNop(),
		FallbackDelay: time.Second,
	})
	f.notifier.sleep = func(d time.Duration) { f.sleeps = append(f.sleeps, d) }
	return f
}

func assignedEvent() domain.Event {
	return domain.Event{
		ID:           "e3xyz789",
		Title:        "Yaz İndirimi Lansmanı",
		Date:         time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		Urgency:      domain.UrgencyVeryHigh,
		AssigneeID:   strPtr("u1"),
		DepartmentID: strPtr("d4"),
	}
}

func assignee() domain.User {
	return domain.User{ID: "u1", Name: "Ahmet Yılmaz", Email: "u1@x.com", Avatar: "👨‍💻"}
}

func TestNotifyAssignment_Delivered(t *testing.T) {
	f := newNotifierFixture(t, nil)
	ctx := context.Background()

	outcome := f.notifier.NotifyAssignment(ctx, assignedEvent(), assignee(), AssignmentContext{DepartmentName: "Satış"})

	assert.Equal(t, DeliveryStateDelivered, outcome.State)
	assert.Empty(t, outcome.FallbackURI)
	assert.Empty(t, outcome.BookkeepingErrors)
	assert.Equal(t, "Ref ID: #E3XYZ7", outcome.ReferenceCode)
	assert.Equal(t, []Signal{{Kind: SignalSuccess, Message: "✅ E-posta gönderildi!"}}, outcome.Signals)
	assert.Empty(t, f.handoff.uris)
	assert.Empty(t, f.sleeps)

	require.Len(t, f.channel.sent, 1)
	msg := f.channel.sent[0]
	assert.Equal(t, "u1@x.com", msg.To)
	assert.Equal(t, "Ahmet Yılmaz", msg.ToName)
	assert.Contains(t, msg.Subject, "Yaz İndirimi Lansmanı")
	assert.Contains(t, msg.Body, "Talep Eden Birim: Satış")
	assert.Equal(t, "Ref ID: #E3XYZ7", msg.Metadata["ref_id"])

	require.Len(t, f.published, 1)
	assert.Equal(t, events.EventAssignmentDelivered, f.published[0].Type)
	assert.Equal(t, "e3xyz789", f.published[0].EventID)
}

func TestNotifyAssignment_RecordsBeforeDelivery(t *testing.T) {
	f := newNotifierFixture(t, nil)
	ctx := context.Background()
	var notificationsAtSend, entriesAtSend int
	f.channel.onSend = func() {
		n, _ := f.notifications.ListAll(ctx)
		l, _ := f.auditLog.ListAll(ctx)
		notificationsAtSend, entriesAtSend = len(n), len(l)
	}

	f.notifier.NotifyAssignment(ctx, assignedEvent(), assignee(), AssignmentContext{})

	assert.Equal(t, 1, notificationsAtSend)
	assert.Equal(t, 1, entriesAtSend)
}

func TestNotifyAssignment_FallbackScenario(t *testing.T) {
	f := newNotifierFixture(t, errors.New("blocked by firewall"))
	ctx := context.Background()
	event := assignedEvent()

	outcome := f.notifier.NotifyAssignment(ctx, event, assignee(), AssignmentContext{})

	assert.Equal(t, DeliveryStateFallbackHandoff, outcome.State)
	assert.Equal(t, []Signal{{Kind: SignalInfo, Message: "Mail istemcisi açılıyor..."}}, outcome.Signals)
	assert.Equal(t, []time.Duration{time.Second}, f.sleeps)
	require.Len(t, f.handoff.uris, 1)
	assert.Equal(t, outcome.FallbackURI, f.handoff.uris[0])

	uri, err := url.Parse(outcome.FallbackURI)
	require.NoError(t, err)
	assert.Equal(t, "mailto", uri.Scheme)
	assert.True(t, strings.HasPrefix(outcome.FallbackURI, "mailto:u1@x.com?"))
	q, err := url.ParseQuery(uri.RawQuery)
	require.NoError(t, err)
	assert.Equal(t, "ACİL: Görev Ataması: Yaz İndirimi Lansmanı", q.Get("subject"))
	body := q.Get("body")
	assert.True(t, strings.HasPrefix(body, "Sayın Ahmet Yılmaz,\n\n"))
	assert.Contains(t, body, composeAssignmentMessage(event, ""))
	assert.True(t, strings.HasSuffix(body, "Ref ID: #E3XYZ7"))
	assert.Equal(t, "High", q.Get("importance"))

	notifications, err := f.notifications.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Görev Ataması Yapıldı", notifications[0].Title)
	assert.Equal(t, "Ahmet Yılmaz kişisine \"Yaz İndirimi Lansmanı\" görevi atandı.", notifications[0].Message)
	assert.Equal(t, domain.NotificationChannelEmail, notifications[0].Channel)
	assert.False(t, notifications[0].Read)

	entries, err := f.auditLog.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Yaz İndirimi Lansmanı kampanyası için Ahmet Yılmaz kişiye görev ataması yapıldı (ID: e3xyz789)", entries[0].Message)

	require.Len(t, f.published, 1)
	assert.Equal(t, events.EventAssignmentFallback, f.published[0].Type)
	payload, ok := f.published[0].Payload.(events.AssignmentPayload)
	require.True(t, ok)
	assert.Equal(t, "blocked by firewall", payload.DeliveryError)
}

func TestNotifyAssignment_PanickingChannelFallsBack(t *testing.T) {
	f := newNotifierFixture(t, nil)
	f.channel.onSend = func() { panic("email client not initialised") }
	ctx := context.Background()

	var outcome DeliveryOutcome
	require.NotPanics(t, func() {
		outcome = f.notifier.NotifyAssignment(ctx, assignedEvent(), assignee(), AssignmentContext{})
	})

	assert.Equal(t, DeliveryStateFallbackHandoff, outcome.State)
	assert.Equal(t, []Signal{{Kind: SignalInfo, Message: "Mail istemcisi açılıyor..."}}, outcome.Signals)
	require.Len(t, f.handoff.uris, 1)
	assert.True(t, strings.HasPrefix(f.handoff.uris[0], "mailto:u1@x.com?"))

	require.Len(t, f.published, 1)
	payload, ok := f.published[0].Payload.(events.AssignmentPayload)
	require.True(t, ok)
	assert.Contains(t, payload.DeliveryError, "email client not initialised")
}

func TestNotifyAssignment_BookkeepingFailureDoesNotBlockDelivery(t *testing.T) {
	f := newNotifierFixture(t, nil)
	f.notifier.notifications = failingNotificationStore{}

	outcome := f.notifier.NotifyAssignment(context.Background(), assignedEvent(), assignee(), AssignmentContext{})

	assert.Equal(t, DeliveryStateDelivered, outcome.State)
	require.Len(t, outcome.BookkeepingErrors, 1)
	assert.Contains(t, outcome.BookkeepingErrors[0], "notification")
	assert.Len(t, f.channel.sent, 1)

	entries, err := f.auditLog.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNotifyAssignment_IgnoresCallerCancellation(t *testing.T) {
	f := newNotifierFixture(t, nil)
	var sawCanceled bool
	f.notifier.channel = &ctxCheckingChannel{canceled: &sawCanceled}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := f.notifier.NotifyAssignment(ctx, assignedEvent(), assignee(), AssignmentContext{})

	assert.Equal(t, DeliveryStateDelivered, outcome.State)
	assert.False(t, sawCanceled)
}

func TestNotifyAssignment_RepeatedAssignmentsAreNotDeduplicated(t *testing.T) {
	f := newNotifierFixture(t, errors.New("down"))
	ctx := context.Background()

	f.notifier.NotifyAssignment(ctx, assignedEvent(), assignee(), AssignmentContext{})
	f.notifier.NotifyAssignment(ctx, assignedEvent(), assignee(), AssignmentContext{})

	notifications, _ := f.notifications.ListAll(ctx)
	entries, _ := f.auditLog.ListAll(ctx)
	assert.Len(t, notifications, 2)
	assert.Len(t, entries, 2)
	assert.Len(t, f.handoff.uris, 2)
}
