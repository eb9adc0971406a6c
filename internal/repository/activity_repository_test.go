package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campaign-calendar/internal/domain"
)

type activityStores struct {
	notifications NotificationStore
	auditLog      AuditLogStore
}

func activityBackends(t *testing.T) map[string]activityStores {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]activityStores{
		"memory": {
			notifications: NewMemoryNotificationStore(),
			auditLog:      NewMemoryAuditLogStore(),
		},
		"redis": {
			notifications: NewRedisNotificationStore(client, "test"),
			auditLog:      NewRedisAuditLogStore(client, "test"),
		},
	}
}

func TestNotificationStore_NewestFirst(t *testing.T) {
	for name, stores := range activityBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
			for i, title := range []string{"first", "second", "third"} {
				require.NoError(t, stores.notifications.Append(ctx, &domain.Notification{
					Title:     title,
					Timestamp: base.Add(time.Duration(i) * time.Minute),
					Channel:   domain.NotificationChannelEmail,
				}))
			}

			got, err := stores.notifications.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, got, 3)
			assert.Equal(t, "third", got[0].Title)
			assert.Equal(t, "second", got[1].Title)
			assert.Equal(t, "first", got[2].Title)
			for _, n := range got {
				assert.NotEmpty(t, n.ID)
				assert.False(t, n.Read)
			}
		})
	}
}

func TestNotificationStore_MarkAllReadKeepsOrder(t *testing.T) {
	for name, stores := range activityBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, stores.notifications.Append(ctx, &domain.Notification{Title: "a"}))
			require.NoError(t, stores.notifications.Append(ctx, &domain.Notification{Title: "b"}))

			require.NoError(t, stores.notifications.MarkAllRead(ctx))

			got, err := stores.notifications.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "b", got[0].Title)
			assert.Equal(t, "a", got[1].Title)
			assert.True(t, got[0].Read)
			assert.True(t, got[1].Read)
		})
	}
}

func TestActivityStores_ClearAllIsIndependent(t *testing.T) {
	for name, stores := range activityBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, stores.notifications.Append(ctx, &domain.Notification{Title: "n"}))
			require.NoError(t, stores.auditLog.Append(ctx, &domain.AuditLogEntry{Message: "l"}))

			require.NoError(t, stores.notifications.ClearAll(ctx))

			notifications, err := stores.notifications.ListAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, notifications)

			entries, err := stores.auditLog.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "l", entries[0].Message)

			require.NoError(t, stores.auditLog.ClearAll(ctx))
			entries, err = stores.auditLog.ListAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestAuditLogStore_PreservesDuplicates(t *testing.T) {
	for name, stores := range activityBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, stores.auditLog.Append(ctx, &domain.AuditLogEntry{Message: "same"}))
			require.NoError(t, stores.auditLog.Append(ctx, &domain.AuditLogEntry{Message: "same"}))

			entries, err := stores.auditLog.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.NotEqual(t, entries[0].ID, entries[1].ID)
		})
	}
}
