package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/campaign-calendar/internal/domain"
)

// NotificationStore is the append-only notification sequence.
// ListAll returns entries newest first. The store has no notion of roles.
type NotificationStore interface {
	Append(ctx context.Context, notification *domain.Notification) error
	ListAll(ctx context.Context) ([]domain.Notification, error)
	MarkAllRead(ctx context.Context) error
	ClearAll(ctx context.Context) error
}

// AuditLogStore is the append-only activity log.
type AuditLogStore interface {
	Append(ctx context.Context, entry *domain.AuditLogEntry) error
	ListAll(ctx context.Context) ([]domain.AuditLogEntry, error)
	ClearAll(ctx context.Context) error
}

// redisList keeps JSON documents in a Redis list with the newest entry at the head.
type redisList[T any] struct {
	client *redis.Client
	key    string
}

func (l redisList[T]) push(ctx context.Context, item T) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return l.client.LPush(ctx, l.key, raw).Err()
}

func (l redisList[T]) all(ctx context.Context) ([]T, error) {
	raw, err := l.client.LRange(ctx, l.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return decodeAll[T](raw)
}

func (l redisList[T]) clear(ctx context.Context) error {
	return l.client.Del(ctx, l.key).Err()
}

func decodeAll[T any](raw []string) ([]T, error) {
	result := make([]T, 0, len(raw))
	for _, doc := range raw {
		var item T
		if err := json.Unmarshal([]byte(doc), &item); err != nil {
			return nil, fmt.Errorf("decode activity entry: %w", err)
		}
		result = append(result, item)
	}
	return result, nil
}

type redisNotificationStore struct {
	list redisList[domain.Notification]
}

// NewRedisNotificationStore stores notifications under "<prefix>:notifications".
func NewRedisNotificationStore(client *redis.Client, prefix string) NotificationStore {
	return &redisNotificationStore{list: redisList[domain.Notification]{client: client, key: prefix + ":notifications"}}
}

func (s *redisNotificationStore) Append(ctx context.Context, notification *domain.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	return s.list.push(ctx, *notification)
}

func (s *redisNotificationStore) ListAll(ctx context.Context) ([]domain.Notification, error) {
	return s.list.all(ctx)
}

func (s *redisNotificationStore) MarkAllRead(ctx context.Context) error {
	key := s.list.key
	return s.list.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return err
		}
		items, err := decodeAll[domain.Notification](raw)
		if err != nil {
			return err
		}
		updated := make([]any, 0, len(items))
		for _, item := range items {
			item.Read = true
			doc, err := json.Marshal(item)
			if err != nil {
				return err
			}
			updated = append(updated, doc)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			if len(updated) > 0 {
				pipe.RPush(ctx, key, updated...)
			}
			return nil
		})
		return err
	}, key)
}

func (s *redisNotificationStore) ClearAll(ctx context.Context) error {
	return s.list.clear(ctx)
}

type redisAuditLogStore struct {
	list redisList[domain.AuditLogEntry]
}

// NewRedisAuditLogStore stores log entries under "<prefix>:activity_log".
func NewRedisAuditLogStore(client *redis.Client, prefix string) AuditLogStore {
	return &redisAuditLogStore{list: redisList[domain.AuditLogEntry]{client: client, key: prefix + ":activity_log"}}
}

func (s *redisAuditLogStore) Append(ctx context.Context, entry *domain.AuditLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return s.list.push(ctx, *entry)
}

func (s *redisAuditLogStore) ListAll(ctx context.Context) ([]domain.AuditLogEntry, error) {
	return s.list.all(ctx)
}

func (s *redisAuditLogStore) ClearAll(ctx context.Context) error {
	return s.list.clear(ctx)
}
