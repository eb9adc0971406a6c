package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/spec-kit/campaign-calendar/internal/domain"
	"github.com/spec-kit/campaign-calendar/internal/repository"
	apperrors "github.com/spec-kit/campaign-calendar/pkg/util"
)

// ActivityService exposes the notification and audit log stores to designers.
type ActivityService struct {
	notifications repository.NotificationStore
	auditLog      repository.AuditLogStore
}

// NewActivityService constructs the service.
func NewActivityService(notifications repository.NotificationStore, auditLog repository.AuditLogStore) *ActivityService {
	return &ActivityService{notifications: notifications, auditLog: auditLog}
}

// NotificationList is the newest-first notification feed with its unread count.
type NotificationList struct {
	Items  []domain.Notification
	Unread int
}

func (s *ActivityService) ListNotifications(ctx context.Context, caller Caller) (*NotificationList, error) {
	if err := requireDesigner(caller); err != nil {
		return nil, err
	}
	items, err := s.notifications.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	unread := lo.CountBy(items, func(n domain.Notification) bool { return !n.Read })
	return &NotificationList{Items: items, Unread: unread}, nil
}

func (s *ActivityService) MarkNotificationsRead(ctx context.Context, caller Caller) error {
	if err := requireDesigner(caller); err != nil {
		return err
	}
	return apperrors.MapError(s.notifications.MarkAllRead(ctx))
}

func (s *ActivityService) ClearNotifications(ctx context.Context, caller Caller) error {
	if err := requireDesigner(caller); err != nil {
		return err
	}
	return apperrors.MapError(s.notifications.ClearAll(ctx))
}

func (s *ActivityService) ListAuditLog(ctx context.Context, caller Caller) ([]domain.AuditLogEntry, error) {
	if err := requireDesigner(caller); err != nil {
		return nil, err
	}
	entries, err := s.auditLog.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

func (s *ActivityService) ClearAuditLog(ctx context.Context, caller Caller) error {
	if err := requireDesigner(caller); err != nil {
		return err
	}
	return apperrors.MapError(s.auditLog.ClearAll(ctx))
}
