package dto

import "github.com/spec-kit/campaign-calendar/internal/domain"

// NotificationListResponse is the notification feed, newest first.
type NotificationListResponse struct {
	Items  []domain.Notification `json:"items"`
	Unread int                   `json:"unread"`
}
