package domain

import "time"

// NotificationChannel identifies how a notification reached its audience.
type NotificationChannel string

const (
	NotificationChannelEmail  NotificationChannel = "email"
	NotificationChannelSystem NotificationChannel = "system"
)

// Notification is a user-facing record surfaced in the notification popover.
type Notification struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Message   string              `json:"message"`
	Timestamp time.Time           `json:"timestamp"`
	Read      bool                `json:"read"`
	Channel   NotificationChannel `json:"channel"`
}

// AuditLogEntry is an immutable activity log line.
type AuditLogEntry struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
