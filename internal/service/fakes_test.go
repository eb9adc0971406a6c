package service

import (
	"context"
	"errors"
	"sync"

	"github.com/spec-kit/campaign-calendar/internal/delivery"
	"github.com/spec-kit/campaign-calendar/internal/domain"
	"github.com/spec-kit/campaign-calendar/internal/repository"
)

type fakeChannel struct {
	mu     sync.Mutex
	err    error
	sent   []delivery.Message
	onSend func()
}

func (c *fakeChannel) Send(_ context.Context, msg delivery.Message) error {
	if c.onSend != nil {
		c.onSend()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return c.err
}

type fakeHandoff struct {
	mu   sync.Mutex
	uris []string
}

func (h *fakeHandoff) Handoff(_ context.Context, uri string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.uris = append(h.uris, uri)
}

var errStoreDown = errors.New("store down")

type failingNotificationStore struct {
	repository.NotificationStore
}

func (failingNotificationStore) Append(context.Context, *domain.Notification) error {
	return errStoreDown
}

type failingEventRepository struct {
	repository.EventRepository
}

func (failingEventRepository) Create(context.Context, *domain.Event) error {
	return errStoreDown
}

type ctxCheckingChannel struct {
	canceled *bool
}

func (c *ctxCheckingChannel) Send(ctx context.Context, _ delivery.Message) error {
	*c.canceled = ctx.Err() != nil
	return nil
}
