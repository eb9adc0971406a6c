package delivery

import (
	"context"
	"errors"
)

// ErrChannelDisabled is returned by a channel that has no endpoint configured.
var ErrChannelDisabled = errors.New("delivery channel disabled")

// Message is one outbound assignment notice.
type Message struct {
	To       string
	ToName   string
	Subject  string
	Body     string
	Metadata map[string]string
}

// Channel is the primary, best-effort delivery mechanism.
type Channel interface {
	Send(ctx context.Context, msg Message) error
}

// ChannelFunc adapts a function to Channel.
type ChannelFunc func(ctx context.Context, msg Message) error

// Send calls f.
func (f ChannelFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

type disabledChannel struct{}

// NewDisabledChannel returns a channel that always fails, so every
// assignment goes through the fallback handoff.
func NewDisabledChannel() Channel {
	return disabledChannel{}
}

func (disabledChannel) Send(context.Context, Message) error {
	return ErrChannelDisabled
}
