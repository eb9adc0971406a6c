package delivery

import (
	"context"

	"go.uber.org/zap"
)

// Handoff passes a fallback deep link to whoever opens it. It has no result.
type Handoff interface {
	Handoff(ctx context.Context, uri string)
}

type loggingHandoff struct {
	logger *zap.Logger
}

// NewLoggingHandoff records the deep link; the HTTP client opens it from the response.
func NewLoggingHandoff(logger *zap.Logger) Handoff {
	return &loggingHandoff{logger: logger}
}

func (h *loggingHandoff) Handoff(_ context.Context, uri string) {
	h.logger.Info("mail client handoff", zap.Int("uri_length", len(uri)))
}
