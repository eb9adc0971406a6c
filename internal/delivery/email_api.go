package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/campaign-calendar/internal/config"
)

// Metadata keys forwarded as template parameters.
const (
	MetaTitle   = "title"
	MetaRefID   = "ref_id"
	MetaEventID = "event_id"
)

type emailAPIRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// EmailAPIChannel posts messages to a transactional email API.
type EmailAPIChannel struct {
	url        string
	serviceID  string
	templateID string
	publicKey  string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewChannel picks the email API channel when an endpoint is configured and
// the disabled channel otherwise.
func NewChannel(cfg config.DeliveryConfig, logger *zap.Logger) Channel {
	if cfg.APIURL == "" {
		logger.Warn("DELIVERY_API_URL not provided; every assignment will use the mail client fallback")
		return NewDisabledChannel()
	}
	return NewEmailAPIChannel(cfg, logger)
}

// NewEmailAPIChannel constructs the channel.
func NewEmailAPIChannel(cfg config.DeliveryConfig, logger *zap.Logger) *EmailAPIChannel {
	return &EmailAPIChannel{
		url:        cfg.APIURL,
		serviceID:  cfg.ServiceID,
		templateID: cfg.TemplateID,
		publicKey:  cfg.PublicKey,
		timeout:    cfg.Timeout(),
		logger:     logger,
	}
}

// Send posts the message. Transport errors and non-2xx responses are failures.
func (c *EmailAPIChannel) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := map[string]string{
		"to_email": msg.To,
		"to_name":  msg.ToName,
		"name":     msg.ToName,
		"email":    msg.To,
		"subject":  msg.Subject,
		"message":  msg.Body,
	}
	for k, v := range msg.Metadata {
		if _, reserved := params[k]; !reserved {
			params[k] = v
		}
	}

	agent := fiber.Post(c.url)
	agent.JSON(emailAPIRequest{
		ServiceID:      c.serviceID,
		TemplateID:     c.templateID,
		UserID:         c.publicKey,
		TemplateParams: params,
	})
	agent.Timeout(c.timeout)

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("email api request: %w", errors.Join(errs...))
	}
	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		return fmt.Errorf("email api rejected message: status %d: %s", status, truncate(string(body), 200))
	}

	c.logger.Debug("email api accepted message", zap.String("to", msg.To), zap.Int("status", status))
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
