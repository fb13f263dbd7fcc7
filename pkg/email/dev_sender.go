package email

import (
	"context"
	"log/slog"
)

// DevSender logs messages instead of delivering them. Used when no Postmark
// tokens are configured.
type DevSender struct {
	log *slog.Logger
}

// NewDevSender creates a logging Sender.
func NewDevSender(log *slog.Logger) *DevSender {
	return &DevSender{log: log}
}

func (s *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "email captured by dev sender",
		slog.String("send_to", params.SendTo),
		slog.String("subject", params.Subject),
		slog.String("tag", params.Tag),
		slog.Int("body_bytes", len(params.BodyHTML)))
	return nil
}
