package app

import (
	"context"

	"depositshield_backend/internal/email"
	"depositshield_backend/internal/logger"

	"github.com/google/uuid"
)

// LogEmailProvider stands in for SMTP in local development: every message
// is logged and reported as sent.
type LogEmailProvider struct{}

func (m *LogEmailProvider) Send(ctx context.Context, msg *email.Email) (string, error) {
	recipients := make([]string, 0, len(msg.To))
	for _, to := range msg.To {
		recipients = append(recipients, to.Email)
	}
	messageID := "<" + uuid.NewString() + "@localhost>"
	logger.CtxInfo(ctx, "email (not delivered)", "to", recipients, "subject", msg.Subject, "message_id", messageID)
	return messageID, nil
}

func (m *LogEmailProvider) Validate() error { return nil }
func (m *LogEmailProvider) Close() error    { return nil }
