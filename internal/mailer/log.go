package mailer

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogMailer writes messages to the log instead of sending them.
// Used in development when no SMTP host is configured.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer builds the log-only mailer.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message and fabricates a message id.
func (l *LogMailer) Send(_ context.Context, msg Message) (string, error) {
	id := uuid.NewString()
	l.logger.Info("email (log-only mailer)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("message_id", id),
	)
	return id, nil
}
