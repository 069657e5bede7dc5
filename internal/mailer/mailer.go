package mailer

import (
	"context"
	"log/slog"
)

// Mailer delivers confirmation codes to users. The production
// deployment swaps in an SMTP-backed implementation.
type Mailer interface {
	SendConfirmationCode(ctx context.Context, email, username, code string) error
}

// LogMailer writes outgoing mail to the application log instead of
// sending it. Suitable for development and tests.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendConfirmationCode(ctx context.Context, email, username, code string) error {
	m.logger.InfoContext(ctx, "confirmation code issued",
		"email", email,
		"username", username,
		"code", code,
	)
	return nil
}
