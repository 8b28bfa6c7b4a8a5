package mailer

import (
	"github.com/rs/zerolog"
)

// LogSender logs emails instead of delivering them, for debug runs without
// an SMTP server.
type LogSender struct {
	logger *zerolog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(email Email) error {
	s.logger.Info().
		Strs("to", email.To).
		Str("subject", email.Subject).
		Msg("email suppressed (log sender)")
	return nil
}

func (s *LogSender) SendHTML(to []string, subject, htmlBody string) error {
	return s.Send(Email{To: to, Subject: subject, HTMLBody: htmlBody})
}
