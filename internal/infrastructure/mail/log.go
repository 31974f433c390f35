package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSink writes notifications to the log instead of sending them. Used in
// development when no SMTP relay is configured.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Send(_ context.Context, to, subject, body string) error {
	s.log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("outbound email (log sink)")
	return nil
}
