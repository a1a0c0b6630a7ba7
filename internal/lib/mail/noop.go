package mail

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopTransport только пишет письмо в лог. Используется, когда ключ Resend не задан.
type NoopTransport struct {
	log *slog.Logger
}

func NewNoopTransport(log *slog.Logger) *NoopTransport {
	return &NoopTransport{log: log}
}

func (t *NoopTransport) Send(_ context.Context, msg Message) (string, error) {
	t.log.Info("noop email send", slog.Any("to", msg.To), slog.String("subject", msg.Subject))
	return fmt.Sprintf("noop-%d", time.Now().UnixNano()), nil
}
