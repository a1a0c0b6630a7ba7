package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/resend/resend-go/v2"
)

// ResendTransport отправляет письма через API Resend.
type ResendTransport struct {
	client *resend.Client
	from   string
	log    *slog.Logger
}

func NewResendTransport(apiKey, from string, log *slog.Logger) *ResendTransport {
	return &ResendTransport{
		client: resend.NewClient(apiKey),
		from:   from,
		log:    log,
	}
}

// WithBaseURL направляет запросы на другой адрес API.
func (t *ResendTransport) WithBaseURL(raw string) (*ResendTransport, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("mail.WithBaseURL: %w", err)
	}
	t.client.BaseURL = u
	return t, nil
}

func (t *ResendTransport) Send(ctx context.Context, msg Message) (string, error) {
	const op = "mail.ResendTransport.Send"
	if len(msg.To) == 0 {
		return "", fmt.Errorf("%s: %w", op, errors.New("no recipients"))
	}

	sent, err := t.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    t.from,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Text,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	t.log.Info("email sent", slog.String("message_id", sent.Id), slog.Any("to", msg.To))
	return sent.Id, nil
}
