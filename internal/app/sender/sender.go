// Package sender содержит приложение, которое читает очереди напоминаний и отправляет письма.
package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/gym-manager/internal/config"
	"github.com/magabrotheeeer/gym-manager/internal/lib/mail"
	"github.com/magabrotheeeer/gym-manager/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	senderservice "github.com/magabrotheeeer/gym-manager/internal/services/sender"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.sender.New"

	conn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderservice.NewSenderService(NewTransport(cfg, logger), cfg.GymName, logger),
		logger:        logger,
	}, nil
}

// NewTransport выбирает Resend при наличии ключа, иначе письма только пишутся в лог.
func NewTransport(cfg *config.Config, logger *slog.Logger) mail.Transport {
	if cfg.ResendAPIKey == "" {
		logger.Warn("RESEND_API_KEY is not set, emails will only be logged")
		return mail.NewNoopTransport(logger)
	}
	return mail.NewResendTransport(cfg.ResendAPIKey, cfg.From, logger)
}

func (a *App) Run(ctx context.Context) error {
	for _, q := range rabbitmq.GetNotificationQueues() {
		if err := rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, q.QueueName, a.senderService.HandleExpiryNotice); err != nil {
			a.logger.Error("failed to start consumer", slog.String("queue", q.QueueName), sl.Err(err))
			return err
		}
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return nil
}
