// Package scheduler содержит приложение планировщика напоминаний об абонементах.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/gym-manager/internal/app/backend"
	"github.com/magabrotheeeer/gym-manager/internal/config"
	"github.com/magabrotheeeer/gym-manager/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	schedulerservice "github.com/magabrotheeeer/gym-manager/internal/services/scheduler"
)

// App представляет приложение планировщика.
type App struct {
	schedulerService *schedulerservice.SchedulerService
	backend          *backend.Backend
	conn             *amqp.Connection
	ch               *amqp.Channel
	logger           *slog.Logger
}

// New создает новый экземпляр приложения планировщика.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.scheduler.New"

	conn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect RabbitMQ: %w", op, err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("%s: failed to setup RabbitMQ channel: %w", op, err)
	}

	b, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	svc := schedulerservice.NewSchedulerService(
		b.Store,
		rabbitmq.NewChannelPublisher(ch),
		cfg.Location(),
		cfg.Interval,
		logger,
	)

	return &App{
		schedulerService: svc,
		backend:          b,
		conn:             conn,
		ch:               ch,
		logger:           logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", sl.Err(err))
		}
	}
}

// Run запускает планировщик и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	a.schedulerService.Run(ctx)

	a.logger.Info("shutting down scheduler service")
	closeResources(a.ch, a.conn, a.logger)
	a.backend.Close()
	return nil
}
