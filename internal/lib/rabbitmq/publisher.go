package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// AppID подпись издателя в свойствах сообщения.
const AppID = "gym-manager-scheduler"

// ChannelPublisher публикует напоминания в обменник ExchangeName через открытый канал.
type ChannelPublisher struct {
	ch  *amqp.Channel
	now func() time.Time
}

func NewChannelPublisher(ch *amqp.Channel) *ChannelPublisher {
	return &ChannelPublisher{ch: ch, now: time.Now}
}

// Publish кодирует message в JSON и отправляет его как persistent с ключом routingKey.
func (p *ChannelPublisher) Publish(routingKey string, message any) error {
	const op = "rabbitmq.Publish"

	msg, err := newPublishing(routingKey, message, p.now())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := p.ch.Publish(ExchangeName, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func newPublishing(routingKey string, message any, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(message)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    now.UTC(),
		Type:         routingKey,
		AppId:        AppID,
		Body:         body,
	}, nil
}
