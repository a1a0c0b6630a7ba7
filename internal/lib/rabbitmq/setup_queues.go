package rabbitmq

const (
	// ExchangeName обменник напоминаний об абонементах.
	ExchangeName = "notifications"

	RoutingKeyExpiring = "expiring"
	RoutingKeyExpired  = "expired"

	prefetch = 10
)

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues очереди отправителя: истекающие и истекшие абонементы.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification.expiring", RoutingKey: RoutingKeyExpiring},
		{QueueName: "notification.expired", RoutingKey: RoutingKeyExpired},
	}
}

// RoutingKeyFor выбирает ключ маршрутизации по признаку истечения.
func RoutingKeyFor(expired bool) string {
	if expired {
		return RoutingKeyExpired
	}
	return RoutingKeyExpiring
}
