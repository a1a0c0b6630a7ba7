// Package mail отправляет письма участникам через Resend.
package mail

import "context"

// Message письмо одному или нескольким адресатам.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Transport отправка письма. Возвращает идентификатор сообщения у провайдера.
type Transport interface {
	Send(ctx context.Context, msg Message) (string, error)
}
