// Package sender отправляет участникам письма-напоминания об окончании абонемента.
package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/gym-manager/internal/lib/mail"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type SenderService struct {
	transport mail.Transport
	gymName   string
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport mail.Transport, gymName string, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		gymName:   gymName,
		log:       log,
	}
}

// HandleExpiryNotice обрабатывает сообщение из очереди уведомлений.
// Нечитаемое сообщение подтверждается и отбрасывается; ошибка отправки возвращается для повторной доставки.
func (s *SenderService) HandleExpiryNotice(ctx context.Context, body []byte) error {
	const op = "sender.HandleExpiryNotice"
	log := s.log.With(sl.Op(op))

	var notice models.ExpiryNotice
	if err := json.Unmarshal(body, &notice); err != nil {
		log.Error("failed to unmarshal message body, dropping", sl.Err(err))
		return nil
	}
	if notice.Email == "" {
		log.Warn("notice without email, dropping", slog.String("client_id", notice.ClientID))
		return nil
	}

	id, err := s.transport.Send(ctx, s.compose(notice))
	if err != nil {
		log.Error("failed to send email", slog.String("client_id", notice.ClientID), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("email sent successfully",
		slog.String("client_id", notice.ClientID),
		slog.String("message_id", id),
		slog.Bool("expired", notice.Expired),
	)
	return nil
}

func (s *SenderService) compose(n models.ExpiryNotice) mail.Message {
	var subject, text string
	if n.Expired {
		subject = "A sua mensalidade expirou"
		text = fmt.Sprintf("Olá, %s!\n\nO seu plano %s no %s expirou em %s.\n\nPasse pela receção para renovar e continuar a treinar connosco.",
			n.Name, n.Plan.Label(), s.gymName, n.ExpiryDate)
	} else {
		subject = "A sua mensalidade está a terminar"
		text = fmt.Sprintf("Olá, %s!\n\nO seu plano %s no %s termina em %s.\n\nRenove com antecedência na receção para não interromper os treinos.",
			n.Name, n.Plan.Label(), s.gymName, n.ExpiryDate)
	}
	return mail.Message{
		To:      []string{n.Email},
		Subject: subject,
		Text:    text,
	}
}
