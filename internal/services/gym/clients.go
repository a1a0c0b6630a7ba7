package gym

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/lib/billing"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/storage"
)

// RegisterClient регистрирует участника с абонементом от имени сотрудника by.
func (s *Service) RegisterClient(ctx context.Context, req models.RegisterClientRequest, by string) (models.MonthlyClient, error) {
	const op = "gym.RegisterClient"
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.id()
	if err != nil {
		return models.MonthlyClient{}, fmt.Errorf("%s: %w", op, err)
	}
	client, err := billing.NewClient(req, id, by)
	if err != nil {
		return models.MonthlyClient{}, fmt.Errorf("%s: %w", op, err)
	}

	next := withPrepended(s.clients, client)
	if err := s.persist(ctx, storage.KeyClients, next); err != nil {
		return models.MonthlyClient{}, fmt.Errorf("%s: %w", op, err)
	}
	s.clients = next

	s.metrics.ClientRegistered(client.AmountPaid)
	return client, nil
}

// RenewClient продлевает абонемент. Неизвестный id ничего не меняет и возвращает found=false.
func (s *Service) RenewClient(ctx context.Context, id string, now time.Time) (models.MonthlyClient, bool, error) {
	const op = "gym.RenewClient"
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.clients, func(c models.MonthlyClient) bool { return c.ID == id })
	if i < 0 {
		return models.MonthlyClient{}, false, nil
	}

	renewed, err := billing.Renew(s.clients[i], now, s.settings.Location)
	if err != nil {
		return models.MonthlyClient{}, true, fmt.Errorf("%s: %w", op, err)
	}

	next := withReplaced(s.clients, i, renewed)
	if err := s.persist(ctx, storage.KeyClients, next); err != nil {
		return models.MonthlyClient{}, true, fmt.Errorf("%s: %w", op, err)
	}
	s.clients = next

	s.metrics.ClientRenewed()
	return renewed, true, nil
}

// DeleteClient удаляет участника. Неизвестный id дает found=false.
func (s *Service) DeleteClient(ctx context.Context, id string) (bool, error) {
	const op = "gym.DeleteClient"
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.clients, func(c models.MonthlyClient) bool { return c.ID == id })
	if i < 0 {
		return false, nil
	}

	next := withoutIndex(s.clients, i)
	if err := s.persist(ctx, storage.KeyClients, next); err != nil {
		return true, fmt.Errorf("%s: %w", op, err)
	}
	s.clients = next

	s.metrics.ClientRemoved()
	return true, nil
}

// Clients возвращает участников, начиная с самой поздней даты начала.
// query ищет без учета регистра по имени, email и телефону.
func (s *Service) Clients(query string) []models.MonthlyClient {
	s.mu.Lock()
	clients := slices.Clone(s.clients)
	s.mu.Unlock()

	query = strings.ToLower(strings.TrimSpace(query))
	if query != "" {
		clients = slices.DeleteFunc(clients, func(c models.MonthlyClient) bool {
			return !strings.Contains(strings.ToLower(c.Name), query) &&
				!strings.Contains(strings.ToLower(c.Email), query) &&
				!strings.Contains(c.Contact, query)
		})
	}

	slices.SortStableFunc(clients, func(a, b models.MonthlyClient) int {
		return b.StartDate.Compare(a.StartDate)
	})
	if clients == nil {
		clients = []models.MonthlyClient{}
	}
	return clients
}

// Client ищет участника по id.
func (s *Service) Client(id string) (models.MonthlyClient, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.clients, func(c models.MonthlyClient) bool { return c.ID == id })
	if i < 0 {
		return models.MonthlyClient{}, false
	}
	return s.clients[i], true
}
