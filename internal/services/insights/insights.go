// Package insights запрашивает у Gemini короткие советы по выручке спортзала.
// Сервис никогда не возвращает ошибку: без ключа API или при сбое отдается статический текст.
package insights

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

const (
	// MissingKeyMessage ответ, когда ключ API не настроен.
	MissingKeyMessage = "Configure sua API Key para receber insights estratégicos."
	// FallbackMessage ответ при ошибке или таймауте генерации.
	FallbackMessage = "Dica: Mantenha o foco no atendimento personalizado hoje!"

	cachePrefix = "insights:"
)

// Generator генерирует текст по промпту.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Cache хранит готовые советы.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type Service struct {
	gen      Generator
	cache    Cache
	timeout  time.Duration
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewService создает сервис. gen == nil означает, что ключ API не задан; cache может быть nil.
func NewService(gen Generator, cache Cache, timeout, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		gen:      gen,
		cache:    cache,
		timeout:  timeout,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// GetInsights возвращает советы для текущих показателей.
func (s *Service) GetInsights(ctx context.Context, stats models.InsightStats) string {
	const op = "insights.GetInsights"
	log := s.log.With(slog.String("op", op))

	if s.gen == nil {
		log.Warn("insights api key is not configured")
		return MissingKeyMessage
	}

	key := cacheKey(stats)
	if s.cache != nil {
		var cached string
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn("failed to read insights cache", sl.Err(err))
		}
		if found && cached != "" {
			return cached
		}
	}

	genCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.gen.Generate(genCtx, Prompt(stats))
	if err != nil {
		log.Error("failed to generate insights", sl.Err(err))
		return FallbackMessage
	}
	if text == "" {
		log.Warn("empty insights response")
		return FallbackMessage
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, text, s.cacheTTL); err != nil {
			log.Warn("failed to write insights cache", sl.Err(err))
		}
	}
	return text
}

// Prompt текст запроса к модели.
func Prompt(stats models.InsightStats) string {
	return fmt.Sprintf(`Analise o desempenho deste ginásio com os seguintes dados de Moçambique:
- Total de Clientes: %d
- Clientes Mensais Ativos: %d
- Check-ins Diários Hoje: %d
- Receita Mensal: %s MT
- Receita Diária Hoje: %s MT

Forneça 3 dicas curtas e práticas para aumentar a receita. Responda em Português de Moçambique com tom profissional.`,
		stats.TotalClients,
		stats.ActiveMonthly,
		stats.DailyToday,
		stats.RevenueMonthly.StringFixed(2),
		stats.RevenueDaily.StringFixed(2),
	)
}

func cacheKey(stats models.InsightStats) string {
	sum := sha256.Sum256([]byte(Prompt(stats)))
	return cachePrefix + hex.EncodeToString(sum[:8])
}
