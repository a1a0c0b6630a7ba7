package insights

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiGenerator генерирует текст через Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	const op = "insights.NewGeminiGenerator"
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	const op = "insights.GeminiGenerator.Generate"
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.7),
		TopP:        genai.Ptr[float32](0.95),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return resp.Text(), nil
}
