package generator

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiGenerator implements Generator using the Gemini API via the official
// genai SDK. It is safe for concurrent use.
type GeminiGenerator struct {
	// client is the shared genai client.
	client *genai.Client
	// model is the generation model name (e.g. "gemini-2.0-flash").
	model string
}

// GeminiConfig holds the settings for constructing a GeminiGenerator.
type GeminiConfig struct {
	// APIKey is the Google AI Studio API key.
	APIKey string
	// Model is the generation model name (e.g. "gemini-2.0-flash").
	Model string
}

// NewGeminiGenerator constructs a GeminiGenerator from the given config.
func NewGeminiGenerator(ctx context.Context, cfg *GeminiConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini generator: API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generator: failed to create client: %w", err)
	}
	return &GeminiGenerator{client: client, model: cfg.Model}, nil
}

// Generate returns the model's response for the given prompt.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generator: generate failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini generator: model returned an empty response")
	}
	return text, nil
}
