package generator

import (
	"context"
	"fmt"
	"os"
)

// Default generation models per backend.
const (
	defaultGeminiModel = "gemini-2.0-flash"
	defaultOpenAIModel = "gpt-4o-mini"
	defaultOllamaModel = "llama3"
)

// NewFromEnv constructs a Generator from environment variables.
//
// Resolution order:
//
//  1. GENERATION_PROVIDER selects the backend: gemini (default), openai, ollama
//  2. GENERATION_MODEL overrides the default model for the resolved backend
//  3. GENERATION_API_KEY overrides the backend's usual key (GOOGLE_API_KEY,
//     OPENAI_API_KEY)
//  4. GENERATION_ENDPOINT overrides the backend endpoint (openai, ollama)
func NewFromEnv(ctx context.Context) (Generator, error) {
	backend := envOrDefault("GENERATION_PROVIDER", "gemini")

	switch backend {
	case "gemini":
		apiKey := os.Getenv("GENERATION_API_KEY")
		if apiKey == "" {
			apiKey = os.Getenv("GOOGLE_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("generator: gemini requires GOOGLE_API_KEY or GENERATION_API_KEY")
		}
		return NewGeminiGenerator(ctx, &GeminiConfig{
			APIKey: apiKey,
			Model:  envOrDefault("GENERATION_MODEL", defaultGeminiModel),
		})

	case "openai":
		apiKey := os.Getenv("GENERATION_API_KEY")
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("generator: openai requires OPENAI_API_KEY or GENERATION_API_KEY")
		}
		return NewOpenAIGenerator(&OpenAIGenConfig{
			BaseURL: os.Getenv("GENERATION_ENDPOINT"),
			APIKey:  apiKey,
			Model:   envOrDefault("GENERATION_MODEL", defaultOpenAIModel),
		}), nil

	case "ollama":
		host := os.Getenv("GENERATION_ENDPOINT")
		if host == "" {
			host = envOrDefault("OLLAMA_HOST", "http://localhost:11434")
		}
		return NewOllamaGenerator(&OllamaGenConfig{
			Host:  host,
			Model: envOrDefault("GENERATION_MODEL", defaultOllamaModel),
		}), nil

	default:
		return nil, fmt.Errorf("generator: unknown backend %q — valid values: gemini, openai, ollama", backend)
	}
}

// envOrDefault returns the value of the named environment variable, or
// fallback if the variable is unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
