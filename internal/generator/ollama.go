package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// OllamaGenerator implements Generator using the Ollama /api/generate
// endpoint with streaming disabled. It is safe for concurrent use.
type OllamaGenerator struct {
	// host is the Ollama server base URL (e.g. "http://localhost:11434").
	host string
	// model is the generation model name (e.g. "llama3").
	model string
	// client is the shared HTTP client with a generation-length timeout.
	client *http.Client
}

// OllamaGenConfig holds the settings for constructing an OllamaGenerator.
type OllamaGenConfig struct {
	// Host is the Ollama server base URL (e.g. "http://localhost:11434").
	Host string
	// Model is the generation model name.
	Model string
}

// NewOllamaGenerator constructs an OllamaGenerator from the given config.
func NewOllamaGenerator(cfg *OllamaGenConfig) *OllamaGenerator {
	return &OllamaGenerator{
		host:   cfg.Host,
		model:  cfg.Model,
		client: &http.Client{Timeout: 5 * time.Minute},
	}
}

// ollamaGenerateRequest is the JSON body sent to the /api/generate endpoint.
type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// ollamaGenerateResponse is the JSON body returned from /api/generate.
type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Generate returns the model's response for the given prompt.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(ollamaGenerateRequest{Model: g.model, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("ollama generator: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("ollama generator: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama generator: request failed: %w", err)
	}
	defer resp.Body.Close()

	var result ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("ollama generator: decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
		if result.Error != "" {
			msg = result.Error
		}
		return "", fmt.Errorf("ollama generator: %s", msg)
	}

	return result.Response, nil
}
