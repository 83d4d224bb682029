package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// OpenAIGenerator implements Generator using the OpenAI chat completions
// REST API. It is safe for concurrent use.
type OpenAIGenerator struct {
	// baseURL is the API base (e.g. "https://api.openai.com/v1").
	baseURL string
	// apiKey is the Bearer token.
	apiKey string
	// model is the chat model name (e.g. "gpt-4o-mini").
	model string
	// client is the shared HTTP client with a generation-length timeout.
	client *http.Client
}

// OpenAIGenConfig holds the settings for constructing an OpenAIGenerator.
type OpenAIGenConfig struct {
	// BaseURL is the API base URL. Defaults to "https://api.openai.com/v1".
	BaseURL string
	// APIKey is the authentication key.
	APIKey string
	// Model is the chat model name.
	Model string
}

// NewOpenAIGenerator constructs an OpenAIGenerator from the given config.
func NewOpenAIGenerator(cfg *OpenAIGenConfig) *OpenAIGenerator {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIGenerator{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

// openaiChatRequest is the JSON body sent to the chat completions endpoint.
type openaiChatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// openaiChatResponse is the JSON body returned from the chat completions endpoint.
type openaiChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate returns the model's response for the given prompt.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	body := openaiChatRequest{Model: g.model}
	body.Messages = append(body.Messages, struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}{Role: "user", Content: prompt})

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("openai generator: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("openai generator: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai generator: request failed: %w", err)
	}
	defer resp.Body.Close()

	var result openaiChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("openai generator: decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
		if result.Error != nil {
			msg = result.Error.Message
		}
		return "", fmt.Errorf("openai generator: %s", msg)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai generator: response contained no choices")
	}
	return result.Choices[0].Message.Content, nil
}
