// Package generator produces the final answer for a question: it renders the
// retrieval context and the user's question into a prompt and sends it to a
// generation backend. Gemini uses the official genai SDK; OpenAI and Ollama
// talk plain HTTP JSON.
package generator

import (
	"context"
)

// Generator is the interface for turning a fully rendered prompt into
// generated text. Implementations must be safe to call from multiple
// goroutines.
type Generator interface {
	// Generate returns the model's response for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}
