package generator

import (
	"context"
	"fmt"

	"github.com/docuchat/docuchat-go/internal/rag"
)

// NoContextResponse is the fixed sentinel returned when the index holds no
// usable context for a question. It is a normal, successful response — not an
// error — and the generation model is never invoked to produce it.
const NoContextResponse = "I don't have any documents to reference yet. Please upload a document first!"

// retriever is the slice of rag.Retriever the Answerer depends on; tests
// inject a fake.
type retriever interface {
	Retrieve(ctx context.Context, query string) (rag.Context, error)
}

// Answer is the result of one question: the generated (or sentinel) response
// and the document names the context was drawn from.
type Answer struct {
	// Response is the generated answer text.
	Response string

	// Sources lists the distinct source document names, in first-occurrence
	// order. Empty for the sentinel response.
	Sources []string
}

// Answerer coordinates retrieval and generation for a question. It is
// stateless per call and safe for concurrent use.
type Answerer struct {
	// retriever supplies the assembled context for each question.
	retriever retriever

	// generator produces the answer text from the rendered prompt.
	generator Generator
}

// NewAnswerer constructs an Answerer from the given retriever and generator.
func NewAnswerer(r *rag.Retriever, g Generator) (*Answerer, error) {
	if r == nil {
		return nil, fmt.Errorf("generator: retriever must not be nil")
	}
	if g == nil {
		return nil, fmt.Errorf("generator: generator must not be nil")
	}
	return &Answerer{retriever: r, generator: g}, nil
}

// Ask retrieves context for question and generates a grounded answer. With no
// usable context it short-circuits to NoContextResponse without calling the
// generation model. Retrieval and generation failures propagate unmodified in
// kind, stage-labelled by the layer that produced them.
func (a *Answerer) Ask(ctx context.Context, question string) (Answer, error) {
	if question == "" {
		return Answer{}, rag.Validationf("question must not be empty")
	}

	rctx, err := a.retriever.Retrieve(ctx, question)
	if err != nil {
		return Answer{}, err
	}

	if rctx.Empty() {
		return Answer{Response: NoContextResponse, Sources: []string{}}, nil
	}

	response, err := a.generator.Generate(ctx, BuildPrompt(rctx.Text, question))
	if err != nil {
		return Answer{}, fmt.Errorf("generator: %w", err)
	}

	return Answer{Response: response, Sources: rctx.Sources}, nil
}
