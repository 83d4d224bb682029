package rag

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeEmbedder implements Embedder with a canned vector or error.
type fakeEmbedder struct {
	// vector is returned for every input text.
	vector []float32
	// err, when set, fails every Embed call.
	err error
	// calls counts Embed invocations.
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, nil
}

// fakeStore implements VectorStore over an in-memory record slice.
type fakeStore struct {
	// records is returned by Search.
	records []Record
	// searchErr, when set, fails every Search call.
	searchErr error
	// lastTopK captures the topK passed to Search.
	lastTopK int
}

func (f *fakeStore) Upsert(context.Context, []Record, [][]float32) error { return nil }
func (f *fakeStore) Clear(context.Context) error                         { return nil }
func (f *fakeStore) Close() error                                        { return nil }

func (f *fakeStore) Search(_ context.Context, _ []float32, topK int) ([]Record, error) {
	f.lastTopK = topK
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.records, nil
}

func TestNewRetriever_NilDependencies(t *testing.T) {
	t.Parallel()

	if _, err := NewRetriever(nil, &fakeStore{}, 5); err == nil {
		t.Error("expected error for nil embedder")
	}
	if _, err := NewRetriever(&fakeEmbedder{}, nil, 5); err == nil {
		t.Error("expected error for nil store")
	}
}

func TestRetrieve_EmptyQuery(t *testing.T) {
	t.Parallel()

	r, err := NewRetriever(&fakeEmbedder{vector: []float32{1}}, &fakeStore{}, 5)
	if err != nil {
		t.Fatal(err)
	}

	_, err = r.Retrieve(context.Background(), "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestRetrieve_NoMatches(t *testing.T) {
	t.Parallel()

	r, err := NewRetriever(&fakeEmbedder{vector: []float32{1}}, &fakeStore{}, 5)
	if err != nil {
		t.Fatal(err)
	}

	ctx, err := r.Retrieve(context.Background(), "anything indexed?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ctx.Empty() {
		t.Error("expected empty context with no stored records")
	}
	if len(ctx.Sources) != 0 {
		t.Errorf("expected no sources, got %v", ctx.Sources)
	}
}

func TestRetrieve_AssemblesResults(t *testing.T) {
	t.Parallel()

	store := &fakeStore{records: []Record{
		{Text: "alpha", DocumentName: "doc.pdf", Score: 0.92},
		{Text: "beta", DocumentName: "doc.pdf", Score: 0.81},
	}}
	r, err := NewRetriever(&fakeEmbedder{vector: []float32{1, 2}}, store, 3)
	if err != nil {
		t.Fatal(err)
	}

	ctx, err := r.Retrieve(context.Background(), "what is alpha?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "alpha" + Separator + "beta"; ctx.Text != want {
		t.Errorf("context text = %q, want %q", ctx.Text, want)
	}
	if store.lastTopK != 3 {
		t.Errorf("topK = %d, want 3", store.lastTopK)
	}
}

func TestRetrieve_DefaultTopK(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	r, err := NewRetriever(&fakeEmbedder{vector: []float32{1}}, store, 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Retrieve(context.Background(), "q"); err != nil {
		t.Fatal(err)
	}
	if store.lastTopK != DefaultTopK {
		t.Errorf("topK = %d, want %d", store.lastTopK, DefaultTopK)
	}
}

func TestRetrieve_EmbeddingFailure(t *testing.T) {
	t.Parallel()

	r, err := NewRetriever(&fakeEmbedder{err: fmt.Errorf("backend down")}, &fakeStore{}, 5)
	if err != nil {
		t.Fatal(err)
	}

	_, err = r.Retrieve(context.Background(), "q")
	var eerr *EmbeddingError
	if !errors.As(err, &eerr) {
		t.Fatalf("expected EmbeddingError, got %v", err)
	}
	if eerr.Op != "query" {
		t.Errorf("op = %q, want query", eerr.Op)
	}
}

func TestRetrieve_SearchFailure(t *testing.T) {
	t.Parallel()

	store := &fakeStore{searchErr: fmt.Errorf("grpc unavailable")}
	r, err := NewRetriever(&fakeEmbedder{vector: []float32{1}}, store, 5)
	if err != nil {
		t.Fatal(err)
	}

	_, err = r.Retrieve(context.Background(), "q")
	var ierr *IndexError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected IndexError, got %v", err)
	}
	if ierr.Op != "search" {
		t.Errorf("op = %q, want search", ierr.Op)
	}
}
