package rag

import (
	"reflect"
	"strings"
	"testing"
)

func TestAssemble_Empty(t *testing.T) {
	t.Parallel()

	ctx := Assemble(nil)
	if !ctx.Empty() {
		t.Error("expected empty context for no records")
	}
	if len(ctx.Sources) != 0 {
		t.Errorf("expected no sources, got %v", ctx.Sources)
	}
}

func TestAssemble_AllRecordsLackText(t *testing.T) {
	t.Parallel()

	ctx := Assemble([]Record{
		{DocumentName: "a.pdf"},
		{DocumentName: "b.pdf"},
	})
	if !ctx.Empty() {
		t.Error("expected empty context when no record carries text")
	}
	if len(ctx.Sources) != 0 {
		t.Errorf("expected no sources for empty context, got %v", ctx.Sources)
	}
}

func TestAssemble_JoinsInOrder(t *testing.T) {
	t.Parallel()

	ctx := Assemble([]Record{
		{Text: "first", DocumentName: "a.pdf", Score: 0.9},
		{Text: "second", DocumentName: "a.pdf", Score: 0.8},
		{Text: "third", DocumentName: "a.pdf", Score: 0.7},
	})

	want := "first" + Separator + "second" + Separator + "third"
	if ctx.Text != want {
		t.Errorf("context text = %q, want %q", ctx.Text, want)
	}
}

func TestAssemble_SkipsEmptyText(t *testing.T) {
	t.Parallel()

	ctx := Assemble([]Record{
		{Text: "kept", DocumentName: "a.pdf"},
		{Text: "", DocumentName: "ghost.pdf"},
		{Text: "also kept", DocumentName: "b.pdf"},
	})

	if strings.Contains(ctx.Text, "ghost") {
		t.Error("empty-text record leaked into context")
	}
	if got := strings.Count(ctx.Text, Separator); got != 1 {
		t.Errorf("expected 1 separator, got %d", got)
	}
	// The empty-text record contributes nothing, including its source.
	if want := []string{"a.pdf", "b.pdf"}; !reflect.DeepEqual(ctx.Sources, want) {
		t.Errorf("sources = %v, want %v", ctx.Sources, want)
	}
}

func TestAssemble_DeduplicatesSources(t *testing.T) {
	t.Parallel()

	ctx := Assemble([]Record{
		{Text: "1", DocumentName: "a.pdf"},
		{Text: "2", DocumentName: "b.pdf"},
		{Text: "3", DocumentName: "a.pdf"},
	})

	want := []string{"a.pdf", "b.pdf"}
	if !reflect.DeepEqual(ctx.Sources, want) {
		t.Errorf("sources = %v, want %v", ctx.Sources, want)
	}
}

func TestAssemble_FiltersEmptySourceNames(t *testing.T) {
	t.Parallel()

	ctx := Assemble([]Record{
		{Text: "orphan chunk"},
		{Text: "named chunk", DocumentName: "a.pdf"},
	})

	if want := []string{"a.pdf"}; !reflect.DeepEqual(ctx.Sources, want) {
		t.Errorf("sources = %v, want %v", ctx.Sources, want)
	}
	if ctx.Empty() {
		t.Error("context with text must not be empty")
	}
}
