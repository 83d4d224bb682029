package store

import (
	"context"
	"reflect"
	"testing"
	"time"
)

// openTestStore opens an in-memory SQLiteStore for use in tests.
func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func Test_Store_RecordAndListIngests(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	rec := IngestRecord{
		DocumentName:   "report.pdf",
		ChunksProduced: 12,
		ChunksWritten:  12,
		Duration:       1500 * time.Millisecond,
	}
	if err := s.RecordIngest(ctx, rec); err != nil {
		t.Fatalf("record ingest: %v", err)
	}

	recs, err := s.RecentIngests(ctx, 10)
	if err != nil {
		t.Fatalf("recent ingests: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("want 1 ingest, got %d", len(recs))
	}
	got := recs[0]
	if got.DocumentName != "report.pdf" || got.ChunksProduced != 12 || got.ChunksWritten != 12 {
		t.Errorf("ingest record mismatch: %+v", got)
	}
	if got.Duration != 1500*time.Millisecond {
		t.Errorf("duration = %v", got.Duration)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func Test_Store_RecordAndListQuestions(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	rec := QuestionRecord{
		Question: "what is the refund policy?",
		Sources:  []string{"policy.pdf", "faq.md"},
	}
	if err := s.RecordQuestion(ctx, rec); err != nil {
		t.Fatalf("record question: %v", err)
	}

	recs, err := s.RecentQuestions(ctx, 10)
	if err != nil {
		t.Fatalf("recent questions: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("want 1 question, got %d", len(recs))
	}
	if recs[0].Question != "what is the refund policy?" {
		t.Errorf("question = %q", recs[0].Question)
	}
	if want := []string{"policy.pdf", "faq.md"}; !reflect.DeepEqual(recs[0].Sources, want) {
		t.Errorf("sources = %v, want %v", recs[0].Sources, want)
	}
}

func Test_Store_QuestionWithNoSources(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.RecordQuestion(ctx, QuestionRecord{Question: "anything indexed?"}); err != nil {
		t.Fatalf("record question: %v", err)
	}

	recs, err := s.RecentQuestions(ctx, 10)
	if err != nil {
		t.Fatalf("recent questions: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("want 1 question, got %d", len(recs))
	}
	if len(recs[0].Sources) != 0 {
		t.Errorf("sources = %v, want none", recs[0].Sources)
	}
}

func Test_Store_LimitRespected(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	for range 6 {
		if err := s.RecordIngest(ctx, IngestRecord{DocumentName: "doc.txt"}); err != nil {
			t.Fatalf("record ingest: %v", err)
		}
	}

	recs, err := s.RecentIngests(ctx, 4)
	if err != nil {
		t.Fatalf("recent ingests: %v", err)
	}
	if len(recs) != 4 {
		t.Errorf("want 4 ingests, got %d", len(recs))
	}
}

func Test_Store_EmptyHistoryReturnsNil(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	ingests, err := s.RecentIngests(ctx, 10)
	if err != nil {
		t.Fatalf("recent ingests: %v", err)
	}
	if len(ingests) != 0 {
		t.Errorf("want 0 ingests, got %d", len(ingests))
	}

	questions, err := s.RecentQuestions(ctx, 10)
	if err != nil {
		t.Fatalf("recent questions: %v", err)
	}
	if len(questions) != 0 {
		t.Errorf("want 0 questions, got %d", len(questions))
	}
}

func Test_Store_NewestFirstOrdering(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	names := []string{"first.pdf", "second.pdf", "third.pdf"}
	for i, name := range names {
		if err := s.RecordIngest(ctx, IngestRecord{DocumentName: name, ChunksProduced: i}); err != nil {
			t.Fatalf("record ingest: %v", err)
		}
	}

	recs, err := s.RecentIngests(ctx, 10)
	if err != nil {
		t.Fatalf("recent ingests: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("want 3 ingests, got %d", len(recs))
	}
	// ChunksProduced disambiguates rows recorded within the same second.
	for i := range recs {
		if want := len(names) - 1 - i; recs[i].ChunksProduced != want {
			t.Errorf("recs[%d].ChunksProduced = %d, want %d", i, recs[i].ChunksProduced, want)
		}
	}
}
