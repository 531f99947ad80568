package enrich

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"brainer/internal/llm"
	"brainer/internal/usage"
)

func TestBackfillEmbeddings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createNote(t, proseContent)
	env.createNote(t, "todo") // fails the classifier gate
	env.createNote(t, "This particular note mentions the poison marker so its embedding call fails downstream.")

	env.ledger.EXPECT().Allow(gomock.Any(), "user-1", usage.ResourceEmbeddings).Return(nil).Times(2)
	env.embedder.EXPECT().EmbedText(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, text string) (*llm.Embedding, error) {
			if strings.Contains(text, "poison marker") {
				return nil, errors.New("rate limit")
			}
			return &llm.Embedding{Vector: []float32{0.1, 0.2}, Model: "embed-v1"}, nil
		}).Times(2)
	env.vectors.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	env.ledger.EXPECT().Record(gomock.Any(), "user-1", usage.ResourceEmbeddings).Return(nil)

	stats, err := env.svc.BackfillEmbeddings(ctx, "user-1")
	if err != nil {
		t.Fatalf("BackfillEmbeddings() error = %v", err)
	}
	if stats.Candidates != 3 {
		t.Errorf("candidates = %d, want 3", stats.Candidates)
	}
	if stats.Embedded != 1 || stats.Skipped != 1 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want 1 embedded / 1 skipped / 1 failed", stats)
	}
}

func TestBackfillEmbeddings_Empty(t *testing.T) {
	env := newTestEnv(t)

	stats, err := env.svc.BackfillEmbeddings(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("BackfillEmbeddings() error = %v", err)
	}
	if stats.Candidates != 0 || stats.Embedded != 0 {
		t.Errorf("stats = %+v, want all zero", stats)
	}
}

func TestBackfillEmbeddings_SpacesOutCalls(t *testing.T) {
	env := newTestEnv(t)

	env.createNote(t, proseContent)
	env.createNote(t, proseContent+" Second meeting covered the rollout checklist and staffing.")

	var slept int
	env.svc.sleep = func(d time.Duration) {
		if d != env.svc.backfillDelay {
			t.Errorf("slept %v, want %v", d, env.svc.backfillDelay)
		}
		slept++
	}

	env.ledger.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	env.embedder.EXPECT().EmbedText(gomock.Any(), gomock.Any()).
		Return(&llm.Embedding{Vector: []float32{0.1}, Model: "embed-v1"}, nil).Times(2)
	env.vectors.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	env.ledger.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	stats, err := env.svc.BackfillEmbeddings(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("BackfillEmbeddings() error = %v", err)
	}
	if stats.Embedded != 2 {
		t.Fatalf("embedded = %d, want 2", stats.Embedded)
	}
	if slept != 1 {
		t.Errorf("slept %d times, want 1 (no delay before the first call)", slept)
	}
}
