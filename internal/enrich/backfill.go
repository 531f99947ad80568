package enrich

import (
	"context"
	"fmt"

	"brainer/internal/classify"
	"brainer/internal/contextutil"
)

// BackfillStats summarizes one backfill run.
type BackfillStats struct {
	Candidates int `json:"candidates"`
	Embedded   int `json:"embedded"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// BackfillEmbeddings generates embeddings for all of a user's notes
// that lack one. Notes are processed one at a time with a fixed small
// delay between calls to stay under the embedding endpoint's rate
// limit; per-note failures are counted, logged, and do not stop the run.
func (s *Service) BackfillEmbeddings(ctx context.Context, userID string) (*BackfillStats, error) {
	logger := contextutil.LoggerFromContext(ctx)

	notes, err := s.notes.ListMissingEmbeddings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list backfill candidates: %w", err)
	}

	stats := &BackfillStats{Candidates: len(notes)}
	for i := range notes {
		note := &notes[i]

		if !classify.ShouldGenerateEmbedding(note.Content) {
			stats.Skipped++
			continue
		}

		if stats.Embedded > 0 {
			s.sleep(s.backfillDelay)
		}

		if _, err := s.GenerateEmbedding(ctx, note, false); err != nil {
			logger.WarnContext(ctx, "backfill embedding failed", "note_id", note.ID, "error", err)
			stats.Failed++
			continue
		}
		stats.Embedded++
	}

	logger.InfoContext(ctx, "embedding backfill finished",
		"user_id", userID,
		"candidates", stats.Candidates,
		"embedded", stats.Embedded,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	return stats, nil
}
