package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// UsageStore defines the interface for usage counter storage.
type UsageStore interface {
	// Get returns a user's usage row, creating a zeroed row for the
	// given period if none exists yet.
	Get(ctx context.Context, userID string, month, year int) (*UsageRecord, error)
	// Reset zeroes all counters and moves the row to a new period.
	Reset(ctx context.Context, userID string, month, year int) error
	// Increment adds one to the named counter column.
	Increment(ctx context.Context, userID, counter string) error
}

// Counter column names accepted by Increment.
const (
	CounterNotes          = "notes_used"
	CounterSummaries      = "summaries_used"
	CounterTranscriptions = "transcriptions_used"
	CounterScreenshots    = "screenshots_used"
	CounterEmbeddings     = "embeddings_used"
)

var validCounters = map[string]bool{
	CounterNotes:          true,
	CounterSummaries:      true,
	CounterTranscriptions: true,
	CounterScreenshots:    true,
	CounterEmbeddings:     true,
}

// UsageRepo provides methods for usage counter operations.
// It implements the UsageStore interface.
type UsageRepo struct {
	db *sql.DB
}

// NewUsageRepo creates a new UsageRepo.
func NewUsageRepo(db *sql.DB) *UsageRepo {
	return &UsageRepo{db: db}
}

// Get returns a user's usage row, creating a zeroed row for the given
// period if none exists yet.
func (r *UsageRepo) Get(ctx context.Context, userID string, month, year int) (*UsageRecord, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO usage_counters (user_id, period_month, period_year) VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID, month, year,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure usage row: %w", err)
	}

	var rec UsageRecord
	err = r.db.QueryRowContext(ctx,
		`SELECT user_id, plan, notes_used, summaries_used, transcriptions_used,
		        screenshots_used, embeddings_used, period_month, period_year
		 FROM usage_counters WHERE user_id = ?`,
		userID,
	).Scan(&rec.UserID, &rec.Plan, &rec.NotesUsed, &rec.SummariesUsed, &rec.TranscriptionsUsed,
		&rec.ScreenshotsUsed, &rec.EmbeddingsUsed, &rec.PeriodMonth, &rec.PeriodYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage: %w", err)
	}
	return &rec, nil
}

// Reset zeroes all counters and moves the row to a new period.
func (r *UsageRepo) Reset(ctx context.Context, userID string, month, year int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE usage_counters
		 SET notes_used = 0, summaries_used = 0, transcriptions_used = 0,
		     screenshots_used = 0, embeddings_used = 0, period_month = ?, period_year = ?
		 WHERE user_id = ?`,
		month, year, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to reset usage: %w", err)
	}
	return nil
}

// Increment adds one to the named counter column.
func (r *UsageRepo) Increment(ctx context.Context, userID, counter string) error {
	if !validCounters[counter] {
		return fmt.Errorf("unknown usage counter: %s", counter)
	}
	// Column name is validated against a fixed set above.
	_, err := r.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE usage_counters SET %s = %s + 1 WHERE user_id = ?", counter, counter),
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment %s: %w", counter, err)
	}
	return nil
}
