// Package usage tracks per-user monthly counters gating how many notes,
// summaries, transcriptions, screenshots, and embeddings a user may
// generate on their plan.
package usage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ledger.go -package=mocks brainer/internal/usage Ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"brainer/internal/contextutil"
	"brainer/internal/storage"
)

// Unlimited is the sentinel limit meaning "no cap".
const Unlimited = -1

// Resource names one countable operation.
type Resource string

const (
	ResourceNotes          Resource = "notes"
	ResourceSummaries      Resource = "summaries"
	ResourceTranscriptions Resource = "transcriptions"
	ResourceScreenshots    Resource = "screenshots"
	ResourceEmbeddings     Resource = "embeddings"
)

// Limits holds the per-month caps of a plan.
type Limits struct {
	Notes          int
	Summaries      int
	Transcriptions int
	Screenshots    int
	Embeddings     int
}

// planLimits maps plan names to their monthly caps.
var planLimits = map[string]Limits{
	"free": {
		Notes:          100,
		Summaries:      20,
		Transcriptions: 10,
		Screenshots:    20,
		Embeddings:     100,
	},
	"pro": {
		Notes:          Unlimited,
		Summaries:      300,
		Transcriptions: 120,
		Screenshots:    300,
		Embeddings:     Unlimited,
	},
	"unlimited": {
		Notes:          Unlimited,
		Summaries:      Unlimited,
		Transcriptions: Unlimited,
		Screenshots:    Unlimited,
		Embeddings:     Unlimited,
	},
}

// ErrLimitExceeded is returned by Allow when the monthly cap is reached.
type ErrLimitExceeded struct {
	Resource Resource
	Limit    int
}

func (e *ErrLimitExceeded) Error() string {
	return fmt.Sprintf("monthly limit reached for %s (%d)", e.Resource, e.Limit)
}

// Snapshot is a read-only view of a user's ledger for the current period.
type Snapshot struct {
	Plan   string           `json:"plan"`
	Month  int              `json:"month"`
	Year   int              `json:"year"`
	Used   map[Resource]int `json:"used"`
	Limits map[Resource]int `json:"limits"`
}

// Ledger gates countable operations against plan limits.
type Ledger interface {
	// Allow returns nil when the user may perform one more operation of
	// the given resource this month, or ErrLimitExceeded.
	Allow(ctx context.Context, userID string, resource Resource) error
	// Record counts one performed operation.
	Record(ctx context.Context, userID string, resource Resource) error
	// Current returns the user's counters and limits for this month.
	Current(ctx context.Context, userID string) (*Snapshot, error)
}

// ledger implements Ledger over the usage repository.
type ledger struct {
	repo   storage.UsageStore
	logger *slog.Logger
	now    func() time.Time
}

// NewLedger creates a new Ledger.
func NewLedger(repo storage.UsageStore) Ledger {
	return &ledger{
		repo:   repo,
		logger: slog.Default(),
		now:    time.Now,
	}
}

// current loads the usage row, resetting counters when the stored period
// differs from the current month/year.
func (l *ledger) current(ctx context.Context, userID string) (*storage.UsageRecord, error) {
	now := l.now()
	month, year := int(now.Month()), now.Year()

	rec, err := l.repo.Get(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	if rec.PeriodMonth != month || rec.PeriodYear != year {
		logger := contextutil.LoggerFromContext(ctx)
		logger.InfoContext(ctx, "resetting usage counters for new period",
			"user_id", userID, "month", month, "year", year)
		if err := l.repo.Reset(ctx, userID, month, year); err != nil {
			return nil, err
		}
		rec, err = l.repo.Get(ctx, userID, month, year)
		if err != nil {
			return nil, err
		}
	}

	return rec, nil
}

// Allow returns nil when the user may perform one more operation of the
// given resource this month, or ErrLimitExceeded.
func (l *ledger) Allow(ctx context.Context, userID string, resource Resource) error {
	rec, err := l.current(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load usage: %w", err)
	}

	limits := limitsForPlan(rec.Plan)
	limit, used := pick(limits, rec, resource)
	if limit == Unlimited || used < limit {
		return nil
	}
	return &ErrLimitExceeded{Resource: resource, Limit: limit}
}

// Record counts one performed operation.
func (l *ledger) Record(ctx context.Context, userID string, resource Resource) error {
	if _, err := l.current(ctx, userID); err != nil {
		return fmt.Errorf("failed to load usage: %w", err)
	}
	counter, ok := counterColumn(resource)
	if !ok {
		return fmt.Errorf("unknown usage resource: %s", resource)
	}
	return l.repo.Increment(ctx, userID, counter)
}

// Current returns the user's counters and limits for this month.
func (l *ledger) Current(ctx context.Context, userID string) (*Snapshot, error) {
	rec, err := l.current(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage: %w", err)
	}

	limits := limitsForPlan(rec.Plan)
	return &Snapshot{
		Plan:  rec.Plan,
		Month: rec.PeriodMonth,
		Year:  rec.PeriodYear,
		Used: map[Resource]int{
			ResourceNotes:          rec.NotesUsed,
			ResourceSummaries:      rec.SummariesUsed,
			ResourceTranscriptions: rec.TranscriptionsUsed,
			ResourceScreenshots:    rec.ScreenshotsUsed,
			ResourceEmbeddings:     rec.EmbeddingsUsed,
		},
		Limits: map[Resource]int{
			ResourceNotes:          limits.Notes,
			ResourceSummaries:      limits.Summaries,
			ResourceTranscriptions: limits.Transcriptions,
			ResourceScreenshots:    limits.Screenshots,
			ResourceEmbeddings:     limits.Embeddings,
		},
	}, nil
}

func limitsForPlan(plan string) Limits {
	if limits, ok := planLimits[plan]; ok {
		return limits
	}
	return planLimits["free"]
}

func pick(limits Limits, rec *storage.UsageRecord, resource Resource) (limit, used int) {
	switch resource {
	case ResourceNotes:
		return limits.Notes, rec.NotesUsed
	case ResourceSummaries:
		return limits.Summaries, rec.SummariesUsed
	case ResourceTranscriptions:
		return limits.Transcriptions, rec.TranscriptionsUsed
	case ResourceScreenshots:
		return limits.Screenshots, rec.ScreenshotsUsed
	case ResourceEmbeddings:
		return limits.Embeddings, rec.EmbeddingsUsed
	default:
		return 0, 0
	}
}

func counterColumn(resource Resource) (string, bool) {
	switch resource {
	case ResourceNotes:
		return storage.CounterNotes, true
	case ResourceSummaries:
		return storage.CounterSummaries, true
	case ResourceTranscriptions:
		return storage.CounterTranscriptions, true
	case ResourceScreenshots:
		return storage.CounterScreenshots, true
	case ResourceEmbeddings:
		return storage.CounterEmbeddings, true
	default:
		return "", false
	}
}
