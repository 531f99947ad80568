package usage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"brainer/internal/storage"
)

func newTestLedger(t *testing.T, now time.Time) (*ledger, *sql.DB) {
	t.Helper()

	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	l := NewLedger(storage.NewUsageRepo(db)).(*ledger)
	l.now = func() time.Time { return now }
	return l, db
}

func setPlan(t *testing.T, db *sql.DB, userID, plan string) {
	t.Helper()
	if _, err := db.Exec("UPDATE usage_counters SET plan = ? WHERE user_id = ?", plan, userID); err != nil {
		t.Fatalf("failed to set plan: %v", err)
	}
}

func TestLedger_AllowAndRecord(t *testing.T) {
	l, _ := newTestLedger(t, time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if err := l.Allow(ctx, "user-1", ResourceNotes); err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if err := l.Record(ctx, "user-1", ResourceNotes); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	snap, err := l.Current(ctx, "user-1")
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if snap.Used[ResourceNotes] != 1 {
		t.Errorf("notes used = %d, want 1", snap.Used[ResourceNotes])
	}
	if snap.Plan != "free" {
		t.Errorf("plan = %q, want free", snap.Plan)
	}
	if snap.Month != 3 || snap.Year != 2026 {
		t.Errorf("period = %d/%d, want 3/2026", snap.Month, snap.Year)
	}
}

func TestLedger_Allow_LimitExceeded(t *testing.T) {
	l, _ := newTestLedger(t, time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	// Free plan allows 10 transcriptions per month.
	for i := 0; i < 10; i++ {
		if err := l.Record(ctx, "user-1", ResourceTranscriptions); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	err := l.Allow(ctx, "user-1", ResourceTranscriptions)
	var limitErr *ErrLimitExceeded
	if !errors.As(err, &limitErr) {
		t.Fatalf("Allow() error = %v, want ErrLimitExceeded", err)
	}
	if limitErr.Resource != ResourceTranscriptions || limitErr.Limit != 10 {
		t.Errorf("ErrLimitExceeded = %+v", limitErr)
	}

	// Other resources remain available.
	if err := l.Allow(ctx, "user-1", ResourceNotes); err != nil {
		t.Errorf("Allow(notes) error = %v", err)
	}
}

func TestLedger_Allow_Unlimited(t *testing.T) {
	l, db := newTestLedger(t, time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if _, err := l.Current(ctx, "user-1"); err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	setPlan(t, db, "user-1", "pro")

	// Pro notes are uncapped regardless of the counter value.
	for i := 0; i < 150; i++ {
		if err := l.Record(ctx, "user-1", ResourceNotes); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	if err := l.Allow(ctx, "user-1", ResourceNotes); err != nil {
		t.Errorf("Allow() error = %v, pro notes should be unlimited", err)
	}

	snap, _ := l.Current(ctx, "user-1")
	if snap.Limits[ResourceNotes] != Unlimited {
		t.Errorf("notes limit = %d, want Unlimited", snap.Limits[ResourceNotes])
	}
	if snap.Limits[ResourceSummaries] != 300 {
		t.Errorf("summaries limit = %d, want 300", snap.Limits[ResourceSummaries])
	}
}

func TestLedger_UnknownPlanFallsBackToFree(t *testing.T) {
	l, db := newTestLedger(t, time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if _, err := l.Current(ctx, "user-1"); err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	setPlan(t, db, "user-1", "enterprise-beta")

	snap, err := l.Current(ctx, "user-1")
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if snap.Limits[ResourceNotes] != 100 {
		t.Errorf("unknown plan should use free limits, got %d", snap.Limits[ResourceNotes])
	}
}

func TestLedger_PeriodRollover(t *testing.T) {
	l, _ := newTestLedger(t, time.Date(2025, time.December, 20, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := l.Record(ctx, "user-1", ResourceSummaries); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	// Advance into January: counters reset, period moves forward.
	l.now = func() time.Time { return time.Date(2026, time.January, 2, 9, 0, 0, 0, time.UTC) }

	snap, err := l.Current(ctx, "user-1")
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if snap.Used[ResourceSummaries] != 0 {
		t.Errorf("summaries used after rollover = %d, want 0", snap.Used[ResourceSummaries])
	}
	if snap.Month != 1 || snap.Year != 2026 {
		t.Errorf("period = %d/%d, want 1/2026", snap.Month, snap.Year)
	}

	if err := l.Allow(ctx, "user-1", ResourceSummaries); err != nil {
		t.Errorf("Allow() after rollover error = %v", err)
	}
}

func TestLedger_Record_UnknownResource(t *testing.T) {
	l, _ := newTestLedger(t, time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC))

	if err := l.Record(context.Background(), "user-1", Resource("widgets")); err == nil {
		t.Error("Record() should reject unknown resources")
	}
}
