package storage

import "time"

// Transcription job statuses stored on a note. A note with a non-empty
// job id is only ever in_progress, completed, or failed.
const (
	TranscriptionNotStarted = "not_started"
	TranscriptionInProgress = "in_progress"
	TranscriptionCompleted  = "completed"
	TranscriptionFailed     = "failed"
)

// NoteRecord represents a note row with all of its derived fields.
// Nullable columns are pointers; a derived field and its metadata are
// always written together in a single UPDATE.
type NoteRecord struct {
	ID      string
	UserID  string
	Title   string
	Content string

	Summary            *string
	KeyPoints          *string // JSON array of strings
	SummaryTokensUsed  *int
	SummaryGeneratedAt *time.Time

	Embedding            []float32 // decoded from the embedding BLOB, nil when absent
	EmbeddingModel       *string
	EmbeddingGeneratedAt *time.Time

	Topics            *string // JSON blob {topics, concepts, suggested_tags}
	TopicsTokensUsed  *int
	TopicsGeneratedAt *time.Time

	TranscriptionJobID      *string
	TranscriptionStatus     string
	TranscriptionStorageKey *string
	TranscriptionConfidence *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSummary reports whether a summary has been generated. Derived from
// the summary column so it can never disagree with the content.
func (n *NoteRecord) HasSummary() bool {
	return n.Summary != nil
}

// HasEmbedding reports whether an embedding vector is stored.
func (n *NoteRecord) HasEmbedding() bool {
	return len(n.Embedding) > 0
}

// HasTopics reports whether topic extraction has been run.
func (n *NoteRecord) HasTopics() bool {
	return n.Topics != nil
}

// IsProcessing reports whether an asynchronous transcription job is
// still pending for this note.
func (n *NoteRecord) IsProcessing() bool {
	return n.TranscriptionJobID != nil && n.TranscriptionStatus == TranscriptionInProgress
}

// TagRecord represents a tag row. Tags are per-user and independent of
// note lifecycle.
type TagRecord struct {
	ID        string
	UserID    string
	Name      string
	Color     string
	CreatedAt time.Time
}

// UsageRecord holds a user's monthly counters and plan.
type UsageRecord struct {
	UserID             string
	Plan               string
	NotesUsed          int
	SummariesUsed      int
	TranscriptionsUsed int
	ScreenshotsUsed    int
	EmbeddingsUsed     int
	PeriodMonth        int
	PeriodYear         int
}
