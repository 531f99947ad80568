package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_store.go -package=mocks brainer/internal/storage NoteStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// NoteStore defines the interface for note storage operations.
type NoteStore interface {
	// Create inserts a new note. A missing ID is generated.
	Create(ctx context.Context, note *NoteRecord) error
	// GetByID gets a note by id. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*NoteRecord, error)
	// ListByUser lists all notes owned by a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]NoteRecord, error)
	// Update persists title and content edits and bumps updated_at.
	Update(ctx context.Context, note *NoteRecord) error
	// Delete removes a note and its tag associations in one transaction.
	Delete(ctx context.Context, id string) error
	// SetEmbedding overwrites the embedding vector, model, and timestamp in one statement.
	SetEmbedding(ctx context.Context, noteID string, vector []float32, model string) error
	// SetSummary overwrites the summary fields in one statement.
	SetSummary(ctx context.Context, noteID, summary string, keyPoints []string, tokensUsed int) error
	// SetTopics overwrites the topics JSON blob in one statement.
	SetTopics(ctx context.Context, noteID, topicsJSON string, tokensUsed int) error
	// SetTranscriptionJob marks a note as having a pending transcription job.
	SetTranscriptionJob(ctx context.Context, noteID, jobID, storageKey string) error
	// FinishTranscription moves a transcription to a terminal status,
	// replacing note content and recording confidence when provided.
	FinishTranscription(ctx context.Context, noteID, status, content string, confidence *float64) error
	// ListMissingEmbeddings returns a user's notes that have no stored embedding.
	ListMissingEmbeddings(ctx context.Context, userID string) ([]NoteRecord, error)
	// SearchText performs a case-insensitive substring match across
	// title, content, and summary, most recently updated first.
	SearchText(ctx context.Context, userID, query string, limit int, excludeID string) ([]NoteRecord, error)
}

// NoteRepo provides methods for note operations backed by SQLite.
// It implements the NoteStore interface.
type NoteRepo struct {
	db *sql.DB
}

// NewNoteRepo creates a new NoteRepo.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

const noteColumns = `id, user_id, title, content,
	summary, key_points, summary_tokens_used, summary_generated_at,
	embedding, embedding_model, embedding_generated_at,
	topics, topics_tokens_used, topics_generated_at,
	transcription_job_id, transcription_status, transcription_storage_key, transcription_confidence,
	created_at, updated_at`

// Create inserts a new note. A missing ID is generated.
func (r *NoteRepo) Create(ctx context.Context, note *NoteRecord) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.TranscriptionStatus == "" {
		note.TranscriptionStatus = TranscriptionNotStarted
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (id, user_id, title, content, transcription_status)
		 VALUES (?, ?, ?, ?, ?)`,
		note.ID, note.UserID, note.Title, note.Content, note.TranscriptionStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// GetByID gets a note by id. Returns ErrNotFound if absent.
func (r *NoteRepo) GetByID(ctx context.Context, id string) (*NoteRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE id = ?", id)
	note, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}
	return note, nil
}

// ListByUser lists all notes owned by a user, newest first.
func (r *NoteRepo) ListByUser(ctx context.Context, userID string) ([]NoteRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return collectNotes(rows)
}

// Update persists title and content edits and bumps updated_at.
func (r *NoteRepo) Update(ctx context.Context, note *NoteRecord) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		note.Title, note.Content, note.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return requireRow(res)
}

// Delete removes a note and its tag associations in one transaction,
// so the two-step removal is atomic from the caller's point of view.
func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM note_tags WHERE note_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete tag associations: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// SetEmbedding overwrites the embedding vector, model, and timestamp in a
// single statement. The vector column is a BLOB of JSON-encoded float32s;
// this method is the only write path for it, so callers never touch the
// raw representation.
func (r *NoteRepo) SetEmbedding(ctx context.Context, noteID string, vector []float32, model string) error {
	if len(vector) == 0 {
		return fmt.Errorf("embedding vector must not be empty")
	}
	blob, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("failed to encode embedding vector: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET embedding = ?, embedding_model = ?, embedding_generated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		blob, model, noteID,
	)
	if err != nil {
		return fmt.Errorf("failed to set embedding: %w", err)
	}
	return requireRow(res)
}

// SetSummary overwrites the summary text, key points, token cost, and
// timestamp in a single statement.
func (r *NoteRepo) SetSummary(ctx context.Context, noteID, summary string, keyPoints []string, tokensUsed int) error {
	if keyPoints == nil {
		keyPoints = []string{}
	}
	points, err := json.Marshal(keyPoints)
	if err != nil {
		return fmt.Errorf("failed to encode key points: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET summary = ?, key_points = ?, summary_tokens_used = ?, summary_generated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		summary, string(points), tokensUsed, noteID,
	)
	if err != nil {
		return fmt.Errorf("failed to set summary: %w", err)
	}
	return requireRow(res)
}

// SetTopics overwrites the topics JSON blob, token cost, and timestamp in
// a single statement.
func (r *NoteRepo) SetTopics(ctx context.Context, noteID, topicsJSON string, tokensUsed int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET topics = ?, topics_tokens_used = ?, topics_generated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		topicsJSON, tokensUsed, noteID,
	)
	if err != nil {
		return fmt.Errorf("failed to set topics: %w", err)
	}
	return requireRow(res)
}

// SetTranscriptionJob marks a note as having a pending transcription job.
func (r *NoteRepo) SetTranscriptionJob(ctx context.Context, noteID, jobID, storageKey string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET transcription_job_id = ?, transcription_status = ?, transcription_storage_key = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		jobID, TranscriptionInProgress, storageKey, noteID,
	)
	if err != nil {
		return fmt.Errorf("failed to set transcription job: %w", err)
	}
	return requireRow(res)
}

// FinishTranscription moves a transcription to a terminal status. On
// completion the note content is replaced with the transcript body and
// the confidence recorded when the service reported one. Terminal
// statuses are never overwritten back to in_progress by this method.
func (r *NoteRepo) FinishTranscription(ctx context.Context, noteID, status, content string, confidence *float64) error {
	if status != TranscriptionCompleted && status != TranscriptionFailed {
		return fmt.Errorf("status %q is not terminal", status)
	}

	var res sql.Result
	var err error
	if status == TranscriptionCompleted {
		res, err = r.db.ExecContext(ctx,
			`UPDATE notes SET transcription_status = ?, content = ?, transcription_confidence = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			status, content, confidence, noteID,
		)
	} else {
		res, err = r.db.ExecContext(ctx,
			`UPDATE notes SET transcription_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			status, noteID,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to finish transcription: %w", err)
	}
	return requireRow(res)
}

// ListMissingEmbeddings returns a user's notes that have no stored embedding.
func (r *NoteRepo) ListMissingEmbeddings(ctx context.Context, userID string) ([]NoteRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE user_id = ? AND embedding IS NULL ORDER BY created_at ASC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes missing embeddings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return collectNotes(rows)
}

// SearchText performs a case-insensitive substring match across title,
// content, and summary, most recently updated first. Used as the
// degraded path when vector search is unavailable.
func (r *NoteRepo) SearchText(ctx context.Context, userID, query string, limit int, excludeID string) ([]NoteRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	pattern := "%" + strings.ToLower(query) + "%"

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+noteColumns+` FROM notes
		 WHERE user_id = ? AND id != ?
		   AND (LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(COALESCE(summary, '')) LIKE ?)
		 ORDER BY updated_at DESC LIMIT ?`,
		userID, excludeID, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return collectNotes(rows)
}

// scanner abstracts *sql.Row and *sql.Rows for scanNote.
type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (*NoteRecord, error) {
	var note NoteRecord
	var summary, keyPoints, embeddingModel, topics sql.NullString
	var summaryTokens, topicsTokens sql.NullInt64
	var summaryAt, embeddingAt, topicsAt sql.NullString
	var embeddingBlob []byte
	var jobID, storageKey sql.NullString
	var confidence sql.NullFloat64
	var createdAt, updatedAt string

	err := s.Scan(
		&note.ID, &note.UserID, &note.Title, &note.Content,
		&summary, &keyPoints, &summaryTokens, &summaryAt,
		&embeddingBlob, &embeddingModel, &embeddingAt,
		&topics, &topicsTokens, &topicsAt,
		&jobID, &note.TranscriptionStatus, &storageKey, &confidence,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	note.Summary = nullString(summary)
	note.KeyPoints = nullString(keyPoints)
	note.SummaryTokensUsed = nullInt(summaryTokens)
	note.EmbeddingModel = nullString(embeddingModel)
	note.Topics = nullString(topics)
	note.TopicsTokensUsed = nullInt(topicsTokens)
	note.TranscriptionJobID = nullString(jobID)
	note.TranscriptionStorageKey = nullString(storageKey)
	if confidence.Valid {
		note.TranscriptionConfidence = &confidence.Float64
	}

	if len(embeddingBlob) > 0 {
		if err := json.Unmarshal(embeddingBlob, &note.Embedding); err != nil {
			return nil, fmt.Errorf("failed to decode embedding vector: %w", err)
		}
	}

	if note.SummaryGeneratedAt, err = nullTime(summaryAt); err != nil {
		return nil, err
	}
	if note.EmbeddingGeneratedAt, err = nullTime(embeddingAt); err != nil {
		return nil, err
	}
	if note.TopicsGeneratedAt, err = nullTime(topicsAt); err != nil {
		return nil, err
	}

	if note.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	if note.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
	}

	return &note, nil
}

func collectNotes(rows *sql.Rows) ([]NoteRecord, error) {
	var notes []NoteRecord
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return notes, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := parseTimestamp(v.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse timestamp: %w", err)
	}
	return &t, nil
}
