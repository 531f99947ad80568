package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// TagStore defines the interface for tag storage operations.
type TagStore interface {
	// GetOrCreate resolves a tag by user and name, creating it if needed.
	GetOrCreate(ctx context.Context, userID, name, color string) (*TagRecord, error)
	// ListForNote lists the tags associated with a note.
	ListForNote(ctx context.Context, noteID string) ([]TagRecord, error)
	// ReplaceForNote replaces all tag associations of a note with the given tag ids.
	ReplaceForNote(ctx context.Context, noteID string, tagIDs []string) error
}

// TagRepo provides methods for tag operations.
// It implements the TagStore interface.
type TagRepo struct {
	db *sql.DB
}

// NewTagRepo creates a new TagRepo.
func NewTagRepo(db *sql.DB) *TagRepo {
	return &TagRepo{db: db}
}

// GetOrCreate resolves a tag by user and name, creating it if needed.
// An existing tag keeps its color; the given color only applies on create.
func (r *TagRepo) GetOrCreate(ctx context.Context, userID, name, color string) (*TagRecord, error) {
	tag, err := r.getByName(ctx, userID, name)
	if err == nil {
		return tag, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	if color == "" {
		color = "#888888"
	}
	id := uuid.New().String()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO tags (id, user_id, name, color) VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, name) DO NOTHING`,
		id, userID, name, color,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert tag: %w", err)
	}

	// Re-read to cover the conflict path where another writer won.
	return r.getByName(ctx, userID, name)
}

func (r *TagRepo) getByName(ctx context.Context, userID, name string) (*TagRecord, error) {
	var tag TagRecord
	var createdAt string
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, color, created_at FROM tags WHERE user_id = ? AND name = ?",
		userID, name,
	).Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.Color, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tag: %w", err)
	}
	if tag.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse tag created_at: %w", err)
	}
	return &tag, nil
}

// ListForNote lists the tags associated with a note.
func (r *TagRepo) ListForNote(ctx context.Context, noteID string) ([]TagRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.user_id, t.name, t.color, t.created_at
		 FROM tags t JOIN note_tags nt ON nt.tag_id = t.id
		 WHERE nt.note_id = ? ORDER BY t.name`,
		noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list note tags: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var tags []TagRecord
	for rows.Next() {
		var tag TagRecord
		var createdAt string
		if err := rows.Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.Color, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		if tag.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse tag created_at: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return tags, nil
}

// ReplaceForNote replaces all tag associations of a note with the given
// tag ids. Associations are fully replaced rather than diffed.
func (r *TagRepo) ReplaceForNote(ctx context.Context, noteID string, tagIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tag transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM note_tags WHERE note_id = ?", noteID); err != nil {
		return fmt.Errorf("failed to clear tag associations: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)", noteID, tagID); err != nil {
			return fmt.Errorf("failed to associate tag %s: %w", tagID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tag associations: %w", err)
	}
	return nil
}
