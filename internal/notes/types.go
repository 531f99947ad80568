package notes

import (
	"encoding/json"
	"time"

	"brainer/internal/storage"
)

// Tag is the API view of a tag.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TagInput names a tag to associate with a note, creating it if needed.
type TagInput struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Note is the API view of a note with its derived fields.
type Note struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Tags    []Tag  `json:"tags"`

	HasSummary        bool       `json:"has_summary"`
	Summary           *string    `json:"summary,omitempty"`
	KeyPoints         []string   `json:"key_points,omitempty"`
	SummaryTokensUsed *int       `json:"summary_tokens_used,omitempty"`
	SummaryAt         *time.Time `json:"summary_generated_at,omitempty"`

	HasEmbedding   bool       `json:"has_embedding"`
	EmbeddingModel *string    `json:"embedding_model,omitempty"`
	EmbeddingAt    *time.Time `json:"embedding_generated_at,omitempty"`

	HasTopics bool            `json:"has_topics"`
	Topics    json.RawMessage `json:"topics,omitempty"`
	TopicsAt  *time.Time      `json:"topics_generated_at,omitempty"`

	TranscriptionStatus     string   `json:"transcription_status"`
	TranscriptionJobID      *string  `json:"transcription_job_id,omitempty"`
	TranscriptionConfidence *float64 `json:"transcription_confidence,omitempty"`
	IsProcessing            bool     `json:"is_processing"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRequest is the payload for creating a note directly.
type CreateRequest struct {
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Tags    []TagInput `json:"tags,omitempty"`
}

// UpdateRequest is the payload for editing a note. Nil fields are left
// unchanged; a non-nil Tags fully replaces the associations.
type UpdateRequest struct {
	Title   *string     `json:"title,omitempty"`
	Content *string     `json:"content,omitempty"`
	Tags    *[]TagInput `json:"tags,omitempty"`
}

// TranscriptionState is the result of one transcription status check.
type TranscriptionState struct {
	Status     string   `json:"status"`
	Confidence *float64 `json:"confidence,omitempty"`
	Error      string   `json:"error,omitempty"`
	Note       *Note    `json:"note,omitempty"`
}

// toNote converts a storage record plus its tags into the API view.
func toNote(rec *storage.NoteRecord, tags []storage.TagRecord) *Note {
	note := &Note{
		ID:                      rec.ID,
		Title:                   rec.Title,
		Content:                 rec.Content,
		Tags:                    make([]Tag, 0, len(tags)),
		HasSummary:              rec.HasSummary(),
		Summary:                 rec.Summary,
		SummaryTokensUsed:       rec.SummaryTokensUsed,
		SummaryAt:               rec.SummaryGeneratedAt,
		HasEmbedding:            rec.HasEmbedding(),
		EmbeddingModel:          rec.EmbeddingModel,
		EmbeddingAt:             rec.EmbeddingGeneratedAt,
		HasTopics:               rec.HasTopics(),
		TopicsAt:                rec.TopicsGeneratedAt,
		TranscriptionStatus:     rec.TranscriptionStatus,
		TranscriptionJobID:      rec.TranscriptionJobID,
		TranscriptionConfidence: rec.TranscriptionConfidence,
		IsProcessing:            rec.IsProcessing(),
		CreatedAt:               rec.CreatedAt,
		UpdatedAt:               rec.UpdatedAt,
	}

	if rec.KeyPoints != nil {
		_ = json.Unmarshal([]byte(*rec.KeyPoints), &note.KeyPoints)
	}
	if rec.Topics != nil {
		note.Topics = json.RawMessage(*rec.Topics)
	}

	for _, tag := range tags {
		note.Tags = append(note.Tags, Tag{ID: tag.ID, Name: tag.Name, Color: tag.Color})
	}
	return note
}
