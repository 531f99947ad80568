// Package notes orchestrates the note lifecycle: CRUD, uploads, and the
// derived-data jobs each event triggers.
package notes

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_service.go -package=mocks brainer/internal/notes Service
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_collaborators.go -package=mocks brainer/internal/notes Enricher,Transcriber

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"brainer/internal/contextutil"
	"brainer/internal/enrich"
	"brainer/internal/ocr"
	"brainer/internal/storage"
	"brainer/internal/transcribe"
	"brainer/internal/usage"
)

// Transcriber is the transcription manager from this service's
// perspective. A nil Transcriber means the capability is unavailable.
type Transcriber interface {
	Start(ctx context.Context, audio []byte, filename, userID string) (*transcribe.StartedJob, error)
	Result(ctx context.Context, jobID string) (*transcribe.Result, error)
	Cleanup(ctx context.Context, storageKey, jobID string)
}

// Enricher is the derived-data generator from this service's perspective.
type Enricher interface {
	GenerateEmbedding(ctx context.Context, note *storage.NoteRecord, force bool) (*enrich.EmbeddingResult, error)
	GenerateSummary(ctx context.Context, note *storage.NoteRecord, force bool) (*enrich.SummaryResult, error)
	ExtractTopics(ctx context.Context, note *storage.NoteRecord, force bool) (*enrich.TopicsResult, error)
	TryEmbed(ctx context.Context, note *storage.NoteRecord) bool
	TrySummarize(ctx context.Context, note *storage.NoteRecord) bool
	RemoveFromIndex(ctx context.Context, noteID string)
	BackfillEmbeddings(ctx context.Context, userID string) (*enrich.BackfillStats, error)
}

// Service is the note lifecycle orchestrator.
type Service interface {
	Create(ctx context.Context, userID string, req CreateRequest) (*Note, error)
	Get(ctx context.Context, userID, noteID string) (*Note, error)
	List(ctx context.Context, userID string) ([]Note, error)
	Update(ctx context.Context, userID, noteID string, req UpdateRequest) (*Note, error)
	Delete(ctx context.Context, userID, noteID string) error
	UploadVoice(ctx context.Context, userID string, audio []byte, filename string) (*Note, error)
	UploadScreenshot(ctx context.Context, userID string, image []byte, contentType string) (*Note, error)
	Summarize(ctx context.Context, userID, noteID string, force bool) (*enrich.SummaryResult, error)
	Embed(ctx context.Context, userID, noteID string, force bool) (*enrich.EmbeddingResult, error)
	Topics(ctx context.Context, userID, noteID string, force bool) (*enrich.TopicsResult, error)
	TranscriptionStatus(ctx context.Context, userID, noteID string) (*TranscriptionState, error)
	BackfillEmbeddings(ctx context.Context, userID string) (*enrich.BackfillStats, error)
}

// service implements Service.
type service struct {
	notes       storage.NoteStore
	tags        storage.TagStore
	enricher    Enricher
	transcriber Transcriber // nil when unavailable
	ocr         ocr.Extractor
	ledger      usage.Ledger
	logger      *slog.Logger
}

// NewService creates the note lifecycle orchestrator. transcriber and
// ocrClient may be nil when those capabilities are not configured.
func NewService(
	noteRepo storage.NoteStore,
	tagRepo storage.TagStore,
	enricher Enricher,
	transcriber Transcriber,
	ocrClient ocr.Extractor,
	ledger usage.Ledger,
) Service {
	return &service{
		notes:       noteRepo,
		tags:        tagRepo,
		enricher:    enricher,
		transcriber: transcriber,
		ocr:         ocrClient,
		ledger:      ledger,
		logger:      slog.Default(),
	}
}

// Create persists a user-authored note and best-effort embeds it. The
// create never fails because enrichment failed.
func (s *service) Create(ctx context.Context, userID string, req CreateRequest) (*Note, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Content) == "" {
		return nil, &ValidationError{Field: "content", Message: "title or content is required"}
	}

	if err := s.ledger.Allow(ctx, userID, usage.ResourceNotes); err != nil {
		return nil, err
	}

	rec := &storage.NoteRecord{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := s.notes.Create(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.ledger.Record(ctx, userID, usage.ResourceNotes); err != nil {
		logger.WarnContext(ctx, "failed to record note usage", "user_id", userID, "error", err)
	}

	tags, err := s.applyTags(ctx, userID, rec.ID, req.Tags)
	if err != nil {
		return nil, err
	}

	s.enricher.TryEmbed(ctx, rec)

	return s.load(ctx, userID, rec.ID, tags)
}

// Get fetches one of the user's notes.
func (s *service) Get(ctx context.Context, userID, noteID string) (*Note, error) {
	rec, err := s.owned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	tags, err := s.tags.ListForNote(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	return toNote(rec, tags), nil
}

// List lists the user's notes, newest first.
func (s *service) List(ctx context.Context, userID string) ([]Note, error) {
	recs, err := s.notes.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]Note, 0, len(recs))
	for i := range recs {
		tags, err := s.tags.ListForNote(ctx, recs[i].ID)
		if err != nil {
			return nil, err
		}
		result = append(result, *toNote(&recs[i], tags))
	}
	return result, nil
}

// Update persists edits. When the content changed and still passes the
// classifier gate, the embedding is regenerated best-effort. Tag
// associations are fully replaced when provided.
func (s *service) Update(ctx context.Context, userID, noteID string, req UpdateRequest) (*Note, error) {
	rec, err := s.owned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	contentChanged := false
	if req.Title != nil {
		rec.Title = *req.Title
	}
	if req.Content != nil && *req.Content != rec.Content {
		rec.Content = *req.Content
		contentChanged = true
	}

	if err := s.notes.Update(ctx, rec); err != nil {
		return nil, err
	}

	var tags []storage.TagRecord
	if req.Tags != nil {
		tags, err = s.applyTags(ctx, userID, rec.ID, *req.Tags)
		if err != nil {
			return nil, err
		}
	} else {
		tags, err = s.tags.ListForNote(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
	}

	if contentChanged {
		s.enricher.TryEmbed(ctx, rec)
	}

	return s.load(ctx, userID, rec.ID, tags)
}

// Delete removes the note. Tag associations go first inside the same
// transaction, so no partial state is ever user-visible. Index and
// storage cleanup are best-effort.
func (s *service) Delete(ctx context.Context, userID, noteID string) error {
	rec, err := s.owned(ctx, userID, noteID)
	if err != nil {
		return err
	}

	if err := s.notes.Delete(ctx, rec.ID); err != nil {
		return err
	}

	s.enricher.RemoveFromIndex(ctx, rec.ID)

	if s.transcriber != nil && (rec.TranscriptionStorageKey != nil || rec.TranscriptionJobID != nil) {
		storageKey, jobID := "", ""
		if rec.TranscriptionStorageKey != nil {
			storageKey = *rec.TranscriptionStorageKey
		}
		if rec.TranscriptionJobID != nil {
			jobID = *rec.TranscriptionJobID
		}
		s.transcriber.Cleanup(ctx, storageKey, jobID)
	}
	return nil
}

// Summarize generates or returns the note's summary per the force flag.
func (s *service) Summarize(ctx context.Context, userID, noteID string, force bool) (*enrich.SummaryResult, error) {
	rec, err := s.owned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	return s.enricher.GenerateSummary(ctx, rec, force)
}

// Embed generates or returns the note's embedding per the force flag.
func (s *service) Embed(ctx context.Context, userID, noteID string, force bool) (*enrich.EmbeddingResult, error) {
	rec, err := s.owned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	return s.enricher.GenerateEmbedding(ctx, rec, force)
}

// Topics extracts or returns the note's topics per the force flag.
func (s *service) Topics(ctx context.Context, userID, noteID string, force bool) (*enrich.TopicsResult, error) {
	rec, err := s.owned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	return s.enricher.ExtractTopics(ctx, rec, force)
}

// BackfillEmbeddings embeds all of the user's notes lacking one.
func (s *service) BackfillEmbeddings(ctx context.Context, userID string) (*enrich.BackfillStats, error) {
	return s.enricher.BackfillEmbeddings(ctx, userID)
}

// owned loads a note and hides other users' notes behind ErrNotFound.
func (s *service) owned(ctx context.Context, userID, noteID string) (*storage.NoteRecord, error) {
	rec, err := s.notes.GetByID(ctx, noteID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, ErrNotFound
	}
	return rec, nil
}

// applyTags resolves tag inputs and replaces the note's associations.
func (s *service) applyTags(ctx context.Context, userID, noteID string, inputs []TagInput) ([]storage.TagRecord, error) {
	if inputs == nil {
		return s.tags.ListForNote(ctx, noteID)
	}

	tagIDs := make([]string, 0, len(inputs))
	resolved := make([]storage.TagRecord, 0, len(inputs))
	for _, input := range inputs {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			continue
		}
		tag, err := s.tags.GetOrCreate(ctx, userID, name, input.Color)
		if err != nil {
			return nil, err
		}
		tagIDs = append(tagIDs, tag.ID)
		resolved = append(resolved, *tag)
	}

	if err := s.tags.ReplaceForNote(ctx, noteID, tagIDs); err != nil {
		return nil, err
	}
	return resolved, nil
}

// load re-reads a note after mutation so derived fields are fresh.
func (s *service) load(ctx context.Context, userID, noteID string, tags []storage.TagRecord) (*Note, error) {
	rec, err := s.owned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	return toNote(rec, tags), nil
}
