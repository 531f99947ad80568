package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"brainer/internal/contextutil"
	"brainer/internal/storage"
	"brainer/internal/usage"
)

const (
	voiceNoteTitle      = "Voice Note"
	screenshotNoteTitle = "Screenshot"

	// voiceProcessingBody is the placeholder content shown while the
	// transcription job runs; it is replaced on reconciliation.
	voiceProcessingBody = "🎤 Voice note uploaded. Transcription is in progress..."

	// voiceUnavailableBody is embedded when no transcription backend is
	// configured; no job is started in that case.
	voiceUnavailableBody = "🎤 Voice note uploaded, but transcription is not available on this server. The audio was not processed."

	// screenshotPlaceholderBody is used when OCR is unavailable, fails,
	// or extracts no text.
	screenshotPlaceholderBody = "📷 Screenshot"
)

// UploadVoice creates a placeholder note for an uploaded audio buffer
// and starts an asynchronous transcription job against it. Without a
// transcription backend the note carries a static explanatory message
// and no job.
func (s *service) UploadVoice(ctx context.Context, userID string, audio []byte, filename string) (*Note, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(audio) == 0 {
		return nil, &ValidationError{Field: "audio", Message: "audio file is required"}
	}
	if filename == "" {
		filename = "recording"
	}

	if err := s.ledger.Allow(ctx, userID, usage.ResourceTranscriptions); err != nil {
		return nil, err
	}

	if s.transcriber == nil {
		rec := &storage.NoteRecord{
			UserID:  userID,
			Title:   voiceNoteTitle,
			Content: voiceUnavailableBody,
		}
		if err := s.notes.Create(ctx, rec); err != nil {
			return nil, err
		}
		logger.WarnContext(ctx, "voice upload accepted without transcription backend", "note_id", rec.ID)
		return s.load(ctx, userID, rec.ID, nil)
	}

	rec := &storage.NoteRecord{
		UserID:  userID,
		Title:   fmt.Sprintf("%s %s", voiceNoteTitle, time.Now().Format("2006-01-02 15:04")),
		Content: voiceProcessingBody,
	}
	if err := s.notes.Create(ctx, rec); err != nil {
		return nil, err
	}

	started, err := s.transcriber.Start(ctx, audio, filename, userID)
	if err != nil {
		// Without a job the placeholder note is useless; remove it.
		if delErr := s.notes.Delete(ctx, rec.ID); delErr != nil {
			logger.WarnContext(ctx, "failed to remove placeholder note", "note_id", rec.ID, "error", delErr)
		}
		return nil, err
	}

	if err := s.notes.SetTranscriptionJob(ctx, rec.ID, started.JobID, started.StorageKey); err != nil {
		return nil, err
	}
	if err := s.ledger.Record(ctx, userID, usage.ResourceTranscriptions); err != nil {
		logger.WarnContext(ctx, "failed to record transcription usage", "user_id", userID, "error", err)
	}

	logger.InfoContext(ctx, "voice note created", "note_id", rec.ID, "job_id", started.JobID)
	return s.load(ctx, userID, rec.ID, nil)
}

// UploadScreenshot creates a note from a screenshot via OCR. OCR
// failures and empty extractions fall back to a placeholder body;
// non-empty text is enriched best-effort with an embedding and a
// summary, each swallowing its own failure.
func (s *service) UploadScreenshot(ctx context.Context, userID string, image []byte, contentType string) (*Note, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(image) == 0 {
		return nil, &ValidationError{Field: "image", Message: "image file is required"}
	}

	if err := s.ledger.Allow(ctx, userID, usage.ResourceScreenshots); err != nil {
		return nil, err
	}

	content := screenshotPlaceholderBody
	if s.ocr != nil {
		text, err := s.ocr.ExtractText(ctx, image, contentType)
		if err != nil {
			logger.WarnContext(ctx, "screenshot OCR failed", "error", err)
		} else if strings.TrimSpace(text) != "" {
			content = text
		}
	}

	rec := &storage.NoteRecord{
		UserID:  userID,
		Title:   fmt.Sprintf("%s %s", screenshotNoteTitle, time.Now().Format("2006-01-02 15:04")),
		Content: content,
	}
	if err := s.notes.Create(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.ledger.Record(ctx, userID, usage.ResourceScreenshots); err != nil {
		logger.WarnContext(ctx, "failed to record screenshot usage", "user_id", userID, "error", err)
	}

	if content != screenshotPlaceholderBody {
		s.enricher.TryEmbed(ctx, rec)
		s.enricher.TrySummarize(ctx, rec)
	}

	logger.InfoContext(ctx, "screenshot note created", "note_id", rec.ID, "ocr_text", content != screenshotPlaceholderBody)
	return s.load(ctx, userID, rec.ID, nil)
}
