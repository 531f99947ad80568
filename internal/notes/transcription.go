package notes

import (
	"context"
	"fmt"
	"strings"

	"brainer/internal/contextutil"
	"brainer/internal/storage"
	"brainer/internal/transcribe"
)

const (
	// transcriptHeading opens the note body built from a finished
	// transcript. Polling clients use its presence to stop polling.
	transcriptHeading = "## Transcript"

	// lowConfidenceMarker is appended when the averaged confidence falls
	// below the threshold; its presence distinguishes
	// transcribed-with-issues from a clean transcript.
	lowConfidenceMarker = "> ⚠️ Low transcription confidence. Some portions may be inaccurate."

	lowConfidenceThreshold = 0.8
)

// TranscriptionStatus reconciles the current state of a note's
// transcription job. Terminal statuses are returned from the stored row
// without re-polling the external service. A completed job replaces the
// note content with the transcript body, cleans up the audio and
// transcript objects, and re-runs the embedding gate on the new text.
func (s *service) TranscriptionStatus(ctx context.Context, userID, noteID string) (*TranscriptionState, error) {
	logger := contextutil.LoggerFromContext(ctx)

	rec, err := s.owned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	if rec.TranscriptionJobID == nil {
		return nil, ErrTranscriptionUnavailable
	}

	// Terminal states never restart.
	if rec.TranscriptionStatus == storage.TranscriptionCompleted || rec.TranscriptionStatus == storage.TranscriptionFailed {
		return s.state(ctx, userID, rec.ID, rec.TranscriptionStatus, "")
	}

	if s.transcriber == nil {
		return nil, ErrTranscriptionUnavailable
	}

	result, err := s.transcriber.Result(ctx, *rec.TranscriptionJobID)
	if err != nil {
		return nil, fmt.Errorf("failed to check transcription job: %w", err)
	}

	switch result.Status {
	case transcribe.StatusInProgress:
		return &TranscriptionState{Status: storage.TranscriptionInProgress, Error: result.Err}, nil

	case transcribe.StatusFailed:
		if err := s.notes.FinishTranscription(ctx, rec.ID, storage.TranscriptionFailed, "", nil); err != nil {
			return nil, err
		}
		s.cleanupJob(ctx, rec)
		logger.WarnContext(ctx, "transcription failed", "note_id", rec.ID, "reason", result.Err)
		return s.state(ctx, userID, rec.ID, storage.TranscriptionFailed, result.Err)

	case transcribe.StatusCompleted:
		content := buildTranscriptContent(result.Transcript, result.Confidence)
		if err := s.notes.FinishTranscription(ctx, rec.ID, storage.TranscriptionCompleted, content, result.Confidence); err != nil {
			return nil, err
		}
		s.cleanupJob(ctx, rec)

		rec.Content = content
		s.enricher.TryEmbed(ctx, rec)

		logger.InfoContext(ctx, "transcription completed", "note_id", rec.ID, "confidence", result.Confidence)
		return s.state(ctx, userID, rec.ID, storage.TranscriptionCompleted, "")

	default:
		return nil, fmt.Errorf("unexpected transcription status %q", result.Status)
	}
}

// state builds a TranscriptionState with the freshly loaded note attached.
func (s *service) state(ctx context.Context, userID, noteID, status, errMsg string) (*TranscriptionState, error) {
	note, err := s.Get(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	return &TranscriptionState{
		Status:     status,
		Confidence: note.TranscriptionConfidence,
		Error:      errMsg,
		Note:       note,
	}, nil
}

// cleanupJob removes the job's storage artifacts best-effort.
func (s *service) cleanupJob(ctx context.Context, rec *storage.NoteRecord) {
	if s.transcriber == nil {
		return
	}
	storageKey, jobID := "", ""
	if rec.TranscriptionStorageKey != nil {
		storageKey = *rec.TranscriptionStorageKey
	}
	if rec.TranscriptionJobID != nil {
		jobID = *rec.TranscriptionJobID
	}
	s.transcriber.Cleanup(ctx, storageKey, jobID)
}

// buildTranscriptContent renders the final note body for a completed
// transcription, flagging low-confidence results.
func buildTranscriptContent(transcript string, confidence *float64) string {
	var b strings.Builder
	b.WriteString(transcriptHeading)
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(transcript))
	if confidence != nil && *confidence < lowConfidenceThreshold {
		b.WriteString("\n\n")
		b.WriteString(lowConfidenceMarker)
	}
	return b.String()
}
