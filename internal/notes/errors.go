package notes

import (
	"errors"

	"brainer/internal/enrich"
)

var (
	// ErrNotFound is returned when a note does not exist or belongs to
	// another user. Ownership mismatches are indistinguishable from
	// absence on purpose.
	ErrNotFound = errors.New("note not found")
	// ErrTranscriptionUnavailable is returned when a transcription
	// status is requested for a note without a job.
	ErrTranscriptionUnavailable = errors.New("note has no transcription job")
)

// ValidationError is the precondition failure type shared with the
// enrichment layer, so handlers classify both with one check.
type ValidationError = enrich.ValidationError
