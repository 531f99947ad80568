// Package transcribe manages asynchronous voice transcription jobs:
// uploading audio to object storage, starting an external job, and
// reconciling polled job status into a terminal result.
package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"brainer/internal/contextutil"
	"brainer/internal/objectstore"
)

// transcriptPrefix is where the external service writes result documents.
const transcriptPrefix = "transcripts/"

// Manager runs the transcription state machine for one job at a time.
// It holds no per-job state between calls; everything lives on the note
// row and in the external job system.
type Manager struct {
	api   JobAPI
	store objectstore.Store

	// Bounded retry loop for the transcript object lagging behind the
	// job completion signal. Both come from configuration.
	fetchRetries int
	fetchDelay   time.Duration

	logger *slog.Logger
	sleep  func(time.Duration) // replaceable in tests
	now    func() time.Time
}

// NewManager creates a new transcription manager.
func NewManager(api JobAPI, store objectstore.Store, fetchRetries int, fetchDelay time.Duration) *Manager {
	return &Manager{
		api:          api,
		store:        store,
		fetchRetries: fetchRetries,
		fetchDelay:   fetchDelay,
		logger:       slog.Default(),
		sleep:        time.Sleep,
		now:          time.Now,
	}
}

// Start uploads the audio buffer and requests an external transcription
// job referencing it. Returns the generated job id and the storage key
// of the uploaded audio.
func (m *Manager) Start(ctx context.Context, audio []byte, filename, userID string) (*StartedJob, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(audio) == 0 {
		return nil, fmt.Errorf("audio buffer is empty")
	}
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	key := fmt.Sprintf("voice/%s/%d-%s", userID, m.now().Unix(), filename)
	if err := m.store.Put(ctx, key, audio, "application/octet-stream"); err != nil {
		return nil, fmt.Errorf("failed to upload audio: %w", err)
	}

	jobID := uuid.New().String()
	if err := m.api.StartJob(ctx, jobID, key); err != nil {
		// The uploaded audio is orphaned; remove it best-effort.
		if delErr := m.store.Delete(ctx, key); delErr != nil {
			logger.WarnContext(ctx, "failed to remove orphaned audio", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to start transcription job: %w", err)
	}

	logger.InfoContext(ctx, "transcription job started", "job_id", jobID, "key", key)
	return &StartedJob{JobID: jobID, StorageKey: key}, nil
}

// Result reconciles the current state of a job. Transport and parsing
// failures while fetching a completed job's transcript are captured in
// Result.Err with the status left in progress, so a later poll can
// succeed once the underlying condition clears.
func (m *Manager) Result(ctx context.Context, jobID string) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	job, err := m.api.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job status: %w", err)
	}

	switch job.Status {
	case StatusInProgress:
		return &Result{Status: StatusInProgress}, nil
	case StatusFailed:
		return &Result{Status: StatusFailed, Err: job.FailureReason}, nil
	}

	// Completed: fetch and parse the transcript document.
	doc, err := m.fetchTranscriptDoc(ctx, job)
	if err != nil {
		logger.WarnContext(ctx, "transcript not yet readable", "job_id", jobID, "error", err)
		return &Result{Status: StatusInProgress, Err: err.Error()}, nil
	}

	transcript, confidence, err := parseTranscript(doc)
	if err != nil {
		logger.WarnContext(ctx, "transcript document unparsable", "job_id", jobID, "error", err)
		return &Result{Status: StatusInProgress, Err: err.Error()}, nil
	}

	return &Result{
		Status:     StatusCompleted,
		Transcript: transcript,
		Confidence: confidence,
	}, nil
}

// fetchTranscriptDoc reads the transcript from the job's declared output
// location, falling back to a prefix listing keyed by job id with a
// bounded number of fixed-delay retries (storage eventual consistency).
func (m *Manager) fetchTranscriptDoc(ctx context.Context, job *Job) ([]byte, error) {
	if job.OutputKey != "" {
		doc, err := m.store.Get(ctx, job.OutputKey)
		if err == nil {
			return doc, nil
		}
	}

	var lastErr error
	prefix := transcriptPrefix + job.ID
	for attempt := 0; attempt < m.fetchRetries; attempt++ {
		if attempt > 0 {
			m.sleep(m.fetchDelay)
		}
		keys, err := m.store.ListPrefix(ctx, prefix)
		if err != nil {
			lastErr = err
			continue
		}
		if len(keys) == 0 {
			lastErr = fmt.Errorf("no transcript objects under %s", prefix)
			continue
		}
		doc, err := m.store.Get(ctx, keys[0])
		if err != nil {
			lastErr = err
			continue
		}
		return doc, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("transcript for job %s unavailable", job.ID)
	}
	return nil, fmt.Errorf("failed to fetch transcript: %w", lastErr)
}

// Cleanup deletes the original audio object and any transcript objects
// produced by the job. All errors are swallowed; cleanup is hygiene,
// never load-bearing.
func (m *Manager) Cleanup(ctx context.Context, storageKey, jobID string) {
	logger := contextutil.LoggerFromContext(ctx)

	if storageKey != "" {
		if err := m.store.Delete(ctx, storageKey); err != nil {
			logger.WarnContext(ctx, "failed to delete audio object", "key", storageKey, "error", err)
		}
	}

	if jobID == "" {
		return
	}
	keys, err := m.store.ListPrefix(ctx, transcriptPrefix+jobID)
	if err != nil {
		logger.WarnContext(ctx, "failed to list transcript objects", "job_id", jobID, "error", err)
		return
	}
	for _, key := range keys {
		if err := m.store.Delete(ctx, key); err != nil {
			logger.WarnContext(ctx, "failed to delete transcript object", "key", key, "error", err)
		}
	}
}

// transcriptDocument is the service's result document shape.
type transcriptDocument struct {
	JobName string `json:"job_name"`
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
		Items []struct {
			Type         string `json:"type"`
			Alternatives []struct {
				Confidence string `json:"confidence"`
				Content    string `json:"content"`
			} `json:"alternatives"`
		} `json:"items"`
	} `json:"results"`
}

// parseTranscript extracts the transcript text and the average
// confidence over all items that carry a confidence value. With no
// scored items, no confidence is reported.
func parseTranscript(doc []byte) (string, *float64, error) {
	var parsed transcriptDocument
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return "", nil, fmt.Errorf("failed to parse transcript document: %w", err)
	}

	if len(parsed.Results.Transcripts) == 0 {
		return "", nil, fmt.Errorf("transcript document has no transcript")
	}
	transcript := parsed.Results.Transcripts[0].Transcript

	var sum float64
	var count int
	for _, item := range parsed.Results.Items {
		if len(item.Alternatives) == 0 {
			continue
		}
		raw := item.Alternatives[0].Confidence
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		sum += value
		count++
	}

	if count == 0 {
		return transcript, nil, nil
	}
	avg := sum / float64(count)
	return transcript, &avg, nil
}
