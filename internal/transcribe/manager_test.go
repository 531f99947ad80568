package transcribe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"brainer/internal/objectstore/mocks"
)

// stubJobAPI is a hand stub: the generated JobAPI mock lives in a
// package that imports this one, which an in-package test cannot use.
type stubJobAPI struct {
	startFn func(ctx context.Context, jobID, mediaKey string) error
	getFn   func(ctx context.Context, jobID string) (*Job, error)
}

func (s *stubJobAPI) StartJob(ctx context.Context, jobID, mediaKey string) error {
	return s.startFn(ctx, jobID, mediaKey)
}

func (s *stubJobAPI) GetJob(ctx context.Context, jobID string) (*Job, error) {
	return s.getFn(ctx, jobID)
}

func newTestManager(api JobAPI, store *mocks.MockStore) *Manager {
	m := NewManager(api, store, 3, 2*time.Second)
	m.sleep = func(time.Duration) {}
	m.now = func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }
	return m
}

func TestManager_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	var startedJobID, startedKey string
	api := &stubJobAPI{
		startFn: func(_ context.Context, jobID, mediaKey string) error {
			startedJobID, startedKey = jobID, mediaKey
			return nil
		},
	}
	m := newTestManager(api, store)

	wantKey := fmt.Sprintf("voice/user-1/%d-recording.webm", m.now().Unix())
	store.EXPECT().Put(gomock.Any(), wantKey, []byte("audio-bytes"), "application/octet-stream").Return(nil)

	started, err := m.Start(context.Background(), []byte("audio-bytes"), "recording.webm", "user-1")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if started.JobID == "" {
		t.Error("Start() returned empty job id")
	}
	if started.StorageKey != wantKey {
		t.Errorf("storage key = %q, want %q", started.StorageKey, wantKey)
	}
	if startedJobID != started.JobID || startedKey != wantKey {
		t.Errorf("job started with %q/%q, want %q/%q", startedJobID, startedKey, started.JobID, wantKey)
	}
}

func TestManager_Start_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	m := newTestManager(&stubJobAPI{}, store)

	if _, err := m.Start(context.Background(), nil, "a.webm", "user-1"); err == nil {
		t.Error("Start() with empty audio should fail")
	}
	if _, err := m.Start(context.Background(), []byte("x"), "a.webm", ""); err == nil {
		t.Error("Start() without user id should fail")
	}
}

func TestManager_Start_JobFailureRemovesAudio(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	api := &stubJobAPI{
		startFn: func(context.Context, string, string) error {
			return errors.New("service down")
		},
	}
	m := newTestManager(api, store)

	store.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	_, err := m.Start(context.Background(), []byte("x"), "a.webm", "user-1")
	if err == nil || !strings.Contains(err.Error(), "failed to start transcription job") {
		t.Errorf("Start() error = %v, want start failure", err)
	}
}

func TestManager_Result_InProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	api := &stubJobAPI{
		getFn: func(_ context.Context, jobID string) (*Job, error) {
			return &Job{ID: jobID, Status: StatusInProgress}, nil
		},
	}
	m := newTestManager(api, store)

	result, err := m.Result(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if result.Status != StatusInProgress || result.Err != "" {
		t.Errorf("Result() = %+v, want bare in_progress", result)
	}
}

func TestManager_Result_Failed(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	api := &stubJobAPI{
		getFn: func(_ context.Context, jobID string) (*Job, error) {
			return &Job{ID: jobID, Status: StatusFailed, FailureReason: "unsupported codec"}, nil
		},
	}
	m := newTestManager(api, store)

	result, err := m.Result(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if result.Status != StatusFailed || result.Err != "unsupported codec" {
		t.Errorf("Result() = %+v, want failure reason carried over", result)
	}
}

func TestManager_Result_Completed(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	api := &stubJobAPI{
		getFn: func(_ context.Context, jobID string) (*Job, error) {
			return &Job{ID: jobID, Status: StatusCompleted, OutputKey: "transcripts/job-1/out.json"}, nil
		},
	}
	m := newTestManager(api, store)

	doc := `{"results":{"transcripts":[{"transcript":"hello there"}],"items":[
		{"type":"pronunciation","alternatives":[{"confidence":"0.9","content":"hello"}]},
		{"type":"pronunciation","alternatives":[{"confidence":"0.7","content":"there"}]}]}}`
	store.EXPECT().Get(gomock.Any(), "transcripts/job-1/out.json").Return([]byte(doc), nil)

	result, err := m.Result(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if result.Status != StatusCompleted {
		t.Fatalf("status = %s, want completed", result.Status)
	}
	if result.Transcript != "hello there" {
		t.Errorf("transcript = %q", result.Transcript)
	}
	if result.Confidence == nil || *result.Confidence < 0.79 || *result.Confidence > 0.81 {
		t.Errorf("confidence = %v, want ~0.8", result.Confidence)
	}
}

func TestManager_Result_FallbackListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	api := &stubJobAPI{
		getFn: func(_ context.Context, jobID string) (*Job, error) {
			return &Job{ID: jobID, Status: StatusCompleted}, nil
		},
	}
	m := newTestManager(api, store)

	var slept int
	m.sleep = func(time.Duration) { slept++ }

	doc := `{"results":{"transcripts":[{"transcript":"late arrival"}],"items":[]}}`
	gomock.InOrder(
		store.EXPECT().ListPrefix(gomock.Any(), "transcripts/job-1").Return(nil, nil),
		store.EXPECT().ListPrefix(gomock.Any(), "transcripts/job-1").Return(nil, nil),
		store.EXPECT().ListPrefix(gomock.Any(), "transcripts/job-1").Return([]string{"transcripts/job-1/out.json"}, nil),
	)
	store.EXPECT().Get(gomock.Any(), "transcripts/job-1/out.json").Return([]byte(doc), nil)

	result, err := m.Result(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if result.Status != StatusCompleted || result.Transcript != "late arrival" {
		t.Errorf("Result() = %+v", result)
	}
	if result.Confidence != nil {
		t.Errorf("confidence = %v, want nil with no scored items", result.Confidence)
	}
	if slept != 2 {
		t.Errorf("slept %d times, want 2 (no sleep before first attempt)", slept)
	}
}

func TestManager_Result_TranscriptUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	api := &stubJobAPI{
		getFn: func(_ context.Context, jobID string) (*Job, error) {
			return &Job{ID: jobID, Status: StatusCompleted}, nil
		},
	}
	m := newTestManager(api, store)

	// All attempts come up empty; the job stays pollable.
	store.EXPECT().ListPrefix(gomock.Any(), "transcripts/job-1").Return(nil, nil).Times(3)

	result, err := m.Result(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if result.Status != StatusInProgress || result.Err == "" {
		t.Errorf("Result() = %+v, want in_progress with fetch error", result)
	}
}

func TestManager_Result_JobAPIError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	api := &stubJobAPI{
		getFn: func(context.Context, string) (*Job, error) {
			return nil, errors.New("connection refused")
		},
	}
	m := newTestManager(api, store)

	if _, err := m.Result(context.Background(), "job-1"); err == nil {
		t.Error("Result() should surface job lookup failures")
	}
}

func TestManager_Cleanup(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	m := newTestManager(&stubJobAPI{}, store)

	store.EXPECT().Delete(gomock.Any(), "voice/user-1/audio.webm").Return(errors.New("gone already"))
	store.EXPECT().ListPrefix(gomock.Any(), "transcripts/job-1").
		Return([]string{"transcripts/job-1/a.json", "transcripts/job-1/b.json"}, nil)
	store.EXPECT().Delete(gomock.Any(), "transcripts/job-1/a.json").Return(nil)
	store.EXPECT().Delete(gomock.Any(), "transcripts/job-1/b.json").Return(errors.New("boom"))

	// Cleanup never fails.
	m.Cleanup(context.Background(), "voice/user-1/audio.webm", "job-1")
}

func TestParseTranscript(t *testing.T) {
	tests := []struct {
		name           string
		doc            string
		wantTranscript string
		wantConfidence *float64
		wantErr        bool
	}{
		{
			name: "averages scored items",
			doc: `{"results":{"transcripts":[{"transcript":"a b"}],"items":[
				{"alternatives":[{"confidence":"1.0"}]},
				{"alternatives":[{"confidence":"0.5"}]}]}}`,
			wantTranscript: "a b",
			wantConfidence: ptr(0.75),
		},
		{
			name: "punctuation items without confidence are skipped",
			doc: `{"results":{"transcripts":[{"transcript":"a."}],"items":[
				{"alternatives":[{"confidence":"0.6"}]},
				{"type":"punctuation","alternatives":[{"confidence":"","content":"."}]}]}}`,
			wantTranscript: "a.",
			wantConfidence: ptr(0.6),
		},
		{
			name:           "no scored items means no confidence",
			doc:            `{"results":{"transcripts":[{"transcript":"quiet"}],"items":[]}}`,
			wantTranscript: "quiet",
		},
		{
			name:    "not json",
			doc:     "<html>",
			wantErr: true,
		},
		{
			name:    "missing transcripts",
			doc:     `{"results":{"items":[]}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transcript, confidence, err := parseTranscript([]byte(tt.doc))
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseTranscript() should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTranscript() error = %v", err)
			}
			if transcript != tt.wantTranscript {
				t.Errorf("transcript = %q, want %q", transcript, tt.wantTranscript)
			}
			switch {
			case tt.wantConfidence == nil:
				if confidence != nil {
					t.Errorf("confidence = %v, want nil", *confidence)
				}
			case confidence == nil:
				t.Errorf("confidence = nil, want %v", *tt.wantConfidence)
			case *confidence < *tt.wantConfidence-0.001 || *confidence > *tt.wantConfidence+0.001:
				t.Errorf("confidence = %v, want %v", *confidence, *tt.wantConfidence)
			}
		})
	}
}

func ptr(f float64) *float64 { return &f }
