package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"brainer/internal/contextutil"
	"brainer/internal/enrich"
	"brainer/internal/notes"
	notesmocks "brainer/internal/notes/mocks"
	"brainer/internal/usage"
)

// doRequest routes a request through a throwaway chi router so URL
// params resolve, with the user id already on the context.
func doRequest(handler http.HandlerFunc, method, path, pattern, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.MethodFunc(method, pattern, handler)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req = req.WithContext(contextutil.WithUserID(req.Context(), "user-1"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNotesHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := notesmocks.NewMockService(ctrl)
	h := NewNotesHandler(svc)

	svc.EXPECT().Create(gomock.Any(), "user-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req notes.CreateRequest) (*notes.Note, error) {
			if req.Title != "hello" {
				t.Errorf("request = %+v", req)
			}
			return &notes.Note{ID: "note-1", Title: req.Title}, nil
		})

	w := doRequest(h.Create, "POST", "/notes", "/notes", `{"title": "hello"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var note notes.Note
	if err := json.NewDecoder(w.Body).Decode(&note); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if note.ID != "note-1" {
		t.Errorf("note = %+v", note)
	}
}

func TestNotesHandler_Create_InvalidBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewNotesHandler(notesmocks.NewMockService(ctrl))

	w := doRequest(h.Create, "POST", "/notes", "/notes", "{not json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestNotesHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := notesmocks.NewMockService(ctrl)
	h := NewNotesHandler(svc)

	svc.EXPECT().Get(gomock.Any(), "user-1", "note-1").
		Return(&notes.Note{ID: "note-1", Title: "found"}, nil)

	w := doRequest(h.Get, "GET", "/notes/note-1", "/notes/{id}", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestNotesHandler_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := notesmocks.NewMockService(ctrl)
	h := NewNotesHandler(svc)

	svc.EXPECT().Get(gomock.Any(), "user-1", "missing").Return(nil, notes.ErrNotFound)

	w := doRequest(h.Get, "GET", "/notes/missing", "/notes/{id}", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestNotesHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := notesmocks.NewMockService(ctrl)
	h := NewNotesHandler(svc)

	svc.EXPECT().List(gomock.Any(), "user-1").
		Return([]notes.Note{{ID: "a"}, {ID: "b"}}, nil)

	w := doRequest(h.List, "GET", "/notes", "/notes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Notes []notes.Note `json:"notes"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Notes) != 2 {
		t.Errorf("notes = %d, want 2", len(resp.Notes))
	}
}

func TestNotesHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := notesmocks.NewMockService(ctrl)
	h := NewNotesHandler(svc)

	svc.EXPECT().Update(gomock.Any(), "user-1", "note-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, req notes.UpdateRequest) (*notes.Note, error) {
			if req.Title == nil || *req.Title != "renamed" {
				t.Errorf("request = %+v", req)
			}
			if req.Content != nil {
				t.Error("content should be absent")
			}
			return &notes.Note{ID: "note-1", Title: "renamed"}, nil
		})

	w := doRequest(h.Update, "PUT", "/notes/note-1", "/notes/{id}", `{"title": "renamed"}`)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestNotesHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := notesmocks.NewMockService(ctrl)
	h := NewNotesHandler(svc)

	svc.EXPECT().Delete(gomock.Any(), "user-1", "note-1").Return(nil)

	w := doRequest(h.Delete, "DELETE", "/notes/note-1", "/notes/{id}", "")
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
}

func TestNotesHandler_Summarize_ForceFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := notesmocks.NewMockService(ctrl)
	h := NewNotesHandler(svc)

	svc.EXPECT().Summarize(gomock.Any(), "user-1", "note-1", true).
		Return(&enrich.SummaryResult{Summary: "fresh", Generated: true}, nil)

	w := doRequest(h.Summarize, "POST", "/notes/note-1/summary", "/notes/{id}/summary", `{"force": true}`)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestNotesHandler_Backfill(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := notesmocks.NewMockService(ctrl)
	h := NewNotesHandler(svc)

	svc.EXPECT().BackfillEmbeddings(gomock.Any(), "user-1").
		Return(&enrich.BackfillStats{Candidates: 3, Embedded: 2, Skipped: 1}, nil)

	w := doRequest(h.Backfill, "POST", "/embeddings/backfill", "/embeddings/backfill", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var stats enrich.BackfillStats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.Embedded != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestParseForce(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		want   bool
	}{
		{name: "json body", target: "/x", body: `{"force": true}`, want: true},
		{name: "json body false", target: "/x", body: `{"force": false}`, want: false},
		{name: "query true", target: "/x?force=true", body: "", want: true},
		{name: "query one", target: "/x?force=1", body: "", want: true},
		{name: "query other value", target: "/x?force=yes", body: "", want: false},
		{name: "nothing", target: "/x", body: "", want: false},
		{name: "garbage body with query", target: "/x?force=true", body: "{broken", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", tt.target, strings.NewReader(tt.body))
			if got := parseForce(req); got != tt.want {
				t.Errorf("parseForce() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation error",
			err:        &enrich.ValidationError{Field: "content", Message: "content too short"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "content too short",
		},
		{
			name:       "limit exceeded",
			err:        &usage.ErrLimitExceeded{Resource: usage.ResourceSummaries, Limit: 20},
			wantStatus: http.StatusTooManyRequests,
			wantBody:   "monthly limit",
		},
		{
			name:       "not found",
			err:        notes.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "note not found",
		},
		{
			name:       "no transcription job",
			err:        notes.ErrTranscriptionUnavailable,
			wantStatus: http.StatusBadRequest,
			wantBody:   "no transcription job",
		},
		{
			name:       "ai not configured",
			err:        errors.New("OPENAI_API_KEY is not configured"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "not configured",
		},
		{
			name:       "upstream rate limit",
			err:        errors.New("bad status 429: rate limit exceeded"),
			wantStatus: http.StatusTooManyRequests,
			wantBody:   "rate limit",
		},
		{
			name:       "vector store down",
			err:        errors.New("failed to search points: connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "Vector store unavailable",
		},
		{
			name:       "anything else",
			err:        errors.New("disk full"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeServiceError(context.Background(), w, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if !strings.Contains(resp.Error, tt.wantBody) {
				t.Errorf("error = %q, want substring %q", resp.Error, tt.wantBody)
			}
		})
	}
}
