package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"brainer/internal/contextutil"
	"brainer/internal/notes"
	notesmocks "brainer/internal/notes/mocks"
)

// multipartBody builds a multipart form with one file field.
func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	if contentType != "" {
		header["Content-Type"] = []string{contentType}
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func uploadRequest(t *testing.T, path, field, filename, fileType string, data []byte) *http.Request {
	t.Helper()
	body, contentType := multipartBody(t, field, filename, fileType, data)
	req := httptest.NewRequest("POST", path, body)
	req.Header.Set("Content-Type", contentType)
	return req.WithContext(contextutil.WithUserID(req.Context(), "user-1"))
}

func TestUploadHandler_Voice(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := notesmocks.NewMockService(ctrl)
	h := NewUploadHandler(svc)

	svc.EXPECT().UploadVoice(gomock.Any(), "user-1", []byte("audio-bytes"), "memo.webm").
		Return(&notes.Note{ID: "note-1", Title: "Voice Note"}, nil)

	req := uploadRequest(t, "/uploads/voice", "audio", "memo.webm", "audio/webm", []byte("audio-bytes"))
	w := httptest.NewRecorder()
	h.Voice(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
}

func TestUploadHandler_Voice_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewUploadHandler(notesmocks.NewMockService(ctrl))

	// Wrong field name: the handler requires "audio".
	req := uploadRequest(t, "/uploads/voice", "file", "memo.webm", "audio/webm", []byte("x"))
	w := httptest.NewRecorder()
	h.Voice(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUploadHandler_Voice_NotMultipart(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewUploadHandler(notesmocks.NewMockService(ctrl))

	req := httptest.NewRequest("POST", "/uploads/voice", bytes.NewReader([]byte("raw audio")))
	req = req.WithContext(contextutil.WithUserID(req.Context(), "user-1"))
	w := httptest.NewRecorder()
	h.Voice(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUploadHandler_Screenshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := notesmocks.NewMockService(ctrl)
	h := NewUploadHandler(svc)

	svc.EXPECT().UploadScreenshot(gomock.Any(), "user-1", []byte("png-bytes"), "image/png").
		Return(&notes.Note{ID: "note-1", Title: "Screenshot"}, nil)

	req := uploadRequest(t, "/uploads/screenshot", "image", "shot.png", "image/png", []byte("png-bytes"))
	w := httptest.NewRecorder()
	h.Screenshot(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
}
