package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"brainer/internal/contextutil"
	"brainer/internal/notes"
)

// Upload size caps. Multipart bodies above these are rejected before
// the file is read into memory.
const (
	maxVoiceUploadBytes      = 25 << 20 // 25 MiB
	maxScreenshotUploadBytes = 10 << 20 // 10 MiB
)

// UploadHandler handles the voice and screenshot upload endpoints.
type UploadHandler struct {
	svc notes.Service
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(svc notes.Service) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Voice handles POST /api/v1/uploads/voice. Expects a multipart form
// with the audio under the "audio" field.
func (h *UploadHandler) Voice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	userID := contextutil.UserIDFromContext(ctx)

	audio, header, ok := readUpload(w, r, "audio", maxVoiceUploadBytes)
	if !ok {
		return
	}

	note, err := h.svc.UploadVoice(ctx, userID, audio, header.Filename)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "voice upload accepted", "note_id", note.ID, "bytes", len(audio))
	writeJSON(w, http.StatusCreated, note)
}

// Screenshot handles POST /api/v1/uploads/screenshot. Expects a
// multipart form with the image under the "image" field.
func (h *UploadHandler) Screenshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	userID := contextutil.UserIDFromContext(ctx)

	image, header, ok := readUpload(w, r, "image", maxScreenshotUploadBytes)
	if !ok {
		return
	}

	note, err := h.svc.UploadScreenshot(ctx, userID, image, header.Header.Get("Content-Type"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "screenshot upload accepted", "note_id", note.ID, "bytes", len(image))
	writeJSON(w, http.StatusCreated, note)
}

// readUpload parses the multipart form and reads one file field into
// memory. On failure it writes the error response and returns ok=false.
func readUpload(w http.ResponseWriter, r *http.Request, field string, maxBytes int64) ([]byte, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return nil, nil, false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		writeError(w, http.StatusBadRequest, field+" file is required")
		return nil, nil, false
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return nil, nil, false
	}
	return data, header, true
}
