package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"brainer/internal/contextutil"
	"brainer/internal/notes"
)

// NotesHandler handles the note CRUD and enrichment endpoints.
type NotesHandler struct {
	svc notes.Service
}

// NewNotesHandler creates a new NotesHandler.
func NewNotesHandler(svc notes.Service) *NotesHandler {
	return &NotesHandler{svc: svc}
}

// forceRequest carries the optional force-regeneration flag of the
// enrichment verbs. The flag may also come from the ?force query
// parameter for clients that send no body.
type forceRequest struct {
	Force bool `json:"force"`
}

// Create handles POST /api/v1/notes.
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	userID := contextutil.UserIDFromContext(ctx)

	var req notes.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.svc.Create(ctx, userID, req)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// List handles GET /api/v1/notes.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := contextutil.UserIDFromContext(ctx)

	list, err := h.svc.List(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": list})
}

// Get handles GET /api/v1/notes/{id}.
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := contextutil.UserIDFromContext(ctx)

	note, err := h.svc.Get(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// Update handles PUT /api/v1/notes/{id}.
func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	userID := contextutil.UserIDFromContext(ctx)

	var req notes.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.svc.Update(ctx, userID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// Delete handles DELETE /api/v1/notes/{id}.
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := contextutil.UserIDFromContext(ctx)

	if err := h.svc.Delete(ctx, userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Summarize handles POST /api/v1/notes/{id}/summary.
func (h *NotesHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := contextutil.UserIDFromContext(ctx)

	result, err := h.svc.Summarize(ctx, userID, chi.URLParam(r, "id"), parseForce(r))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Embed handles POST /api/v1/notes/{id}/embedding.
func (h *NotesHandler) Embed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := contextutil.UserIDFromContext(ctx)

	result, err := h.svc.Embed(ctx, userID, chi.URLParam(r, "id"), parseForce(r))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Topics handles POST /api/v1/notes/{id}/topics.
func (h *NotesHandler) Topics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := contextutil.UserIDFromContext(ctx)

	result, err := h.svc.Topics(ctx, userID, chi.URLParam(r, "id"), parseForce(r))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// TranscriptionStatus handles GET /api/v1/notes/{id}/transcription.
func (h *NotesHandler) TranscriptionStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := contextutil.UserIDFromContext(ctx)

	state, err := h.svc.TranscriptionStatus(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Backfill handles POST /api/v1/embeddings/backfill.
func (h *NotesHandler) Backfill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := contextutil.UserIDFromContext(ctx)

	stats, err := h.svc.BackfillEmbeddings(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// parseForce reads the force flag from the JSON body, falling back to
// the ?force query parameter. A missing or unreadable body means false.
func parseForce(r *http.Request) bool {
	var req forceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Force {
		return true
	}
	force := r.URL.Query().Get("force")
	return force == "true" || force == "1"
}
