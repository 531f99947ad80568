// Package http assembles the chi router and its middleware stack.
package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"brainer/internal/handlers"
	"brainer/internal/notes"
	"brainer/internal/search"
	"brainer/internal/usage"
	"brainer/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	DB             *sql.DB
	Notes          notes.Service
	Search         *search.Service
	Ledger         usage.Ledger
	VectorStore    vectorstore.VectorStore
	CollectionName string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	notesHandler := handlers.NewNotesHandler(deps.Notes)
	uploadHandler := handlers.NewUploadHandler(deps.Notes)
	searchHandler := handlers.NewSearchHandler(deps.Search)
	usageHandler := handlers.NewUsageHandler(deps.Ledger)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.VectorStore, deps.CollectionName)

	r.Method(http.MethodGet, "/healthz", healthHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(UserIDMiddleware)

		r.Route("/notes", func(r chi.Router) {
			r.Post("/", notesHandler.Create)
			r.Get("/", notesHandler.List)
			r.Get("/{id}", notesHandler.Get)
			r.Put("/{id}", notesHandler.Update)
			r.Delete("/{id}", notesHandler.Delete)
			r.Post("/{id}/summary", notesHandler.Summarize)
			r.Post("/{id}/embedding", notesHandler.Embed)
			r.Post("/{id}/topics", notesHandler.Topics)
			r.Get("/{id}/transcription", notesHandler.TranscriptionStatus)
		})

		r.Post("/uploads/voice", uploadHandler.Voice)
		r.Post("/uploads/screenshot", uploadHandler.Screenshot)

		r.Method(http.MethodPost, "/search", searchHandler)
		r.Post("/embeddings/backfill", notesHandler.Backfill)
		r.Method(http.MethodGet, "/usage", usageHandler)
	})

	return r
}
