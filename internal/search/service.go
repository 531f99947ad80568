// Package search ranks a user's notes by semantic similarity to a
// query, degrading to substring search when the vector store is
// unavailable.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"brainer/internal/contextutil"
	"brainer/internal/llm"
	"brainer/internal/storage"
	"brainer/internal/vectorstore"
)

const (
	// MinQueryLength is the shortest query worth embedding; anything
	// shorter is too ambiguous and returns an empty result at zero cost.
	MinQueryLength = 10
	// MinSimilarity is the floor below which matches are dropped.
	MinSimilarity = 0.25
	// FallbackSimilarity is the neutral score reported for every match
	// on the substring fallback path.
	FallbackSimilarity = 0.5
	// FallbackModeText marks a response produced by substring search.
	FallbackModeText = "text_search"

	defaultLimit = 10
	maxLimit     = 50
	snippetRunes = 160
)

// EmbeddingClient is the embedding endpoint from this service's perspective.
type EmbeddingClient interface {
	EmbedText(ctx context.Context, text string) (*llm.Embedding, error)
}

// Request describes one similarity search.
type Request struct {
	Query         string `json:"query"`
	Limit         int    `json:"limit,omitempty"`
	ExcludeNoteID string `json:"exclude_note_id,omitempty"`
}

// Match is one ranked result.
type Match struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Snippet    string    `json:"snippet"`
	Similarity float64   `json:"similarity"`
	CreatedAt  time.Time `json:"created_at"`
	Summary    *string   `json:"summary,omitempty"`
}

// Response is the result of one search.
type Response struct {
	Results      []Match `json:"results"`
	TokensUsed   int     `json:"tokens_used"`
	FallbackMode string  `json:"fallback_mode,omitempty"`
}

// Service performs similarity search over a user's notes.
type Service struct {
	embedder   EmbeddingClient
	vectors    vectorstore.VectorStore
	notes      storage.NoteStore
	collection string
	logger     *slog.Logger
}

// NewService creates a new search service.
func NewService(embedder EmbeddingClient, vectors vectorstore.VectorStore, notes storage.NoteStore, collection string) *Service {
	return &Service{
		embedder:   embedder,
		vectors:    vectors,
		notes:      notes,
		collection: collection,
		logger:     slog.Default(),
	}
}

// FindSimilar ranks the user's embedded notes against the query. Short
// queries return an empty result without any external call. A vector
// store failure transparently degrades to substring search, flagged via
// FallbackMode.
func (s *Service) FindSimilar(ctx context.Context, userID string, req Request) (*Response, error) {
	logger := contextutil.LoggerFromContext(ctx)

	query := strings.TrimSpace(req.Query)
	if len(query) < MinQueryLength {
		return &Response{Results: []Match{}, TokensUsed: 0}, nil
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := s.vectors.Search(ctx, s.collection, vectorstore.Query{
		Vector:    embedding.Vector,
		UserID:    userID,
		ExcludeID: req.ExcludeNoteID,
		Limit:     limit,
	})
	if err != nil {
		logger.WarnContext(ctx, "vector search unavailable, falling back to text search", "error", err)
		return s.textFallback(ctx, userID, query, limit, req.ExcludeNoteID, embedding.TokensUsed)
	}

	matches := make([]Match, 0, len(results))
	for _, result := range results {
		if float64(result.Score) < MinSimilarity {
			continue
		}
		note, err := s.notes.GetByID(ctx, result.PointID)
		if err != nil {
			// The index can briefly outlive a deleted note.
			logger.WarnContext(ctx, "indexed note missing from store", "note_id", result.PointID, "error", err)
			continue
		}
		matches = append(matches, Match{
			ID:         note.ID,
			Title:      note.Title,
			Snippet:    makeSnippet(note.Content),
			Similarity: float64(result.Score),
			CreatedAt:  note.CreatedAt,
			Summary:    note.Summary,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	logger.InfoContext(ctx, "similarity search completed", "user_id", userID, "results", len(matches))
	return &Response{
		Results:    matches,
		TokensUsed: embedding.TokensUsed,
	}, nil
}

// textFallback is the degraded path: case-insensitive substring match
// across title/content/summary, most recently updated first, every
// match scored at the neutral constant.
func (s *Service) textFallback(ctx context.Context, userID, query string, limit int, excludeID string, tokensUsed int) (*Response, error) {
	notes, err := s.notes.SearchText(ctx, userID, query, limit, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to run text search: %w", err)
	}

	matches := make([]Match, 0, len(notes))
	for i := range notes {
		note := &notes[i]
		matches = append(matches, Match{
			ID:         note.ID,
			Title:      note.Title,
			Snippet:    makeSnippet(note.Content),
			Similarity: FallbackSimilarity,
			CreatedAt:  note.CreatedAt,
			Summary:    note.Summary,
		})
	}

	return &Response{
		Results:      matches,
		TokensUsed:   tokensUsed,
		FallbackMode: FallbackModeText,
	}, nil
}

// makeSnippet truncates content to a short preview.
func makeSnippet(content string) string {
	trimmed := strings.TrimSpace(content)
	runes := []rune(trimmed)
	if len(runes) <= snippetRunes {
		return trimmed
	}
	return strings.TrimSpace(string(runes[:snippetRunes])) + "..."
}
