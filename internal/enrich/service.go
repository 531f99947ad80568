// Package enrich generates and persists a note's derived fields:
// embedding vector, summary with key points, and extracted topics.
package enrich

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_clients.go -package=mocks brainer/internal/enrich EmbeddingClient,CompletionClient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"brainer/internal/classify"
	"brainer/internal/contextutil"
	"brainer/internal/llm"
	"brainer/internal/storage"
	"brainer/internal/usage"
	"brainer/internal/vectorstore"
)

const (
	// minSummaryChars is the minimum trimmed content length for summarization.
	minSummaryChars = 50
	// minTopicsChars is the minimum trimmed content length for topic extraction.
	minTopicsChars = 20
)

// EmbeddingClient is the embedding endpoint from this service's perspective.
type EmbeddingClient interface {
	EmbedText(ctx context.Context, text string) (*llm.Embedding, error)
}

// CompletionClient is the generative endpoint from this service's perspective.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (*llm.Completion, error)
}

// ValidationError reports a precondition failure detected before any
// external call is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// EmbeddingResult describes a note's embedding after a generate call.
// Generated is false when an existing embedding short-circuited the call.
type EmbeddingResult struct {
	Model      string `json:"model"`
	Dimensions int    `json:"dimensions"`
	TokensUsed int    `json:"tokens_used"`
	Generated  bool   `json:"generated"`
}

// SummaryResult describes a note's summary after a generate call.
type SummaryResult struct {
	Summary    string   `json:"summary"`
	KeyPoints  []string `json:"key_points"`
	TokensUsed int      `json:"tokens_used"`
	Generated  bool     `json:"generated"`
}

// TopicsResult describes a note's extracted topics after a generate call.
type TopicsResult struct {
	Topics        []string `json:"topics"`
	Concepts      []string `json:"concepts"`
	SuggestedTags []string `json:"suggested_tags"`
	TokensUsed    int      `json:"tokens_used"`
	Generated     bool     `json:"generated"`
}

// Service generates derived note fields and persists them.
type Service struct {
	notes      storage.NoteStore
	vectors    vectorstore.VectorStore
	collection string
	embedder   EmbeddingClient
	completer  CompletionClient
	ledger     usage.Ledger
	logger     *slog.Logger

	// backfillDelay spaces out embedding calls during a backfill purely
	// to stay under the external rate limit.
	backfillDelay time.Duration
	sleep         func(time.Duration)
}

// NewService creates a new enrichment service.
func NewService(
	notes storage.NoteStore,
	vectors vectorstore.VectorStore,
	collection string,
	embedder EmbeddingClient,
	completer CompletionClient,
	ledger usage.Ledger,
) *Service {
	return &Service{
		notes:         notes,
		vectors:       vectors,
		collection:    collection,
		embedder:      embedder,
		completer:     completer,
		ledger:        ledger,
		logger:        slog.Default(),
		backfillDelay: 200 * time.Millisecond,
		sleep:         time.Sleep,
	}
}

// GenerateEmbedding generates and persists the embedding for a note.
// An existing embedding short-circuits the call unless force is set.
// Regeneration overwrites the stored vector wholesale.
func (s *Service) GenerateEmbedding(ctx context.Context, note *storage.NoteRecord, force bool) (*EmbeddingResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if note.HasEmbedding() && !force {
		model := ""
		if note.EmbeddingModel != nil {
			model = *note.EmbeddingModel
		}
		return &EmbeddingResult{
			Model:      model,
			Dimensions: len(note.Embedding),
			TokensUsed: 0,
			Generated:  false,
		}, nil
	}

	if !classify.ShouldGenerateEmbedding(note.Content) {
		return nil, &ValidationError{Field: "content", Message: "content too short or structural to embed"}
	}

	if err := s.ledger.Allow(ctx, note.UserID, usage.ResourceEmbeddings); err != nil {
		return nil, err
	}

	input := classify.BuildEmbeddingInput(note.Title, note.Content)
	embedding, err := s.embedder.EmbedText(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if err := s.notes.SetEmbedding(ctx, note.ID, embedding.Vector, embedding.Model); err != nil {
		return nil, err
	}
	note.Embedding = embedding.Vector
	note.EmbeddingModel = &embedding.Model

	// Mirror the vector into the search index. A down vector store only
	// degrades search (text fallback), so this is not fatal.
	point := vectorstore.Point{
		ID:  note.ID,
		Vec: embedding.Vector,
		Meta: map[string]any{
			"user_id": note.UserID,
			"title":   note.Title,
		},
	}
	if err := s.vectors.Upsert(ctx, s.collection, []vectorstore.Point{point}); err != nil {
		logger.WarnContext(ctx, "failed to index embedding for search", "note_id", note.ID, "error", err)
	}

	if err := s.ledger.Record(ctx, note.UserID, usage.ResourceEmbeddings); err != nil {
		logger.WarnContext(ctx, "failed to record embedding usage", "user_id", note.UserID, "error", err)
	}

	logger.InfoContext(ctx, "embedding generated", "note_id", note.ID, "model", embedding.Model, "tokens", embedding.TokensUsed)
	return &EmbeddingResult{
		Model:      embedding.Model,
		Dimensions: len(embedding.Vector),
		TokensUsed: embedding.TokensUsed,
		Generated:  true,
	}, nil
}

const summarySystemPrompt = "You summarize personal notes. Reply with a JSON object " +
	`{"summary": string, "key_points": [string]} and nothing else. ` +
	"The summary is at most three sentences; key_points has three to five entries."

// GenerateSummary generates and persists a note's summary and key
// points. An existing summary short-circuits the call unless force is
// set; content under the minimum length is rejected before any call.
func (s *Service) GenerateSummary(ctx context.Context, note *storage.NoteRecord, force bool) (*SummaryResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if note.HasSummary() && !force {
		return existingSummary(note), nil
	}

	if len(strings.TrimSpace(note.Content)) < minSummaryChars {
		return nil, &ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("content must be at least %d characters to summarize", minSummaryChars),
		}
	}

	if err := s.ledger.Allow(ctx, note.UserID, usage.ResourceSummaries); err != nil {
		return nil, err
	}

	completion, err := s.completer.Complete(ctx, summarySystemPrompt, note.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary: %w", err)
	}

	var parsed struct {
		Summary   string   `json:"summary"`
		KeyPoints []string `json:"key_points"`
	}
	if err := decodeModelJSON(completion.Content, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse summary response: %w", err)
	}
	if parsed.Summary == "" {
		return nil, fmt.Errorf("summary response was empty")
	}

	if err := s.notes.SetSummary(ctx, note.ID, parsed.Summary, parsed.KeyPoints, completion.TokensUsed); err != nil {
		return nil, err
	}
	note.Summary = &parsed.Summary

	if err := s.ledger.Record(ctx, note.UserID, usage.ResourceSummaries); err != nil {
		logger.WarnContext(ctx, "failed to record summary usage", "user_id", note.UserID, "error", err)
	}

	logger.InfoContext(ctx, "summary generated", "note_id", note.ID, "tokens", completion.TokensUsed)
	return &SummaryResult{
		Summary:    parsed.Summary,
		KeyPoints:  parsed.KeyPoints,
		TokensUsed: completion.TokensUsed,
		Generated:  true,
	}, nil
}

const topicsSystemPrompt = "You analyze personal notes. Reply with a JSON object " +
	`{"topics": [string], "concepts": [string], "suggested_tags": [string]} and nothing else. ` +
	"Topics are broad subjects, concepts are specific ideas, suggested_tags are short lowercase labels."

// ExtractTopics extracts and persists a note's topics, concepts, and
// suggested tags. Same short-circuit and precondition contract as
// GenerateSummary, with a lower length floor.
func (s *Service) ExtractTopics(ctx context.Context, note *storage.NoteRecord, force bool) (*TopicsResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if note.HasTopics() && !force {
		return existingTopics(note)
	}

	if len(strings.TrimSpace(note.Content)) < minTopicsChars {
		return nil, &ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("content must be at least %d characters for topic extraction", minTopicsChars),
		}
	}

	completion, err := s.completer.Complete(ctx, topicsSystemPrompt, note.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to extract topics: %w", err)
	}

	var parsed struct {
		Topics        []string `json:"topics"`
		Concepts      []string `json:"concepts"`
		SuggestedTags []string `json:"suggested_tags"`
	}
	if err := decodeModelJSON(completion.Content, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse topics response: %w", err)
	}

	blob, err := json.Marshal(map[string]any{
		"topics":         parsed.Topics,
		"concepts":       parsed.Concepts,
		"suggested_tags": parsed.SuggestedTags,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode topics: %w", err)
	}

	if err := s.notes.SetTopics(ctx, note.ID, string(blob), completion.TokensUsed); err != nil {
		return nil, err
	}
	topicsStr := string(blob)
	note.Topics = &topicsStr

	logger.InfoContext(ctx, "topics extracted", "note_id", note.ID, "tokens", completion.TokensUsed)
	return &TopicsResult{
		Topics:        parsed.Topics,
		Concepts:      parsed.Concepts,
		SuggestedTags: parsed.SuggestedTags,
		TokensUsed:    completion.TokensUsed,
		Generated:     true,
	}, nil
}

// TryEmbed is the best-effort embedding path used by create/update/
// upload handlers. It never returns an error: content failing the
// classifier gate is skipped silently, and generation failures are
// logged and swallowed so the primary operation cannot be blocked by
// enrichment. The returned bool is for logging only.
func (s *Service) TryEmbed(ctx context.Context, note *storage.NoteRecord) bool {
	logger := contextutil.LoggerFromContext(ctx)

	if !classify.ShouldGenerateEmbedding(note.Content) {
		return false
	}
	if _, err := s.GenerateEmbedding(ctx, note, true); err != nil {
		logger.WarnContext(ctx, "best-effort embedding failed", "note_id", note.ID, "error", err)
		return false
	}
	return true
}

// TrySummarize is the best-effort summary path; same contract as TryEmbed.
func (s *Service) TrySummarize(ctx context.Context, note *storage.NoteRecord) bool {
	logger := contextutil.LoggerFromContext(ctx)

	if len(strings.TrimSpace(note.Content)) < minSummaryChars {
		return false
	}
	if _, err := s.GenerateSummary(ctx, note, true); err != nil {
		logger.WarnContext(ctx, "best-effort summary failed", "note_id", note.ID, "error", err)
		return false
	}
	return true
}

// RemoveFromIndex drops a deleted note's point from the search index,
// best-effort.
func (s *Service) RemoveFromIndex(ctx context.Context, noteID string) {
	logger := contextutil.LoggerFromContext(ctx)
	if err := s.vectors.Delete(ctx, s.collection, []string{noteID}); err != nil {
		logger.WarnContext(ctx, "failed to remove note from search index", "note_id", noteID, "error", err)
	}
}

func existingSummary(note *storage.NoteRecord) *SummaryResult {
	result := &SummaryResult{Generated: false}
	if note.Summary != nil {
		result.Summary = *note.Summary
	}
	if note.KeyPoints != nil {
		_ = json.Unmarshal([]byte(*note.KeyPoints), &result.KeyPoints)
	}
	if note.SummaryTokensUsed != nil {
		result.TokensUsed = *note.SummaryTokensUsed
	}
	return result
}

func existingTopics(note *storage.NoteRecord) (*TopicsResult, error) {
	result := &TopicsResult{Generated: false}
	if note.Topics != nil {
		var parsed struct {
			Topics        []string `json:"topics"`
			Concepts      []string `json:"concepts"`
			SuggestedTags []string `json:"suggested_tags"`
		}
		if err := json.Unmarshal([]byte(*note.Topics), &parsed); err != nil {
			return nil, fmt.Errorf("failed to decode stored topics: %w", err)
		}
		result.Topics = parsed.Topics
		result.Concepts = parsed.Concepts
		result.SuggestedTags = parsed.SuggestedTags
	}
	if note.TopicsTokensUsed != nil {
		result.TokensUsed = *note.TopicsTokensUsed
	}
	return result, nil
}

// decodeModelJSON parses a JSON object out of a model reply, tolerating
// a fenced ```json code block around it.
func decodeModelJSON(content string, v any) error {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	return json.Unmarshal([]byte(trimmed), v)
}
