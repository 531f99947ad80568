package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks brainer/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// Query describes one similarity search.
type Query struct {
	// Vector is the query embedding.
	Vector []float32
	// UserID restricts results to a single owner's points.
	UserID string
	// ExcludeID drops one point id from the results (typically the note
	// the query was issued from).
	ExcludeID string
	// Limit caps the number of returned results.
	Limit int
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search scoped to one user.
	Search(ctx context.Context, collection string, query Query) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error

	// CollectionExists reports whether the collection exists. Used by
	// health checks.
	CollectionExists(ctx context.Context, collection string) (bool, error)
}
