package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// EmbeddingsClient is a client for an OpenAI-compatible embeddings API.
type EmbeddingsClient struct {
	BaseURL      string
	APIKey       string
	Model        string
	ExpectedSize int // Expected vector size for validation
	client       *http.Client
}

// NewEmbeddingsClient creates a new embeddings client.
// expectedSize is the expected vector size (from QDRANT_VECTOR_SIZE config).
// All vectors returned by EmbedText will be validated against this size.
func NewEmbeddingsClient(baseURL, apiKey, model string, expectedSize int) *EmbeddingsClient {
	return &EmbeddingsClient{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		Model:        model,
		ExpectedSize: expectedSize,
		client:       http.DefaultClient,
	}
}

// EmbeddingsRequest represents the request payload for the embeddings API.
type EmbeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// EmbeddingData represents a single embedding in the response.
type EmbeddingData struct {
	Embedding []float64 `json:"embedding"`
}

// EmbeddingsUsage carries the token accounting from the embeddings API.
type EmbeddingsUsage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// EmbeddingsResponse represents the response from the embeddings API.
type EmbeddingsResponse struct {
	Data  []EmbeddingData `json:"data"`
	Usage EmbeddingsUsage `json:"usage"`
}

// Embedding is the result of embedding one text: the vector, the model
// that produced it, and the token cost of the call.
type Embedding struct {
	Vector     []float32
	Model      string
	TokensUsed int
}

// EmbedText generates an embedding for a single text. One call, one
// outbound request; no batching, no retry. The returned vector is
// validated against the expected size.
func (c *EmbeddingsClient) EmbedText(ctx context.Context, text string) (*Embedding, error) {
	if text == "" {
		return nil, fmt.Errorf("empty input text")
	}
	if c.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not configured")
	}

	url := fmt.Sprintf("%s/v1/embeddings", c.BaseURL)

	payload := EmbeddingsRequest{
		Model: c.Model,
		Input: []string{text},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var embeddingsResp EmbeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&embeddingsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(embeddingsResp.Data) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(embeddingsResp.Data))
	}

	data := embeddingsResp.Data[0]
	if c.ExpectedSize > 0 && len(data.Embedding) != c.ExpectedSize {
		return nil, fmt.Errorf("embedding has size %d, expected %d", len(data.Embedding), c.ExpectedSize)
	}

	// Convert []float64 to []float32
	vec := make([]float32, len(data.Embedding))
	for i, v := range data.Embedding {
		vec[i] = float32(v)
	}

	return &Embedding{
		Vector:     vec,
		Model:      c.Model,
		TokensUsed: embeddingsResp.Usage.TotalTokens,
	}, nil
}
