// Package ocr wraps an external OCR endpoint that turns screenshot
// bytes into extracted text. Empty text is a valid, non-error result.
package ocr

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_extractor.go -package=mocks brainer/internal/ocr Extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Extractor extracts text from an image.
type Extractor interface {
	// ExtractText runs OCR on the given image bytes.
	ExtractText(ctx context.Context, image []byte, contentType string) (string, error)
}

// Client is an HTTP client for the OCR service.
type Client struct {
	BaseURL string
	client  *http.Client
}

// NewClient creates a new OCR client. An empty baseURL means the OCR
// capability is unavailable; callers check Available before use.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		client:  http.DefaultClient,
	}
}

// Available reports whether an OCR endpoint is configured.
func (c *Client) Available() bool {
	return c.BaseURL != ""
}

// ocrResponse is the OCR service's result document.
type ocrResponse struct {
	Text string `json:"text"`
}

// ExtractText runs OCR on the given image bytes.
func (c *Client) ExtractText(ctx context.Context, image []byte, contentType string) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("OCR service is not configured")
	}

	url := fmt.Sprintf("%s/v1/extract", c.BaseURL)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var ocrResp ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&ocrResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return ocrResp.Text, nil
}
