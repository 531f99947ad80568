package transcribe

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_job_api.go -package=mocks brainer/internal/transcribe JobAPI

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// JobAPI is the contract of the external transcription service.
type JobAPI interface {
	// StartJob requests transcription of the object at mediaKey under
	// the caller-generated job id.
	StartJob(ctx context.Context, jobID, mediaKey string) error
	// GetJob returns the current state of a job.
	GetJob(ctx context.Context, jobID string) (*Job, error)
}

// APIClient is an HTTP client for the transcription service.
type APIClient struct {
	BaseURL string
	client  *http.Client
}

// NewAPIClient creates a new transcription service client. An empty
// baseURL means the capability is unavailable; callers check Available.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		client:  http.DefaultClient,
	}
}

// Available reports whether a transcription endpoint is configured.
func (c *APIClient) Available() bool {
	return c.BaseURL != ""
}

type startJobRequest struct {
	JobID    string `json:"job_id"`
	MediaKey string `json:"media_key"`
}

type jobResponse struct {
	JobID         string `json:"job_id"`
	Status        string `json:"status"`
	OutputKey     string `json:"output_key,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// StartJob requests transcription of the object at mediaKey.
func (c *APIClient) StartJob(ctx context.Context, jobID, mediaKey string) error {
	if !c.Available() {
		return fmt.Errorf("transcription service is not configured")
	}

	url := fmt.Sprintf("%s/v1/jobs", c.BaseURL)

	body, err := json.Marshal(startJobRequest{JobID: jobID, MediaKey: mediaKey})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

// GetJob returns the current state of a job.
func (c *APIClient) GetJob(ctx context.Context, jobID string) (*Job, error) {
	if !c.Available() {
		return nil, fmt.Errorf("transcription service is not configured")
	}

	url := fmt.Sprintf("%s/v1/jobs/%s", c.BaseURL, jobID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

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

	var jobResp jobResponse
	if err := json.NewDecoder(resp.Body).Decode(&jobResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	status, err := normalizeStatus(jobResp.Status)
	if err != nil {
		return nil, err
	}

	return &Job{
		ID:            jobResp.JobID,
		Status:        status,
		OutputKey:     jobResp.OutputKey,
		FailureReason: jobResp.FailureReason,
	}, nil
}

// normalizeStatus maps the service's status vocabulary onto JobStatus.
func normalizeStatus(raw string) (JobStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "QUEUED", "IN_PROGRESS", "RUNNING":
		return StatusInProgress, nil
	case "COMPLETED", "COMPLETE":
		return StatusCompleted, nil
	case "FAILED":
		return StatusFailed, nil
	default:
		return "", fmt.Errorf("unknown job status: %q", raw)
	}
}
