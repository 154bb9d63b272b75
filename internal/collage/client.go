// Package collage talks to the image compositing service that renders a
// showcase as a single PNG.
package collage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tonshowcase/showcase/pkg/logger"
)

var (
	ErrUnavailable = errors.New("collage service unavailable")
	ErrRejected    = errors.New("collage service rejected the request")
)

// Exporter renders image URLs into a collage. The caller closes the reader.
type Exporter interface {
	Export(ctx context.Context, imageURLs []string) (io.ReadCloser, error)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ Exporter = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type exportRequest struct {
	ImageURLs []string `json:"image_urls"`
}

func (c *Client) Export(ctx context.Context, imageURLs []string) (io.ReadCloser, error) {
	body, err := json.Marshal(exportRequest{ImageURLs: imageURLs})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/export/collage", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	requestID := logger.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		details, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(details)))
	}

	return resp.Body, nil
}
