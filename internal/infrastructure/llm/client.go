// Package llm talks to a hosted language model. The Client is the raw
// HTTP transport; the Provider layers the JSON-shaped recipe operations
// on top of it.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/platewise/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with an Ollama-compatible generate endpoint
type Client struct {
	httpClient  *http.Client
	baseURL     string
	model       string
	rateLimiter *rate.Limiter
	debug       bool
}

// generateRequest is the wire shape of a generation call
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse is the subset of the endpoint's reply we consume
type generateResponse struct {
	Response string `json:"response"`
}

// NewClient creates a new language model client. The transport timeout is
// the only guard against a hung model call; nothing above this layer
// enforces its own deadline.
func NewClient(model, baseURL string, timeout time.Duration) *Client {
	// Local model servers fall over under concurrent prompts; keep a
	// modest request rate with a small burst.
	limiter := rate.NewLimiter(rate.Limit(2), 4)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		model:       model,
		rateLimiter: limiter,
	}
}

// SetDebug enables request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// ModelName returns the configured model identifier
func (c *Client) ModelName() string {
	return c.model
}

// Generate sends one prompt and returns the model's free-form text reply.
// A single attempt, fail-visible: transport and status errors surface to
// the caller, which maps them to operation-specific fallbacks.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	payload, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/generate", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.debug {
		log.Printf("[LLM] Generate: model=%s prompt=%d bytes", c.model, len(prompt))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrLLMFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[LLM] API error - Status: %d, Body: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("%w: status %d", domain.ErrLLMFailure, resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if c.debug {
		log.Printf("[LLM] Generate: response=%d bytes", len(genResp.Response))
	}

	return genResp.Response, nil
}
