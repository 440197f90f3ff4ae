// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package anthropic is a minimal client for the Anthropic Messages API,
// used to assign a category to each campaign contributor.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/civicdata/contribcat/internal/httputil"
	"github.com/civicdata/contribcat/pkg/types"
)

// messagesURL is the Messages API endpoint. Package-level var for test
// substitution.
var messagesURL = "https://api.anthropic.com/v1/messages"

const anthropicVersion = "2023-06-01"

// paceJitter is the maximum random delay added to the pause between
// consecutive calls, so sequential runs do not hit the rate limiter in
// lockstep. Tests set this to zero.
var paceJitter = 200 * time.Millisecond

const (
	defaultMaxTokens = 100
	defaultTimeout   = 30 * time.Second
)

// Client calls the Messages API to categorize contributors. It paces
// consecutive requests by the configured base delay and retries rate-limit
// responses via httputil. Not safe for concurrent use.
type Client struct {
	cfg        types.APIConfig
	categories []string
	httpClient *http.Client
	lastCall   time.Time
}

// New returns a Client for the given configuration and canonical category set.
func New(cfg types.APIConfig, categories []string) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg:        cfg,
		categories: categories,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// apiRequest is the request body for the Messages API.
type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	Messages  []apiMessage `json:"messages"`
}

// apiMessage is a single message in the conversation.
type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiResponse is the response body from the Messages API.
type apiResponse struct {
	Content []apiContent `json:"content"`
}

// apiContent is a content block in the response.
type apiContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Categorize asks the model which category the contributor belongs to and
// returns the bare category name.
func (c *Client) Categorize(ctx context.Context, contrib types.Contributor) (string, error) {
	prompt, err := renderPrompt(contrib, c.categories)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	if err := c.pace(ctx); err != nil {
		return "", err
	}

	maxTokens := c.cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	reqBody := apiRequest{
		Model:     c.cfg.Model,
		MaxTokens: maxTokens,
		Messages: []apiMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, messagesURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.cfg.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling Messages API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Messages API returned %d: %s", resp.StatusCode, string(body))
	}

	var aResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&aResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	for _, block := range aResp.Content {
		if block.Type != "text" {
			continue
		}
		category := parseCategory(block.Text)
		if category == "" {
			return "", fmt.Errorf("empty category in response")
		}
		return category, nil
	}

	return "", fmt.Errorf("no text content in response")
}

// parseCategory extracts the bare category from the model's answer. The
// prompt ends with "Category:", and some completions echo that label.
func parseCategory(text string) string {
	category := strings.TrimSpace(text)
	if i := strings.LastIndex(category, "Category:"); i >= 0 {
		category = strings.TrimSpace(category[i+len("Category:"):])
	}
	return category
}

// pace waits until the configured base delay (plus jitter) has elapsed since
// the previous request.
func (c *Client) pace(ctx context.Context) error {
	minDelay := c.cfg.BaseDelay
	if paceJitter > 0 {
		minDelay += rand.N(paceJitter)
	}

	if wait := minDelay - time.Since(c.lastCall); wait > 0 && !c.lastCall.IsZero() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	c.lastCall = time.Now()
	return nil
}
