// Package ai wraps the Gemini text-completion API behind a minimal
// request/response client.
//
// No retries and no output-shape guarantees live here: retry policy belongs
// to callers, and the insight package validates whatever text comes back.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Sentinel errors callers match with errors.Is.
var (
	ErrUnavailable   = errors.New("completion service unavailable")
	ErrTimeout       = errors.New("completion request timed out")
	ErrEmptyResponse = errors.New("completion service returned no text")
)

// Client is a thin wrapper over the Gemini SDK. Every Complete call is
// bounded by the configured timeout.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewClient constructs a Client for the given model, e.g. "gemini-1.5-flash".
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}
	return &Client{client: gc, model: model, timeout: timeout}, nil
}

// Complete sends prompt to the model and returns the raw completion text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.GenerativeModel(c.model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s: %v", ErrTimeout, c.timeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	text := collectText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Close releases the underlying SDK connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// collectText concatenates the text parts of the first candidate.
func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
