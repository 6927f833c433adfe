package chat

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const completionsPath = "/v1/chat/completions"

// maxErrorBodyBytes caps how much of an error response is captured for
// diagnostics.
const maxErrorBodyBytes = 1024

// StatusError is returned when the completions endpoint responds with a
// non-200 status code.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status code: %d", e.Code)
	}
	return fmt.Sprintf("unexpected status code: %d: %s", e.Code, e.Body)
}

// Client issues streaming chat-completion requests against an
// OpenAI-compatible endpoint. A single Client is safe for concurrent use
// and shares one pooled transport across all requests.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config configures the chat client.
type Config struct {
	BaseURL string // server root, e.g. http://127.0.0.1
	APIKey  string // optional bearer token
}

// NewClient creates a chat client with a keep-alive transport sized for
// many concurrent streams. The http.Client carries no timeout: streaming
// responses are bounded by per-request context deadlines instead.
func NewClient(cfg Config) *Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          256,
		MaxIdleConnsPerHost:   256,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Transport: transport},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	MaxCompletionTokens int           `json:"max_completion_tokens"`
	Stream              bool          `json:"stream"`
}

// StreamCompletion issues one streaming chat completion and returns a
// reader over its incremental chunks. The caller must Close the reader.
// Cancelling ctx aborts both the request and any in-progress body reads.
func (c *Client) StreamCompletion(ctx context.Context, model, prompt string, maxTokens int) (*ChunkReader, error) {
	payload, err := json.Marshal(completionRequest{
		Model:               model,
		Messages:            []chatMessage{{Role: "user", Content: prompt}},
		MaxCompletionTokens: maxTokens,
		Stream:              true,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	return &ChunkReader{
		resp:   resp,
		reader: bufio.NewReader(resp.Body),
	}, nil
}
