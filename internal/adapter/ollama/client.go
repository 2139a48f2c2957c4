// Package ollama provides an HTTP client for the Ollama generate API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Strob0t/runnable/internal/port/textgen"
)

// GeneratePath is appended to the base URL for completion requests.
const GeneratePath = "/api/generate"

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// GenerateResponse is the subset of the non-streaming reply the agent reads.
// Response is nil when the field is absent.
type GenerateResponse struct {
	Model    string  `json:"model,omitempty"`
	Response *string `json:"response"`
	Done     bool    `json:"done"`
}

// Client talks to a local Ollama instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time interface check.
var _ textgen.Generator = (*Client)(nil)

// NewClient creates a new Ollama client. timeout bounds each whole request.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Endpoint returns the full URL prompts are posted to.
func (c *Client) Endpoint() string { return c.baseURL + GeneratePath }

// Generate sends one non-streaming prompt and waits for the reply.
func (c *Client) Generate(ctx context.Context, req textgen.Request) (textgen.Completion, error) {
	resp, err := c.generate(ctx, GenerateRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		Stream: false,
	})
	if err != nil {
		return textgen.Completion{}, err
	}
	if resp.Response == nil {
		return textgen.Completion{}, nil
	}
	return textgen.Completion{Text: *resp.Response, Present: true}, nil
}

// generate posts req as-is and decodes the reply.
func (c *Client) generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal generate: %w", err)
	}

	data, err := c.doRequest(ctx, http.MethodPost, GeneratePath, body)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	var result GenerateResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal generate: %w", err)
	}
	return &result, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("ollama API error %d: %s", resp.StatusCode, string(data))
	}

	return data, nil
}
