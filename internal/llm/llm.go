// Package llm talks to a locally running Ollama server for optional
// text-generation features. Everything here degrades gracefully: a
// missing or broken server fails the one command that needed it.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is where a local Ollama server listens.
const DefaultBaseURL = "http://localhost:11434"

// DefaultModel is used when the caller does not name one.
const DefaultModel = "llama3.2"

var (
	// ErrUnavailable means no server is listening at the base URL.
	ErrUnavailable = errors.New("ollama server unavailable")

	// ErrTimeout means the server did not answer in time.
	ErrTimeout = errors.New("ollama request timed out")

	// ErrModelNotFound means the server has no such model pulled.
	ErrModelNotFound = errors.New("model not found")
)

// Client generates text via an Ollama server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client against the local server with a generous
// generation timeout.
func NewClient() *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Generate runs a prompt through a model and returns the full response.
// Failures are classified so the CLI can suggest the right fix:
// ErrUnavailable, ErrTimeout, or ErrModelNotFound.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = DefaultModel
	}
	payload, err := json.Marshal(generateRequest{Model: model, Prompt: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(err)
	}

	var gen generateResponse
	if err := json.Unmarshal(body, &gen); err != nil {
		return "", fmt.Errorf("ollama: unexpected response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if strings.Contains(gen.Error, "not found") {
			return "", fmt.Errorf("%w: %s", ErrModelNotFound, model)
		}
		if gen.Error != "" {
			return "", fmt.Errorf("ollama: %s", gen.Error)
		}
		return "", fmt.Errorf("ollama: unexpected status %s", resp.Status)
	}
	return gen.Response, nil
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if strings.Contains(err.Error(), "connection refused") {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
