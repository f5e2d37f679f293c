package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaClient implements Client for a self-hosted Ollama server
type OllamaClient struct {
	api    *api.Client
	http   *http.Client
	config *Config
}

// NewOllamaClient creates a client for the Ollama server at config.BaseURL.
// A nil httpClient gets one bounded by config.Timeout.
func NewOllamaClient(config *Config, httpClient *http.Client) (*OllamaClient, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.ParseRequestURI(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &OllamaClient{
		api:    api.NewClient(base, httpClient),
		http:   httpClient,
		config: config,
	}, nil
}

// GenerateJSON asks the model for a JSON response using Ollama's json format mode
func (c *OllamaClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:   c.config.ModelName(),
		Prompt:  prompt,
		Stream:  &stream,
		Format:  json.RawMessage(`"json"`),
		Options: map[string]any{"temperature": c.config.Temperature},
	}

	var sb strings.Builder
	err := c.api.Generate(ctx, req, func(r api.GenerateResponse) error {
		sb.WriteString(r.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := CleanJSONBlock(sb.String())
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// Provider returns ProviderOllama
func (c *OllamaClient) Provider() Provider {
	return ProviderOllama
}

// Model returns the configured model name
func (c *OllamaClient) Model() string {
	return c.config.ModelName()
}

// Close drops idle connections held by the transport.
func (c *OllamaClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
