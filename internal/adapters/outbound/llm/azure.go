// Package llm implements domain.Enricher on top of an Azure OpenAI
// chat-completions deployment.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/groomroom/groomroom/internal/domain"
)

const defaultAPIVersion = "2024-06-01"

// ErrNotConfigured is returned when endpoint, deployment or key are missing.
var ErrNotConfigured = errors.New("azure openai is not configured (set llm.endpoint, llm.deployment and AZURE_OPENAI_API_KEY)")

// AzureEnricher calls one Azure OpenAI deployment.
type AzureEnricher struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewAzureEnricher builds the chat-completions URL from cfg.
func NewAzureEnricher(cfg domain.LLMConfig, apiKey string, client *http.Client) (*AzureEnricher, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" || cfg.Deployment == "" || apiKey == "" {
		return nil, ErrNotConfigured
	}
	version := cfg.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &AzureEnricher{
		url:        fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s", endpoint, cfg.Deployment, version),
		apiKey:     apiKey,
		httpClient: client,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Enrich sends the prompt for pc and returns the model's raw reply. Every
// failure wraps domain.ErrEnrichmentUnavailable.
func (e *AzureEnricher) Enrich(ctx context.Context, pc domain.PromptContext) (string, error) {
	system, user := Prompt(pc)
	body, err := json.Marshal(chatRequest{
		Messages:    []chatMessage{{Role: "system", Content: system}, {Role: "user", Content: user}},
		Temperature: 0.2,
		MaxTokens:   800,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encoding request: %v", domain.ErrEnrichmentUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEnrichmentUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEnrichmentUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read body

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: azure openai returned status %s", domain.ErrEnrichmentUnavailable, resp.Status)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", domain.ErrEnrichmentUnavailable, err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: azure openai returned no choices", domain.ErrEnrichmentUnavailable)
	}
	return out.Choices[0].Message.Content, nil
}
