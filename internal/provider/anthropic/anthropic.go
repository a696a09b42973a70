// Package anthropic implements the provider interface against the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"time"

	"github.com/huntridge-labs/argus/internal/httpclient"
	"github.com/huntridge-labs/argus/internal/provider"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	defaultTimeout = 30 * time.Second
)

func init() {
	provider.Register("anthropic", "ANTHROPIC_API_KEY", func(cfg provider.Config) provider.Provider {
		return New(cfg)
	})
}

// Provider calls the Anthropic Messages API.
type Provider struct {
	cfg    provider.Config
	client *httpclient.Client
}

// New creates an Anthropic provider from the given config.
func New(cfg provider.Config) *Provider {
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Provider{
		cfg:    cfg,
		client: httpclient.New(baseURL, httpclient.WithTimeout(timeout)),
	}
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Complete sends the prompt as a single user message and returns the first
// content block's text.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	req := messagesRequest{
		Model:     p.cfg.Model,
		MaxTokens: p.cfg.MaxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	}
	headers := map[string]string{
		"x-api-key":         p.cfg.APIKey,
		"anthropic-version": apiVersion,
	}

	var resp messagesResponse
	if err := p.client.PostJSON(ctx, "/v1/messages", headers, req, &resp); err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("anthropic: empty response content")
	}
	return resp.Content[0].Text, nil
}
