// Package openai implements the provider interface against the OpenAI Chat
// Completions API. OpenAI-compatible backends (Azure OpenAI, Ollama, vLLM)
// work through the api_base_url setting.
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/huntridge-labs/argus/internal/httpclient"
	"github.com/huntridge-labs/argus/internal/provider"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultTimeout = 30 * time.Second
)

func init() {
	provider.Register("openai", "OPENAI_API_KEY", func(cfg provider.Config) provider.Provider {
		return New(cfg)
	})
}

// Provider calls the OpenAI Chat Completions API.
type Provider struct {
	cfg    provider.Config
	client *httpclient.Client
}

// New creates an OpenAI provider from the given config.
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

type chatRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt as a single user message and returns the first
// choice's content.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Model:     p.cfg.Model,
		MaxTokens: p.cfg.MaxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	}
	headers := map[string]string{
		"Authorization": "Bearer " + p.cfg.APIKey,
	}

	var resp chatResponse
	if err := p.client.PostJSON(ctx, "/chat/completions", headers, req, &resp); err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response choices")
	}
	return resp.Choices[0].Message.Content, nil
}
