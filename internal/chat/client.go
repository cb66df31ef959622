// Package chat proxies prompts to an external chat-completion API. The
// proxy is stateless: one upstream call per request, no history.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	apperrors "github.com/kugicode/backend-coursework1/pkg/errors"
	"github.com/kugicode/backend-coursework1/pkg/httpclient"
)

const completionsPath = "/v1/chat/completions"

// Config holds the upstream chat API settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Client calls the upstream completion API through a circuit breaker.
type Client struct {
	http   *httpclient.CircuitBreakerClient
	cfg    Config
	logger *slog.Logger
}

// NewClient creates a chat client with retry and circuit-breaker
// protection around the upstream API.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	base := httpclient.New(httpclient.DefaultConfig())
	cb := httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig("chat-api"), logger)
	return &Client{
		http:   cb,
		cfg:    cfg,
		logger: logger,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Complete sends one user prompt upstream and returns the reply text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:    c.cfg.Model,
		Messages: []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		if httpclient.IsCircuitOpen(err) {
			return "", apperrors.Unavailable("chat API is temporarily unavailable")
		}
		return "", fmt.Errorf("call completion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", httpclient.ParseResponseError(resp, "chat API")
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", apperrors.Internal(fmt.Errorf("completion response has no choices"))
	}

	c.logger.DebugContext(ctx, "chat completion returned",
		slog.Int("prompt_len", len(prompt)),
	)

	return completion.Choices[0].Message.Content, nil
}
