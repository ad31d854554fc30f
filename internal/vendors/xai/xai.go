// Package xai talks to the xAI chat completions endpoint directly over HTTP.
// Failures never surface as errors: once the retries are spent, the failure
// is described in the reply text.
package xai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/baalimago/lockbot/internal/models"
	"github.com/baalimago/lockbot/internal/prompt"
	"github.com/baalimago/lockbot/internal/text/generic"
)

const (
	ChatURL        = "https://api.x.ai/v1/chat/completions"
	MaxTokens      = 300
	AttemptTimeout = 10 * time.Second
)

var Models = []string{"grok-2", "grok-2-mini"}

type Client struct {
	Backoff        generic.Backoff
	AttemptTimeout time.Duration
	http           *generic.Client
}

type Request struct {
	Prompt     string
	Model      string
	DeepSearch bool
	History    []models.Message
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// New returns a client for url. A nil httpClient uses a plain http.Client,
// the per attempt timeout is enforced through the request context.
func New(url, apiKey string, httpClient *http.Client) *Client {
	if url == "" {
		url = ChatURL
	}
	hc := generic.NewClient(url, apiKey, httpClient, "DEBUG_XAI")
	hc.Limiter = generic.NewRateLimiter("x-ratelimit-remaining-tokens", "x-ratelimit-reset-tokens")
	return &Client{
		Backoff:        generic.DefaultBackoff,
		AttemptTimeout: AttemptTimeout,
		http:           hc,
	}
}

// Reply asks grok for a reply. The only error returned is ErrMissingClient,
// everything else is reported as an 'Oops' reply.
func (c *Client) Reply(ctx context.Context, req Request) (string, error) {
	if c == nil || !c.http.HasKey() {
		return "", fmt.Errorf("xai: %w", models.ErrMissingClient)
	}
	extra := ""
	if req.DeepSearch {
		extra = prompt.DeepSearchInstruction
	}
	payload := chatRequest{
		Model: req.Model,
		Messages: []message{{
			Role:    string(models.RoleUser),
			Content: prompt.Build(prompt.Persona, req.Prompt, req.History, extra),
		}},
		MaxTokens: MaxTokens,
	}
	slog.Info("sending payload to xai", "model", payload.Model, "deep_search", req.DeepSearch, "prompt_chars", len(payload.Messages[0].Content))

	var reply string
	var lastBody []byte
	start := time.Now()
	err := generic.Retry(ctx, c.Backoff, func(ctx context.Context, attempt int) error {
		lastBody = nil
		if err := c.http.WaitForBudget(ctx, "service", "grok", "model", req.Model, "attempt", attempt); err != nil {
			return err
		}
		attemptCtx, cancel := context.WithTimeout(ctx, c.AttemptTimeout)
		defer cancel()
		attemptStart := time.Now()
		var res chatResponse
		body, err := c.http.PostJSON(attemptCtx, payload, &res)
		lastBody = body
		if err == nil && len(res.Choices) == 0 {
			err = errors.New("response contained no choices")
		}
		if err != nil {
			slog.Warn("xai attempt failed", "attempt", attempt, "latency", time.Since(attemptStart), "error", err)
			return err
		}
		slog.Info("xai replied", "attempt", attempt, "latency", time.Since(attemptStart))
		reply = res.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		details := "No response received"
		switch {
		case lastBody != nil:
			details = string(lastBody)
		case errors.Is(err, generic.ErrRateLimited):
			details = "No request sent, token budget exhausted"
		}
		slog.Error("xai failed", "model", req.Model, "error", err, "body", details, "latency", time.Since(start))
		return fmt.Sprintf("Oops, something broke! Error: %v. Details: %v", err, details), nil
	}
	return reply, nil
}
