// Package openai delegates to the official OpenAI client. Failures are
// returned as *models.BackendError, no retrying is done here besides what
// the client itself does.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	oshared "github.com/openai/openai-go/shared"

	"github.com/baalimago/lockbot/internal/models"
	"github.com/baalimago/lockbot/internal/prompt"
)

const (
	ServiceName = "openai"
	MaxTokens   = 300
)

var Models = []string{"gpt-4o", "gpt-3.5-turbo", "gpt-4-turbo"}

type Client struct {
	client *oai.Client
}

type Request struct {
	Prompt  string
	Model   string
	History []models.Message
}

// New constructs the underlying client. Extra options are appended after
// the api key, use them for base url or retry overrides.
func New(apiKey string, opts ...option.RequestOption) *Client {
	if apiKey == "" {
		return &Client{}
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	c := oai.NewClient(opts...)
	return &Client{client: &c}
}

func toMessageParams(history []models.Message) []oai.ChatCompletionMessageParamUnion {
	ret := make([]oai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	for _, msg := range history {
		switch msg.Role {
		case models.RoleAssistant:
			ret = append(ret, oai.AssistantMessage(msg.Content))
		case models.RoleSystem:
			ret = append(ret, oai.SystemMessage(msg.Content))
		default:
			ret = append(ret, oai.UserMessage(msg.Content))
		}
	}
	return ret
}

func (c *Client) Reply(ctx context.Context, req Request) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("openai: %w", models.ErrMissingClient)
	}
	messages := toMessageParams(req.History)
	messages = append(messages, oai.UserMessage(prompt.Build(prompt.Persona, req.Prompt, req.History, "")))

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, oai.ChatCompletionNewParams{
		Model:     oshared.ChatModel(req.Model),
		Messages:  messages,
		MaxTokens: oai.Int(MaxTokens),
	})
	if err != nil {
		slog.Error("openai call failed", "model", req.Model, "latency", time.Since(start), "error", err)
		return "", &models.BackendError{Service: ServiceName, Err: err}
	}
	if len(resp.Choices) == 0 {
		slog.Error("openai returned no choices", "model", req.Model, "latency", time.Since(start))
		return "", &models.BackendError{Service: ServiceName, Err: errors.New("response contained no choices")}
	}
	slog.Info("openai replied", "model", req.Model, "latency", time.Since(start))
	return resp.Choices[0].Message.Content, nil
}
