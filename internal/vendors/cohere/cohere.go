// Package cohere sends the current turn, a preamble and the chat history
// as separate fields of the Cohere chat endpoint.
package cohere

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/baalimago/lockbot/internal/models"
	"github.com/baalimago/lockbot/internal/prompt"
	"github.com/baalimago/lockbot/internal/text/generic"
)

const (
	ChatURL     = "https://api.cohere.ai/v1/chat"
	MaxTokens   = 300
	Temperature = 0.7
)

var Models = []string{"command-r", "command"}

type Client struct {
	http *generic.Client
}

type Request struct {
	Prompt  string
	Model   string
	History []models.Message
}

type chatTurn struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

type chatRequest struct {
	Message     string     `json:"message"`
	Preamble    string     `json:"preamble"`
	ChatHistory []chatTurn `json:"chat_history"`
	Model       string     `json:"model"`
	MaxTokens   int        `json:"max_tokens"`
	Temperature float64    `json:"temperature"`
}

type chatResponse struct {
	Text string `json:"text"`
}

// New returns a client for url. No timeout is set unless httpClient has one.
func New(url, apiKey string, httpClient *http.Client) *Client {
	if url == "" {
		url = ChatURL
	}
	return &Client{http: generic.NewClient(url, apiKey, httpClient, "DEBUG_COHERE")}
}

// ChatRole maps a message role to the two-party naming of the chat history.
func ChatRole(r models.Role) string {
	switch r {
	case models.RoleUser:
		return "User"
	case models.RoleAssistant:
		return "Chatbot"
	default:
		return "System"
	}
}

func toChatHistory(history []models.Message) []chatTurn {
	ret := make([]chatTurn, 0, len(history))
	for _, msg := range history {
		ret = append(ret, chatTurn{Role: ChatRole(msg.Role), Message: msg.Content})
	}
	return ret
}

// Reply asks cohere for a reply. Failures are returned as an 'Oops' reply,
// only a missing client is reported as an error.
func (c *Client) Reply(ctx context.Context, req Request) (string, error) {
	if c == nil || !c.http.HasKey() {
		return "", fmt.Errorf("cohere: %w", models.ErrMissingClient)
	}
	payload := chatRequest{
		Message:     req.Prompt,
		Preamble:    prompt.Build(prompt.Persona, "", req.History, ""),
		ChatHistory: toChatHistory(req.History),
		Model:       req.Model,
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
	}
	start := time.Now()
	var res chatResponse
	if _, err := c.http.PostJSON(ctx, payload, &res); err != nil {
		slog.Error("cohere call failed", "model", req.Model, "latency", time.Since(start), "error", err)
		return fmt.Sprintf("Oops, something broke with Cohere! Error: %v", err), nil
	}
	slog.Info("cohere replied", "model", req.Model, "latency", time.Since(start))
	return res.Text, nil
}
