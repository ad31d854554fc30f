// Package trends supplies the extra context used by deep-search turns.
package trends

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

const (
	Placeholder     = "Recent X posts suggest a rise in smart lock vulnerabilities (placeholder)."
	DefaultMaxRunes = 400
)

// Lookup returns a short text describing current trends related to query.
type Lookup interface {
	Trends(ctx context.Context, query string) (string, error)
}

// Static always returns the same text.
type Static struct {
	Text string
}

func (s Static) Trends(ctx context.Context, query string) (string, error) {
	slog.Info("fetching trends", "source", "static", "query", query)
	if s.Text == "" {
		return Placeholder, nil
	}
	return s.Text, nil
}

// Website extracts the visible text of a web page and uses it as trend context.
type Website struct {
	URL      string
	MaxRunes int
	Client   *http.Client
}

func (w Website) Trends(ctx context.Context, query string) (string, error) {
	slog.Info("fetching trends", "source", w.URL, "query", query)
	client := w.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch website: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %v", resp.Status)
	}
	text, err := visibleText(resp.Body)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.New("website contained no text")
	}
	maxRunes := w.MaxRunes
	if maxRunes <= 0 {
		maxRunes = DefaultMaxRunes
	}
	return truncate(text, maxRunes), nil
}

func visibleText(r io.Reader) (string, error) {
	var words []string
	skipDepth := 0
	tokenizer := html.NewTokenizer(r)
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(tokenizer.Err(), io.EOF) {
				return strings.Join(words, " "), nil
			}
			return "", fmt.Errorf("tokenizer error: %w", tokenizer.Err())
		case html.StartTagToken:
			if name, _ := tokenizer.TagName(); isHidden(name) {
				skipDepth++
			}
		case html.EndTagToken:
			if name, _ := tokenizer.TagName(); isHidden(name) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			trimmed := bytes.TrimSpace(tokenizer.Text())
			if len(trimmed) > 0 {
				words = append(words, strings.Fields(string(trimmed))...)
			}
		}
	}
}

func isHidden(tag []byte) bool {
	switch string(tag) {
	case "script", "style", "noscript":
		return true
	}
	return false
}

func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return strings.TrimSpace(string(runes[:maxRunes])) + "..."
}
