// Package ai wraps the text-completion upstream used to auto-fill card fields.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	appErrors "cardcomposer/internal/errors"
)

// Completer produces a completion for a single user prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error string `json:"error"`
}

// Reasoning models prefix answers with a thinking transcript; it is never
// part of the requested output.
var thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)

type httpCompleter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewCompleter(baseURL, apiKey string, client *http.Client) Completer {
	if client == nil {
		client = http.DefaultClient
	}

	return &httpCompleter{baseURL: baseURL, apiKey: apiKey, client: client}
}

func (c *httpCompleter) Complete(ctx context.Context, prompt string) (string, error) {

	body, err := json.Marshal(chatRequest{
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", appErrors.ThirdPartyError("AI service is unreachable").WithError(err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", appErrors.ThirdPartyError("Failed to read AI response").WithError(err)
	}

	var data chatResponse
	_ = json.Unmarshal(respBody, &data)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := data.Error
		if msg == "" {
			msg = "AI request failed"
		}

		return "", appErrors.ThirdPartyError(msg)
	}

	if len(data.Choices) == 0 {
		return "", appErrors.ParseError("AI response carried no choices")
	}

	text := data.Choices[0].Message.Content
	text = thinkBlock.ReplaceAllString(text, "")

	return strings.TrimSpace(text), nil
}
