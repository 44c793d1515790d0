// Package deepseek binds the abstract completion contract to the DeepSeek
// chat-completions HTTP API.
package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"chatserver/internal/ai"
)

const defaultBaseURL = "https://api.deepseek.com"

// Adapter implements ai.Adapter for DeepSeek
type Adapter struct {
	apiKey  string
	model   string
	client  *http.Client
	baseURL string
}

// NewAdapter creates a new DeepSeek adapter
func NewAdapter(apiKey, model string) *Adapter {
	if model == "" {
		model = "deepseek-chat"
	}
	return &Adapter{
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
		baseURL: defaultBaseURL,
	}
}

// NewAdapterWithBaseURL creates an adapter against a non-default endpoint.
// Used by tests to point at a stub server.
func NewAdapterWithBaseURL(apiKey, model, baseURL string) *Adapter {
	a := NewAdapter(apiKey, model)
	a.baseURL = baseURL
	return a
}

// Name returns the adapter identifier
func (a *Adapter) Name() string {
	return "deepseek"
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
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

// Complete sends the messages to DeepSeek and returns the content of the
// last choice.
func (a *Adapter) Complete(ctx context.Context, messages []ai.Message) (string, error) {
	msgs := make([]chatMessage, len(messages))
	for i, m := range messages {
		msgs[i] = chatMessage{Role: string(m.Role), Content: m.Content}
	}

	body, err := json.Marshal(chatRequest{Model: a.model, Messages: msgs})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", &ai.NetworkError{Adapter: a.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &ai.NetworkError{Adapter: a.Name(), Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", &ai.NetworkError{Adapter: a.Name(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(chatResp.Choices) == 0 {
		return "", ai.ErrNoResponse
	}

	return chatResp.Choices[len(chatResp.Choices)-1].Message.Content, nil
}
