// Package gemini binds the abstract completion contract to the Gemini API
// through the official client.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"chatserver/internal/ai"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Adapter implements ai.Adapter for Gemini
type Adapter struct {
	apiKey string
	model  string
}

// NewAdapter creates a new Gemini adapter
func NewAdapter(apiKey, model string) *Adapter {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Adapter{apiKey: apiKey, model: model}
}

// Name returns the adapter identifier
func (a *Adapter) Name() string {
	return "gemini"
}

// Complete sends the messages to Gemini and returns the generated text.
// Gemini has no separate assistant/system roles on this path; the
// messages are flattened into one prompt in order.
func (a *Adapter) Complete(ctx context.Context, messages []ai.Message) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", &ai.NetworkError{Adapter: a.Name(), Err: fmt.Errorf("failed to create client: %w", err)}
	}
	defer client.Close()

	var prompt strings.Builder
	for i, m := range messages {
		if i > 0 {
			prompt.WriteString("\n")
		}
		prompt.WriteString(m.Content)
	}

	model := client.GenerativeModel(a.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		return "", &ai.NetworkError{Adapter: a.Name(), Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ai.ErrNoResponse
	}

	var output strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output.WriteString(string(text))
		}
	}

	return output.String(), nil
}
