// Package gemini implements the optional genre-classification fallback on
// Google Gemini. It is only wired up when GEMINI_API_KEY is configured.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Classifier asks Gemini to pick a genre from the configured taxonomy.
type Classifier struct {
	apiKey string
	model  string
}

// New returns a new Gemini classifier.
func New(apiKey, model string) *Classifier {
	return &Classifier{apiKey: apiKey, model: model}
}

// Classify returns exactly one of choices for the given book, or an error.
// The caller treats any failure as "no mapping"; a wrong answer from the
// model must never invent a new taxonomy value.
func (c *Classifier) Classify(ctx context.Context, title, rawGenre string, choices []string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini api key not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.SetTemperature(0)

	prompt := fmt.Sprintf(
		"Pick the single best genre for the book below. Answer with exactly one "+
			"value from this list and nothing else: %s\n\nTitle: %s\nCategory text: %s",
		strings.Join(choices, ", "), title, rawGenre)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned from Gemini")
	}

	if txt, ok := candidate.Content.Parts[0].(genai.Text); ok {
		return strings.TrimSpace(string(txt)), nil
	}
	return "", fmt.Errorf("unexpected response format from Gemini")
}
