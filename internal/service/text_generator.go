package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// TextGenerator produces model output for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var ErrGeneratorDisabled = errors.New("AI generation is not configured")

type geminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator returns a Gemini-backed generator, or one that always
// fails when no API key is configured.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (TextGenerator, error) {
	if apiKey == "" {
		return disabledGenerator{}, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiGenerator{client: client, model: model}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

type disabledGenerator struct{}

func (disabledGenerator) Generate(context.Context, string) (string, error) {
	return "", ErrGeneratorDisabled
}

// decodeModelJSON strips markdown code fences from model output and decodes it.
func decodeModelJSON(text string, out any) error {
	clean := strings.ReplaceAll(text, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)
	if err := json.Unmarshal([]byte(clean), out); err != nil {
		return failed("Invalid AI response format", err)
	}
	return nil
}
