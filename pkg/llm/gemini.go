package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint; empty uses the public Gemini API.
	BaseURL string
}

type geminiCompleter struct {
	client *genai.Client
	model  string
}

func NewGeminiCompleter(ctx context.Context, cfg GeminiConfig) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm: gemini api key is required")
	}
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("llm: create gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &geminiCompleter{client: client, model: model}, nil
}

func (g *geminiCompleter) Model() string { return g.model }

func (g *geminiCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	temperature := Temperature
	config := &genai.GenerateContentConfig{
		Temperature:       &temperature,
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(user), config)
	if err != nil {
		return "", fmt.Errorf("llm: generate content: %w", err)
	}
	if resp == nil {
		return EmptyCompletion, nil
	}
	return orEmpty(resp.Text()), nil
}
