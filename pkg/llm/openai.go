package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "llama3-70b-8192"
)

// OpenAIConfig targets any OpenAI-compatible endpoint; the defaults point at Groq.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type openAICompleter struct {
	client *openai.Client
	model  string
}

func NewOpenAICompleter(cfg OpenAIConfig) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm: api key is required")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = DefaultGroqBaseURL
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGroqModel
	}
	return &openAICompleter{client: openai.NewClientWithConfig(clientCfg), model: model}, nil
}

func (c *openAICompleter) Model() string { return c.model }

func (c *openAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return EmptyCompletion, nil
	}
	return orEmpty(resp.Choices[0].Message.Content), nil
}
