// Package llm wraps chat-completion providers behind a two-turn Completer.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// Temperature is fixed low so recommendations stay close to the requested shape.
const Temperature float32 = 0.2

// EmptyCompletion is returned when a provider answers without any text.
const EmptyCompletion = "{}"

type Provider string

const (
	ProviderGroq   Provider = "groq"
	ProviderGemini Provider = "gemini"
)

// Completer sends exactly one system turn and one user turn and returns the
// assistant text. Implementations never retry.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Model() string
}

// Config carries the settings of every supported provider; only the selected one is read.
type Config struct {
	Provider Provider
	OpenAI   OpenAIConfig
	Gemini   GeminiConfig
}

// New builds the Completer for cfg.Provider.
func New(ctx context.Context, cfg Config) (Completer, error) {
	switch Provider(strings.ToLower(string(cfg.Provider))) {
	case "", ProviderGroq:
		return NewOpenAICompleter(cfg.OpenAI)
	case ProviderGemini:
		return NewGeminiCompleter(ctx, cfg.Gemini)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}

func orEmpty(s string) string {
	if s == "" {
		return EmptyCompletion
	}
	return s
}
