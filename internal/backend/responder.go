// Package backend implements the local development stand-in for the
// conversational backend: an HTTP server fulfilling the /proxy/chat
// contract the widget is built against.
package backend

import (
	"context"
	"fmt"

	"github.com/setinbound/chatkit/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Responder produces the assistant reply for one user message.
type Responder interface {
	Reply(ctx context.Context, sessionID, input string) (string, error)
}

// NewResponder creates a responder based on configuration.
func NewResponder(cfg config.Config) (Responder, error) {
	switch cfg.Responder {
	case config.ResponderEcho:
		return EchoResponder{}, nil
	case config.ResponderLLM:
		return NewLLMResponder(cfg)
	default:
		return nil, fmt.Errorf("unsupported responder: %s", cfg.Responder)
	}
}

// EchoResponder replies deterministically without any model behind it.
// Useful for widget development and wire-contract tests.
type EchoResponder struct{}

// Reply echoes the input back.
func (EchoResponder) Reply(_ context.Context, _ string, input string) (string, error) {
	return fmt.Sprintf("You said: %s", input), nil
}

// LLMResponder answers with a real model for end-to-end local testing.
type LLMResponder struct {
	llm       llms.Model
	modelName string
}

// NewLLMResponder creates an LLM-backed responder based on configuration.
func NewLLMResponder(cfg config.Config) (*LLMResponder, error) {
	var model llms.Model
	var err error

	switch cfg.LLMProvider {
	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.LLMModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}

	return &LLMResponder{
		llm:       model,
		modelName: cfg.LLMModel,
	}, nil
}

const systemPrompt = `You are the setinbound.com website assistant. Answer questions about
inbound marketing and the setinbound service. Be concise and friendly.
If you don't know something, say so and point the visitor to the contact form.`

// Reply generates the assistant reply for one user message.
func (r *LLMResponder) Reply(ctx context.Context, _ string, input string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, input),
	}

	response, err := r.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}
	return response.Choices[0].Content, nil
}

// Model returns the LLM model name, empty for non-LLM responders.
func (r *LLMResponder) Model() string {
	return r.modelName
}
