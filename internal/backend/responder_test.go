package backend

import (
	"context"
	"testing"

	"github.com/setinbound/chatkit/internal/config"
)

func TestEchoResponder(t *testing.T) {
	out, err := EchoResponder{}.Reply(context.Background(), "s1", "hello")
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if out != "You said: hello" {
		t.Errorf("Reply = %q", out)
	}
}

func TestNewResponder(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"echo", config.Config{Responder: config.ResponderEcho}, false},
		{"unknown mode", config.Config{Responder: "carrier-pigeon"}, true},
		{"llm without openai key", config.Config{
			Responder:   config.ResponderLLM,
			LLMProvider: config.ProviderOpenAI,
		}, true},
		{"llm without anthropic key", config.Config{
			Responder:   config.ResponderLLM,
			LLMProvider: config.ProviderAnthropic,
		}, true},
		{"llm unknown provider", config.Config{
			Responder:   config.ResponderLLM,
			LLMProvider: "abacus",
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResponder(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewResponder() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
