// Package chat implements the conversational session core: the message
// transcript, input validation, the request lifecycle against the chat
// backend, and failure classification.
package chat

import "time"

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Greeting is the synthetic assistant message seeding every fresh transcript.
const Greeting = "Hello! I am your AI assistant. How can I help you today?"

// Message is a single transcript entry. Messages are append-only: once
// stored they are never mutated or removed except by a full reset.
type Message struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	IsError   bool      `json:"isError,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func newUserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text, Timestamp: time.Now()}
}

func newAssistantMessage(text string, isError bool) Message {
	return Message{Role: RoleAssistant, Text: text, IsError: isError, Timestamp: time.Now()}
}

func greetingMessage() Message {
	return newAssistantMessage(Greeting, false)
}
