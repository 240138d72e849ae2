package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError reports a non-2xx response from the chat backend. Message
// carries the backend's error field when present, otherwise a generic
// status-based text.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// ErrEmptyOutput indicates a 2xx response whose body is missing the
// output field or carries an empty one.
var ErrEmptyOutput = errors.New("no response received from server")

// Source identifies the origin site on outbound requests.
type Source struct {
	Platform string `json:"platform"`
	Contact  string `json:"contact"`
}

type chatRequest struct {
	SessionID string    `json:"sessionId"`
	ChatInput string    `json:"chatInput"`
	Source    Source    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

type chatResponse struct {
	Output string `json:"output"`
	Error  string `json:"error,omitempty"`
}

// Client sends chat messages to the conversational backend over its
// /proxy/chat pass-through contract.
type Client struct {
	endpoint   string
	source     Source
	httpClient *http.Client
}

// NewClient creates a backend client for the given endpoint. The source
// tag is attached verbatim to every request. Per-request deadlines are
// the caller's responsibility via context; the underlying http.Client
// carries no timeout of its own so cancellation stays with the lifecycle.
func NewClient(endpoint string, source Source) *Client {
	return &Client{
		endpoint:   endpoint,
		source:     source,
		httpClient: &http.Client{},
	}
}

// Send posts one user message and returns the assistant reply text.
// Exactly one request is issued per call; there is no retry.
func (c *Client) Send(ctx context.Context, sessionID, text string) (string, error) {
	body, err := json.Marshal(chatRequest{
		SessionID: sessionID,
		ChatInput: text,
		Source:    c.source,
		Timestamp: time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		var cr chatResponse
		if json.Unmarshal(respBody, &cr) == nil && cr.Error != "" {
			msg = cr.Error
		}
		return "", &StatusError{Code: resp.StatusCode, Message: msg}
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", ErrEmptyOutput)
	}
	if cr.Output == "" {
		return "", ErrEmptyOutput
	}
	return cr.Output, nil
}
