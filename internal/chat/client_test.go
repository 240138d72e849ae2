package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSend(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"output": "Hi there"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, Source{Platform: "setinbound.com", Contact: "user"})
	out, err := c.Send(context.Background(), "session-1", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi there", out)

	assert.Equal(t, "session-1", got.SessionID)
	assert.Equal(t, "Hello", got.ChatInput)
	assert.Equal(t, "setinbound.com", got.Source.Platform)
	assert.Equal(t, "user", got.Source.Contact)
	assert.WithinDuration(t, time.Now(), got.Timestamp, time.Minute)
}

func TestClientSendErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error field used verbatim", 400, `{"error":"bad input"}`, "bad input"},
		{"no body falls back to status", 500, ``, "HTTP error! status: 500"},
		{"non-json body falls back to status", 502, `upstream died`, "HTTP error! status: 502"},
		{"empty error field falls back", 503, `{"error":""}`, "HTTP error! status: 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, Source{})
			_, err := c.Send(context.Background(), "s", "hi")
			require.Error(t, err)

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.Code)
			assert.Equal(t, tt.wantMsg, statusErr.Message)
		})
	}
}

func TestClientSendMalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing output", `{}`},
		{"empty output", `{"output":""}`},
		{"not json", `hello`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, Source{})
			_, err := c.Send(context.Background(), "s", "hi")
			require.ErrorIs(t, err, ErrEmptyOutput)
		})
	}
}

func TestClientSendContextCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewClient(srv.URL, Source{})
	_, err := c.Send(ctx, "s", "hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "err = %v", err)
}

func TestClientSendConnectionRefused(t *testing.T) {
	// Grab an address nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := NewClient(addr, Source{})
	_, err := c.Send(context.Background(), "s", "hi")
	require.Error(t, err)

	kind, _ := Classify(err)
	assert.Equal(t, FailureNetwork, kind)
}
