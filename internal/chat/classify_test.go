package chat

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   FailureKind
		wantBanner string
	}{
		{
			"deadline exceeded",
			context.DeadlineExceeded,
			FailureTimedOut,
			"Request timed out. Please try again.",
		},
		{
			"wrapped deadline from http client",
			&url.Error{Op: "Post", URL: "http://x", Err: context.DeadlineExceeded},
			FailureTimedOut,
			"Request timed out. Please try again.",
		},
		{
			"connection refused",
			fmt.Errorf("execute request: %w", &net.OpError{Op: "dial", Err: errors.New("connection refused")}),
			FailureNetwork,
			"Unable to connect to server. Please check your connection.",
		},
		{
			"status 400",
			&StatusError{Code: 400, Message: "HTTP error! status: 400"},
			FailureClientError,
			"Invalid request. Please check your message.",
		},
		{
			"status 404",
			&StatusError{Code: 404, Message: "HTTP error! status: 404"},
			FailureClientError,
			"Invalid request. Please check your message.",
		},
		{
			"status 500",
			&StatusError{Code: 500, Message: "HTTP error! status: 500"},
			FailureServerError,
			"Server error. Please try again later.",
		},
		{
			"status 503",
			&StatusError{Code: 503, Message: "service unavailable"},
			FailureServerError,
			"Server error. Please try again later.",
		},
		{
			"redirect status falls through",
			&StatusError{Code: 302, Message: "HTTP error! status: 302"},
			FailureOther,
			"An error occurred while sending your message.",
		},
		{
			"empty output",
			ErrEmptyOutput,
			FailureOther,
			"An error occurred while sending your message.",
		},
		{
			"wrapped empty output",
			fmt.Errorf("unmarshal response: %w", ErrEmptyOutput),
			FailureOther,
			"An error occurred while sending your message.",
		},
		{
			"unknown error",
			errors.New("something odd"),
			FailureOther,
			"An error occurred while sending your message.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, banner := Classify(tt.err)
			if kind != tt.wantKind {
				t.Errorf("Classify(%v) kind = %v, want %v", tt.err, kind, tt.wantKind)
			}
			if banner != tt.wantBanner {
				t.Errorf("Classify(%v) banner = %q, want %q", tt.err, banner, tt.wantBanner)
			}
		})
	}
}

func TestClassifyTimeoutBeatsNetError(t *testing.T) {
	// url.Error implements net.Error; a deadline wrapped in one must
	// still classify as a timeout, not a network failure.
	err := &url.Error{Op: "Post", URL: "http://x", Err: context.DeadlineExceeded}
	kind, _ := Classify(err)
	if kind != FailureTimedOut {
		t.Errorf("kind = %v, want FailureTimedOut", kind)
	}
}
