package chat

import (
	"context"
	"errors"
	"net"
)

// FailureKind is the closed set of request-time failure categories.
type FailureKind int

const (
	FailureTimedOut FailureKind = iota
	FailureNetwork
	FailureClientError
	FailureServerError
	FailureOther
)

// Banner texts per failure kind. These are shown transiently near the
// widget; the transcript entry always uses TranscriptErrorText instead.
const (
	bannerTimeout = "Request timed out. Please try again."
	bannerNetwork = "Unable to connect to server. Please check your connection."
	bannerClient  = "Invalid request. Please check your message."
	bannerServer  = "Server error. Please try again later."
	bannerGeneric = "An error occurred while sending your message."
)

// TranscriptErrorText is the fixed assistant text appended to the
// transcript for any failed attempt, regardless of failure kind.
const TranscriptErrorText = "Sorry, I encountered an error. Please try again."

// Classify maps a request failure to its category and user-facing banner
// text. Precedence, first match wins: timeout, network, 4xx, 5xx, generic.
func Classify(err error) (FailureKind, string) {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimedOut, bannerTimeout
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.Code >= 400 && statusErr.Code < 500:
			return FailureClientError, bannerClient
		case statusErr.Code >= 500:
			return FailureServerError, bannerServer
		}
		return FailureOther, bannerGeneric
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return FailureNetwork, bannerNetwork
	}

	return FailureOther, bannerGeneric
}
