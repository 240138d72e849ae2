package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/setinbound/chatkit/internal/metrics"
)

// DefaultTimeout is the wall-clock budget for one request attempt,
// measured from the moment the request is issued.
const DefaultTimeout = 30 * time.Second

// Sender posts one user message to the backend and returns the reply.
type Sender interface {
	Send(ctx context.Context, sessionID, text string) (string, error)
}

// SessionConfig configures a Session.
type SessionConfig struct {
	// SessionID is the opaque correlation token attached to every request.
	SessionID string
	// Timeout bounds each attempt; zero means DefaultTimeout.
	Timeout time.Duration
}

// Session drives the request lifecycle for one widget instance: it gates
// submissions on the pending flag, issues at most one request at a time,
// enforces the attempt timeout and applies exactly one outcome per
// accepted submission to the store.
//
// Each attempt carries a monotonically increasing id. A result is applied
// only if its id still matches the current one, so a cleared or torn-down
// session can never receive a late reply.
type Session struct {
	store     *Store
	sender    Sender
	sessionID string
	timeout   time.Duration
	logger    *slog.Logger
	collector *metrics.Collector

	mu      sync.Mutex
	attempt uint64
	cancel  context.CancelFunc
}

// NewSession creates a session around the given store and sender.
func NewSession(store *Store, sender Sender, cfg SessionConfig, logger *slog.Logger, collector *metrics.Collector) *Session {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &Session{
		store:     store,
		sender:    sender,
		sessionID: cfg.SessionID,
		timeout:   cfg.Timeout,
		logger:    logger,
		collector: collector,
	}
}

// Store returns the session's state container.
func (s *Session) Store() *Store {
	return s.store
}

// SessionID returns the correlation token sent with every request.
func (s *Session) SessionID() string {
	return s.sessionID
}

// Metrics returns a snapshot of resolved-attempt statistics.
func (s *Session) Metrics() metrics.Snapshot {
	return s.collector.Snapshot()
}

// Submit validates text and, if nothing is in flight, appends the user
// message and issues the request. A validation failure is returned for
// inline display and leaves the transcript and pending flag untouched.
// Submitting while a request is outstanding is a silent no-op. There is
// no retry; a failed attempt requires a fresh submission.
func (s *Session) Submit(text string) error {
	s.store.ClearLastError()

	if err := Validate(text); err != nil {
		return err
	}
	trimmed := strings.TrimSpace(text)

	s.mu.Lock()
	if s.store.Pending() {
		s.mu.Unlock()
		return nil
	}
	if err := s.store.SetPending(true); err != nil {
		s.mu.Unlock()
		return nil
	}
	s.store.AppendUserMessage(trimmed)

	s.attempt++
	id := s.attempt
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	s.cancel = cancel
	s.mu.Unlock()

	s.logger.Debug("sending message", "attempt", id, "chars", len(trimmed))
	start := time.Now()

	go func() {
		out, err := s.sender.Send(ctx, s.sessionID, trimmed)
		s.apply(id, out, err, time.Since(start), cancel)
	}()
	return nil
}

// apply resolves one attempt. The timeout context is always released and
// pending always cleared on the current attempt, whatever the outcome.
func (s *Session) apply(id uint64, out string, err error, elapsed time.Duration, cancel context.CancelFunc) {
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if id != s.attempt {
		s.logger.Debug("discarding stale attempt result", "attempt", id, "current", s.attempt)
		return
	}
	s.cancel = nil

	if perr := s.store.SetPending(false); perr != nil {
		s.logger.Warn("failed to clear pending", "error", perr)
	}

	if err != nil {
		kind, banner := Classify(err)
		s.collector.RecordTiming(outcomeOp(kind), elapsed)
		s.logger.Error("send failed", "attempt", id, "duration_ms", elapsed.Milliseconds(), "error", err)
		s.store.SetLastError(banner)
		s.store.AppendAssistantMessage(TranscriptErrorText, true)
		return
	}

	s.collector.RecordTiming(metrics.OpSucceeded, elapsed)
	s.logger.Debug("reply received", "attempt", id, "duration_ms", elapsed.Milliseconds())
	s.store.AppendAssistantMessage(out, false)
}

// Clear resets the transcript to the seeded greeting. An outstanding
// request is cancelled and its id invalidated so its eventual resolution
// cannot touch the fresh transcript.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempt++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.store.Clear()
}

// Close tears the session down, cancelling any outstanding request and
// discarding its eventual result. Pending is cleared here because the
// discarded attempt's resolution returns before touching the store; the
// transcript is left as-is.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempt++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	_ = s.store.SetPending(false)
}

func outcomeOp(kind FailureKind) string {
	switch kind {
	case FailureTimedOut:
		return metrics.OpTimedOut
	case FailureNetwork:
		return metrics.OpNetwork
	case FailureClientError:
		return metrics.OpClientError
	case FailureServerError:
		return metrics.OpServerError
	default:
		return metrics.OpOther
	}
}
