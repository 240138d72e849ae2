package chat

import (
	"fmt"
	"sync"
)

// Store owns the widget's session state: the ordered transcript, the
// in-flight flag, widget visibility and the transient error banner.
// All mutations notify subscribers after the state change is applied.
//
// The transcript is append-only; entries are never mutated or removed
// except by Clear, which reseeds the greeting.
type Store struct {
	mu        sync.Mutex
	messages  []Message
	pending   bool
	open      bool
	lastError string
	subs      []func()
}

// NewStore creates a store seeded with the greeting message, closed,
// idle and with no error.
func NewStore() *Store {
	s := &Store{}
	s.messages = []Message{greetingMessage()}
	return s
}

// Subscribe registers fn to run after every state mutation. Callbacks
// run outside the store lock, in registration order.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) publish() {
	s.mu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// AppendUserMessage appends a user-authored entry. The text must already
// have passed Validate; appending does not itself start a request.
func (s *Store) AppendUserMessage(text string) {
	s.mu.Lock()
	s.messages = append(s.messages, newUserMessage(text))
	s.mu.Unlock()
	s.publish()
}

// AppendAssistantMessage appends an assistant entry, synthetic error
// notices included.
func (s *Store) AppendAssistantMessage(text string, isError bool) {
	s.mu.Lock()
	s.messages = append(s.messages, newAssistantMessage(text, isError))
	s.mu.Unlock()
	s.publish()
}

// SetPending toggles the in-flight flag. Setting it true while a request
// is already outstanding is rejected, enforcing at most one in flight.
func (s *Store) SetPending(pending bool) error {
	s.mu.Lock()
	if pending && s.pending {
		s.mu.Unlock()
		return fmt.Errorf("request already in flight")
	}
	s.pending = pending
	s.mu.Unlock()
	s.publish()
	return nil
}

// SetOpen sets widget visibility and clears the error banner.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	s.open = open
	s.lastError = ""
	s.mu.Unlock()
	s.publish()
}

// ToggleOpen flips widget visibility and clears the error banner.
func (s *Store) ToggleOpen() {
	s.mu.Lock()
	s.open = !s.open
	s.lastError = ""
	s.mu.Unlock()
	s.publish()
}

// SetLastError sets the transient banner text.
func (s *Store) SetLastError(text string) {
	s.mu.Lock()
	s.lastError = text
	s.mu.Unlock()
	s.publish()
}

// ClearLastError drops the banner, as any new user action does.
func (s *Store) ClearLastError() {
	s.mu.Lock()
	if s.lastError == "" {
		s.mu.Unlock()
		return
	}
	s.lastError = ""
	s.mu.Unlock()
	s.publish()
}

// Clear resets the transcript to the seeded greeting and drops pending
// and the banner. An in-flight request is not joined here; its eventual
// result is discarded by the session's attempt guard.
func (s *Store) Clear() {
	s.mu.Lock()
	s.messages = []Message{greetingMessage()}
	s.pending = false
	s.lastError = ""
	s.mu.Unlock()
	s.publish()
}

// Messages returns a copy of the transcript in display order.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Pending reports whether a request is in flight.
func (s *Store) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// IsOpen reports widget visibility.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// LastError returns the current banner text, empty if none.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}
