// Package session provides the persistent anonymous session identifier
// correlating all requests from one profile.
package session

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store hands out the profile's session identifier: one opaque token,
// created lazily on first use, persisted across runs and never rotated
// except by an explicit Reset.
//
// Storage trouble never surfaces as an error; the store degrades to a
// process-lifetime token instead.
type Store struct {
	mu     sync.Mutex
	path   string
	cached string
	logger *slog.Logger
}

// NewStore creates a session store backed by the file at path. An empty
// path selects the default location under the user config directory.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path, logger: logger}
}

// DefaultPath returns the default session file location. Falls back to
// the temp directory when no user config directory is available.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "chatkit", "session")
}

// GetOrCreate returns the persisted session identifier, generating and
// persisting a fresh one if none exists. Idempotent: repeated calls
// within one profile return the identical value. Never fails; if the
// file cannot be read or written the token lives for this process only.
func (s *Store) GetOrCreate() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != "" {
		return s.cached
	}

	if data, err := os.ReadFile(s.path); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			s.cached = id
			return s.cached
		}
	}

	s.cached = uuid.NewString()
	s.persist(s.cached)
	return s.cached
}

// Reset discards the persisted identifier and returns a fresh one.
func (s *Store) Reset() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = uuid.NewString()
	s.persist(s.cached)
	return s.cached
}

func (s *Store) persist(id string) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.logger.Warn("session id not persisted", "error", err, "path", s.path)
		return
	}
	if err := os.WriteFile(s.path, []byte(id+"\n"), 0o600); err != nil {
		s.logger.Warn("session id not persisted", "error", err, "path", s.path)
	}
}
