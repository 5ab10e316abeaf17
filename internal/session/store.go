// Package session holds the console operator's authentication state:
// the current user, the opaque bearer token, and the authenticated
// flag. The store is constructed once and passed explicitly to the API
// layer and the view tree; observers subscribe for change
// notifications instead of reaching for ambient global state.
package session

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/lorrc/merchant-support-console/internal/domain"
)

// State is a point-in-time snapshot of the session. Authenticated is
// only ever true when Token is present.
type State struct {
	User          *domain.User `json:"user,omitempty"`
	Token         string       `json:"token,omitempty"`
	Authenticated bool         `json:"authenticated"`
}

// Store keeps the session state and persists it across restarts. All
// methods are safe for concurrent use; Login and Logout are single
// assignments under the lock, so observers always see a consistent
// snapshot.
type Store struct {
	mu        sync.RWMutex
	state     State
	filePath  string
	logger    *slog.Logger
	observers []func(State)
}

// NewStore creates a session store persisting to filePath. An empty
// filePath disables persistence (used by tests).
func NewStore(filePath string, logger *slog.Logger) *Store {
	return &Store{
		filePath: filePath,
		logger:   logger.With("component", "session"),
	}
}

// Restore loads a previously persisted session from disk. A missing or
// unreadable file leaves the store empty; a persisted state that
// violates the token invariant is discarded rather than trusted.
func (s *Store) Restore() {
	if s.filePath == "" {
		return
	}
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Warn("discarding corrupt session file", "path", s.filePath, "error", err)
		return
	}
	if state.Authenticated && state.Token == "" {
		s.logger.Warn("discarding inconsistent session file", "path", s.filePath)
		return
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// State returns the current session synchronously. The API client's
// request path calls this outside any UI cycle.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token returns the current bearer token, or empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Login stores the authenticated user and token, persists the state,
// and notifies observers.
func (s *Store) Login(user domain.User, token string) {
	s.mu.Lock()
	s.state = State{User: &user, Token: token, Authenticated: token != ""}
	state := s.state
	observers := s.observers
	s.mu.Unlock()

	s.persist(state)
	for _, observer := range observers {
		observer(state)
	}
}

// Logout clears the session, persists the cleared form, and notifies
// observers. Purely local: no network call is made.
func (s *Store) Logout() {
	s.mu.Lock()
	s.state = State{}
	state := s.state
	observers := s.observers
	s.mu.Unlock()

	s.persist(state)
	for _, observer := range observers {
		observer(state)
	}
}

// Subscribe registers an observer invoked after every state change.
// Observers are called synchronously on the mutating goroutine and
// must not call back into the store.
func (s *Store) Subscribe(observer func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

func (s *Store) persist(state State) {
	if s.filePath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o700); err != nil {
		s.logger.Warn("failed to create session directory", "error", err)
		return
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		s.logger.Warn("failed to encode session", "error", err)
		return
	}
	// 0600: the file holds a bearer token.
	if err := os.WriteFile(s.filePath, data, 0o600); err != nil {
		s.logger.Warn("failed to persist session", "path", s.filePath, "error", err)
	}
}
