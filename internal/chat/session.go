package chat

import (
	"sync"

	"github.com/google/uuid"

	"wellbot/internal/models"
)

// Entry is one processed exchange in a session's ordered log.
type Entry struct {
	Message    models.Message        `json:"message"`
	Assessment models.RiskAssessment `json:"assessment"`
	Mode       models.Mode           `json:"mode"`
	Reply      string                `json:"reply"`
	State      models.MessageState   `json:"state"`
	AlertState models.MessageState   `json:"alert_state,omitempty"`
}

// SessionStore holds the in-memory, append-only message log per session.
// Sessions are never shared across users and live only for the process
// lifetime. The mutex guards the map against concurrent HTTP submissions;
// entries themselves are never mutated after append.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string][]Entry
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string][]Entry)}
}

// Resolve returns the given session ID, or a fresh one when empty.
func (s *SessionStore) Resolve(sessionID string) string {
	if sessionID == "" {
		return uuid.NewString()
	}
	return sessionID
}

// Append adds an entry to the session's ordered log, creating the session
// on first use.
func (s *SessionStore) Append(sessionID string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], entry)
}

// History returns a copy of the session's log in arrival order.
func (s *SessionStore) History(sessionID string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.sessions[sessionID]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
