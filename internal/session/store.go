// Package session holds in-memory conversation state for the chatbot.
// Sessions live for the process lifetime only and are lost on restart.
package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Turn roles stored in a session. System and tool roles are used only for
// transient prompt construction and are never stored.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one role-tagged message within a session's history.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session represents one ongoing conversation. Turns are append-only and
// ordered by insertion; Context carries auxiliary data (serialized report and
// player data) for retrieval-augmented answering.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Turns        []Turn    `json:"turns"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	Context      string    `json:"-"`
}

// Store is the process-lifetime session map. The mutex guards the map
// itself; turn ordering within a session assumes one in-flight request per
// session at a time. There is no TTL or capacity bound.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Start creates a new session for the given user and returns its identifier.
func (s *Store) Start(userID string) string {
	id := uuid.New().String()
	now := time.Now().UTC()

	s.mu.Lock()
	s.sessions[id] = &Session{
		ID:           id,
		UserID:       userID,
		CreatedAt:    now,
		LastActivity: now,
	}
	s.mu.Unlock()

	log.Printf("session: started %s for user %s", id, userID)
	return id
}

// End destroys a session. Returns false if the session does not exist.
func (s *Store) End(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	log.Printf("session: ended %s", id)
	return true
}

// Clear empties a session's turns but preserves its identity and context.
func (s *Store) Clear(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.Turns = nil
	return true
}

// Append adds one turn to a session and updates its activity timestamp.
// Returns false if the session does not exist.
func (s *Store) Append(id, role, content string) bool {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.Turns = append(sess.Turns, Turn{Role: role, Content: content, Timestamp: now})
	sess.LastActivity = now
	return true
}

// History returns a copy of the session's turns in insertion order. A
// missing session yields an empty history.
func (s *Store) History(id string) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	out := make([]Turn, len(sess.Turns))
	copy(out, sess.Turns)
	return out
}

// Exists reports whether the session identifier is known.
func (s *Store) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// Info returns a copy of the session without its context blob.
func (s *Store) Info(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	out := *sess
	out.Turns = make([]Turn, len(sess.Turns))
	copy(out.Turns, sess.Turns)
	return out, true
}

// ListByUser returns the identifiers of all sessions owned by a user.
func (s *Store) ListByUser(userID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for id, sess := range s.sessions {
		if sess.UserID == userID {
			ids = append(ids, id)
		}
	}
	return ids
}

// SetContext stores the auxiliary context blob on a session.
func (s *Store) SetContext(id, context string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.Context = context
	return true
}

// Context returns the auxiliary context blob for a session.
func (s *Store) Context(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return "", false
	}
	return sess.Context, true
}
