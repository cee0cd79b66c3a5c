package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"placemsg/internal/message"
)

const (
	sessionCookie = "placemsg_session"
	sessionTTL    = 12 * time.Hour
)

// session is one logged-in admin. It also carries the pending opportunity
// between "create message" and "upload students", mirroring the two-step
// admin flow.
type session struct {
	username string
	pending  *message.Opportunity
	expires  time.Time
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: map[string]*session{}}
}

func (s *sessionStore) create(username string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = &session{username: username, expires: time.Now().Add(sessionTTL)}
	s.mu.Unlock()
	return token
}

func (s *sessionStore) get(token string) *session {
	if token == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil
	}
	if time.Now().After(sess.expires) {
		delete(s.sessions, token)
		return nil
	}
	return sess
}

func (s *sessionStore) setPending(token string, op message.Opportunity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return false
	}
	sess.pending = &op
	return true
}

func (s *sessionStore) pending(token string) *message.Opportunity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[token]; ok {
		return sess.pending
	}
	return nil
}

func (s *sessionStore) drop(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
