// Package memory provides the in-memory session store. Sessions are
// process-lifetime state: nothing is persisted and a restart clears
// every conversation.
package memory

import (
	"container/list"
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/scenechat/scenechat/internal/core/domain"
	"github.com/scenechat/scenechat/internal/core/ports/driven"
	"github.com/scenechat/scenechat/internal/logger"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// DefaultMaxSessions caps live sessions before least-recently-used
// eviction kicks in. Without a cap the store grows without bound in a
// long-running process.
const DefaultMaxSessions = 1024

type session struct {
	// turnMu serialises chat turns against this session. It lives
	// and dies with the session: eviction drops the whole struct.
	turnMu     sync.Mutex
	transcript []domain.Turn
	lruEntry   *list.Element
}

// SessionStore is an in-memory implementation of driven.SessionStore
// with least-recently-used eviction. Safe for concurrent use.
type SessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*session
	lru         *list.List // front = most recently used; values are session ids
	maxSessions int
}

// NewSessionStore creates a session store. maxSessions caps live
// sessions (0 disables eviction, negative uses the default).
func NewSessionStore(maxSessions int) *SessionStore {
	if maxSessions < 0 {
		maxSessions = DefaultMaxSessions
	}
	return &SessionStore{
		sessions:    make(map[string]*session),
		lru:         list.New(),
		maxSessions: maxSessions,
	}
}

// Create generates a new session id with an empty transcript.
func (s *SessionStore) Create(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	// uuid collisions are vanishingly rare but an id must never be
	// reissued, so check anyway.
	for s.sessions[id] != nil {
		id = uuid.New().String()
	}

	sess := &session{}
	sess.lruEntry = s.lru.PushFront(id)
	s.sessions[id] = sess

	s.evictLocked()
	return id, nil
}

// Acquire takes the session's turn lock. Unknown ids are rejected
// before any state is allocated, so probing with random ids leaves
// the store untouched. The session may be evicted while the lock is
// held; subsequent reads then fail with ErrInvalidSession.
func (s *SessionStore) Acquire(_ context.Context, sessionID string) (func(), error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrInvalidSession
	}

	sess.turnMu.Lock()
	return sess.turnMu.Unlock, nil
}

// Append adds a turn to the end of the session's transcript.
func (s *SessionStore) Append(_ context.Context, sessionID string, turn domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrInvalidSession
	}
	sess.transcript = append(sess.transcript, turn)
	s.lru.MoveToFront(sess.lruEntry)
	return nil
}

// Render formats the transcript as "<sender>: <text>" lines in order.
func (s *SessionStore) Render(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return "", domain.ErrInvalidSession
	}
	return domain.RenderTranscript(sess.transcript), nil
}

// Transcript returns a copy of the session's turns in order.
func (s *SessionStore) Transcript(_ context.Context, sessionID string) ([]domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrInvalidSession
	}
	turns := make([]domain.Turn, len(sess.transcript))
	copy(turns, sess.transcript)
	return turns, nil
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// evictLocked drops least-recently-used sessions over the cap.
// Caller must hold the write lock.
func (s *SessionStore) evictLocked() {
	if s.maxSessions <= 0 {
		return
	}
	for len(s.sessions) > s.maxSessions {
		oldest := s.lru.Back()
		if oldest == nil {
			return
		}
		id := oldest.Value.(string)
		s.lru.Remove(oldest)
		delete(s.sessions, id)
		logger.Debug("Evicted session %s (cap %d)", id, s.maxSessions)
	}
}
