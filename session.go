package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const maxSessions = 100

// sessionIdleTimeout bounds how long a created arena may sit with no
// player before it is reaped. Variable so tests can shorten it.
var sessionIdleTimeout = 5 * time.Minute

// Session represents one arena that players can join
type Session struct {
	ID   string
	Name string
	Game *Game

	start sync.Once
}

// Start launches the arena's tick loop on first join. The loop does not
// run for arenas nobody ever joins.
func (s *Session) Start() {
	s.start.Do(func() { go s.Game.Run() })
}

// SessionManager handles creation and lookup of sessions
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates a new SessionManager
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

// CreateSession creates a new arena. Returns nil if limit reached.
func (sm *SessionManager) CreateSession(name string, scores ScoreStore) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= maxSessions {
		return nil
	}

	game := NewGame(scores)
	sess := &Session{
		ID:   uuid.NewString(),
		Name: name,
		Game: game,
	}
	sm.sessions[sess.ID] = sess

	// Reap the arena if nobody joins it
	time.AfterFunc(sessionIdleTimeout, func() {
		if sess.Game.PlayerCount() > 0 {
			return
		}
		sess.Game.Stop()
		sm.mu.Lock()
		delete(sm.sessions, sess.ID)
		sm.mu.Unlock()
	})
	return sess
}

// GetSession returns a session by ID
func (sm *SessionManager) GetSession(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// RemovePlayer removes a player from a session and reaps the session
// once it empties out
func (sm *SessionManager) RemovePlayer(sessionID, playerID string) {
	sm.mu.RLock()
	sess, ok := sm.sessions[sessionID]
	sm.mu.RUnlock()
	if !ok {
		return
	}
	sess.Game.RemovePlayer(playerID)

	if sess.Game.PlayerCount() == 0 {
		sess.Game.Stop()
		sm.mu.Lock()
		delete(sm.sessions, sessionID)
		sm.mu.Unlock()
	}
}

// ListSessions returns info about all active sessions
func (sm *SessionManager) ListSessions() []SessionInfo {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	list := make([]SessionInfo, 0, len(sm.sessions))
	for _, sess := range sm.sessions {
		list = append(list, SessionInfo{
			ID:      sess.ID,
			Name:    sess.Name,
			Players: sess.Game.PlayerCount(),
		})
	}
	return list
}

// SessionCount returns the number of active sessions
func (sm *SessionManager) SessionCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
