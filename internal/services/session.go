package services

import (
	"log"
	"sync"
	"time"

	"github.com/Ananth-NQI/tokopesan-backend/internal/models"
)

// MaxHistoryTurns bounds the conversation window sent to the oracle
const MaxHistoryTurns = 10

// Session represents a user's cart and conversation state
type Session struct {
	UserID               string                    `json:"user_id"`
	Cart                 []models.CartItem         `json:"cart"`
	AwaitingConfirmation bool                      `json:"awaiting_confirmation"`
	OrderNumber          string                    `json:"order_number,omitempty"`
	History              []models.ConversationTurn `json:"history"`
	CreatedAt            time.Time                 `json:"created_at"`
	LastActive           time.Time                 `json:"last_active"`
}

// AddToHistory appends a turn and evicts the oldest beyond MaxHistoryTurns
func (s *Session) AddToHistory(role, content string) {
	s.History = append(s.History, models.ConversationTurn{Role: role, Content: content})
	if over := len(s.History) - MaxHistoryTurns; over > 0 {
		s.History = append([]models.ConversationTurn(nil), s.History[over:]...)
	}
}

// Consistent reports whether the confirmation flag agrees with the cart
func (s *Session) Consistent() bool {
	return !s.AwaitingConfirmation || len(s.Cart) > 0
}

func (s *Session) clone() Session {
	cp := *s
	cp.Cart = append(make([]models.CartItem, 0, len(s.Cart)), s.Cart...)
	cp.History = append(make([]models.ConversationTurn, 0, len(s.History)), s.History...)
	return cp
}

// SessionStore owns per-user sessions. WithSession runs fn while holding the
// user's lock, creating the session on first use.
type SessionStore interface {
	WithSession(userID string, fn func(*Session) error) error
	Snapshot(userID string) (Session, bool)
	Count() int
}

type sessionEntry struct {
	mu      sync.Mutex
	session *Session
}

// SessionManager is the in-memory SessionStore. Sessions live for the
// process lifetime.
type SessionManager struct {
	sessions map[string]*sessionEntry
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*sessionEntry),
	}
}

func (sm *SessionManager) entry(userID string) *sessionEntry {
	sm.mu.RLock()
	e, ok := sm.sessions[userID]
	sm.mu.RUnlock()
	if ok {
		return e
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if e, ok = sm.sessions[userID]; ok {
		return e
	}
	now := time.Now()
	e = &sessionEntry{session: &Session{
		UserID:     userID,
		Cart:       []models.CartItem{},
		History:    []models.ConversationTurn{},
		CreatedAt:  now,
		LastActive: now,
	}}
	sm.sessions[userID] = e
	log.Printf("🆕 Session created for %s", userID)
	return e
}

// WithSession serializes every read-modify-write of one user's state
func (sm *SessionManager) WithSession(userID string, fn func(*Session) error) error {
	e := sm.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	err := fn(e.session)
	e.session.LastActive = time.Now()
	if !e.session.Consistent() {
		log.Printf("⚠️  Session %s awaiting confirmation with empty cart, resetting flag", userID)
		e.session.AwaitingConfirmation = false
	}
	return err
}

// Snapshot returns a copy of the session, if it exists
func (sm *SessionManager) Snapshot(userID string) (Session, bool) {
	sm.mu.RLock()
	e, ok := sm.sessions[userID]
	sm.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.clone(), true
}

// Count returns the number of known sessions (for monitoring)
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
