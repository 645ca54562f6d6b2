package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"legalyze/internal/conversation"
	"legalyze/internal/domain"
)

// DefaultMaxSessions is used when the configured limit is not positive.
const DefaultMaxSessions = 100

// Session is one user's analysis workspace. Callers hold the session lock for
// the duration of an action so that actions on one session run one at a time.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu           sync.Mutex
	lastAccessed time.Time

	Document     *domain.Document
	Outcome      *domain.AnalysisOutcome
	Model        string
	RiskScore    int
	Conversation *conversation.Context
}

// Lock acquires the session for one action.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// HasDocument reports whether a document has been analyzed. Caller holds the lock.
func (s *Session) HasDocument() bool {
	return s.Document != nil && s.Conversation != nil
}

// Manager is an in-memory registry of sessions.
type Manager struct {
	sessions    map[string]*Session
	mu          sync.RWMutex
	maxSessions int
	now         func() time.Time
}

// NewManager creates a session registry holding at most maxSessions sessions.
func NewManager(maxSessions int) *Manager {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Manager{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

// Create registers a new empty session, evicting the least recently used
// session when the registry is full.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.maxSessions {
		m.evictOldestLocked()
	}

	now := m.now()
	s := &Session{
		ID:           uuid.New().String(),
		CreatedAt:    now,
		lastAccessed: now,
	}
	m.sessions[s.ID] = s
	return s
}

// Get returns a session by ID and marks it as recently used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	s.lastAccessed = m.now()
	return s, nil
}

// Delete removes a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, s := range m.sessions {
		if oldestID == "" || s.lastAccessed.Before(oldest) {
			oldestID = id
			oldest = s.lastAccessed
		}
	}
	if oldestID == "" {
		return
	}
	delete(m.sessions, oldestID)
	log.Printf("session.Manager: evicted session %s (last accessed %s)", oldestID, oldest.Format(time.RFC3339))
}
