package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// defaultTTL is how long an idle session survives before the sweeper drops it.
const defaultTTL = 30 * time.Minute

// Session is one user's interaction with the running instance. All route
// state lives in its RouteStore and dies with the session.
type Session struct {
	ID    string
	Store *RouteStore

	lastSeen time.Time
}

// Manager is a TTL registry of live sessions. Sessions are minted on first
// contact, touched on every request and swept in the background once idle
// past the TTL.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
	// now is a clock function; overridable in tests.
	now func() time.Time
}

// NewManager creates a Manager and starts its background sweeper.
// ttl <= 0 selects the default of 30 minutes.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
		now:      time.Now,
	}
	go m.sweep()
	return m
}

// Get returns the live session for id, or (nil, false) when the id is unknown
// or expired. A hit refreshes the session's idle deadline.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if m.now().Sub(s.lastSeen) > m.ttl {
		delete(m.sessions, id)
		return nil, false
	}
	s.lastSeen = m.now()
	return s, true
}

// Create mints a new session with a fresh UUID and an empty RouteStore.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:       uuid.NewString(),
		Store:    NewRouteStore(),
		lastSeen: m.now(),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Len returns the number of registered sessions, expired ones included.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the background sweeper. Safe to call more than once.
func (m *Manager) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// sweep periodically drops sessions idle past the TTL.
func (m *Manager) sweep() {
	ticker := time.NewTicker(m.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.removeExpired()
		case <-m.stop:
			return
		}
	}
}

func (m *Manager) removeExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
