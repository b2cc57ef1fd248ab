package console

import (
	"sync"
	"time"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/service"

	"github.com/google/uuid"
)

// SessionManager hands out controllers to the HTTP surface, one per open
// console view, keyed by an opaque session id.
type SessionManager struct {
	svc      service.PromoterService
	pageSize int

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	ctrl     *Controller
	lastUsed time.Time
}

func NewSessionManager(svc service.PromoterService, pageSize int) *SessionManager {
	return &SessionManager{
		svc:      svc,
		pageSize: pageSize,
		sessions: make(map[string]*session),
	}
}

// Open creates a controller for the scope and returns its session id.
func (m *SessionManager) Open(scope domain.AccessScope) (string, *Controller) {
	ctrl := New(m.svc, scope, m.pageSize)
	id := uuid.NewString()
	m.mu.Lock()
	m.sessions[id] = &session{ctrl: ctrl, lastUsed: time.Now()}
	m.mu.Unlock()
	return id, ctrl
}

// Get returns the controller for an id, refusing sessions owned by a
// different admin.
func (m *SessionManager) Get(id, uid string) (*Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.ctrl.Scope().UID != uid {
		return nil, false
	}
	s.lastUsed = time.Now()
	return s.ctrl, true
}

func (m *SessionManager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Sweep drops sessions idle longer than maxIdle and reports how many were
// removed.
func (m *SessionManager) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
