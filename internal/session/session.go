// Package session tracks the transient per-chat conversation state.
package session

import (
	"sync"
	"time"
)

type State int

const (
	Idle State = iota
	AwaitingRecipient
	AwaitingBody
	AwaitingExportRange
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingRecipient:
		return "awaiting_recipient"
	case AwaitingBody:
		return "awaiting_body"
	case AwaitingExportRange:
		return "awaiting_export_range"
	default:
		return "unknown"
	}
}

// Session is the in-progress workflow of one chat. The zero value is Idle.
type Session struct {
	State            State
	PendingRecipient string
	UpdatedAt        time.Time
}

// Manager keeps one Session per chat. Chats without an entry are Idle.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]Session
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]Session), now: time.Now}
}

// Get returns a copy of the chat's session.
func (m *Manager) Get(chatID int64) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[chatID]
}

// Put stores s for the chat. Storing an Idle session is the same as Reset.
func (m *Manager) Put(chatID int64, s Session) {
	if s.State == Idle {
		m.Reset(chatID)
		return
	}
	s.UpdatedAt = m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[chatID] = s
}

// Reset returns the chat to Idle and forgets any pending fields.
func (m *Manager) Reset(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}

// EvictStale drops sessions not touched for longer than ttl and reports how
// many were removed.
func (m *Manager) EvictStale(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Len reports the number of chats with a workflow in progress.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
