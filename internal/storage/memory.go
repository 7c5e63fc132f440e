package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps notes in process memory. It follows the same ordering
// rules as SQLiteStore and is meant for tests.
type MemoryStore struct {
	mu     sync.Mutex
	notes  []Note
	nextID int64
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (m *MemoryStore) Insert(_ context.Context, recipient, body string, date time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}
	id := m.nextID
	m.nextID++
	m.notes = append(m.notes, Note{ID: id, Recipient: recipient, Body: body, CreatedDate: DateOf(date)})
	return id, nil
}

func (m *MemoryStore) Query(_ context.Context, since time.Time) ([]Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	since = DateOf(since)
	var out []Note
	for _, n := range m.notes {
		if !n.CreatedDate.Before(since) {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Recipient != b.Recipient {
			return a.Recipient < b.Recipient
		}
		if !a.CreatedDate.Equal(b.CreatedDate) {
			return a.CreatedDate.Before(b.CreatedDate)
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (m *MemoryStore) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}
	cutoff = DateOf(cutoff)
	kept := m.notes[:0]
	var removed int64
	for _, n := range m.notes {
		if n.CreatedDate.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	m.notes = kept
	return removed, nil
}

func (m *MemoryStore) DeleteAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}
	n := int64(len(m.notes))
	m.notes = nil
	return n, nil
}

func (m *MemoryStore) Contains(_ context.Context, recipient, body string, date time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false, ErrClosed
	}
	date = DateOf(date)
	for _, n := range m.notes {
		if n.Recipient == recipient && n.Body == body && n.CreatedDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

// Len reports how many notes are stored.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notes)
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
