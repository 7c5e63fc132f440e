package session

import (
	"testing"
	"time"
)

func TestManagerGetPutReset(t *testing.T) {
	m := NewManager()
	chatA := int64(1)
	chatB := int64(2)

	if got := m.Get(chatA); got.State != Idle || got.PendingRecipient != "" {
		t.Fatalf("new chat must be idle: %+v", got)
	}

	m.Put(chatA, Session{State: AwaitingBody, PendingRecipient: "Anna"})
	m.Put(chatB, Session{State: AwaitingRecipient})

	a := m.Get(chatA)
	if a.State != AwaitingBody || a.PendingRecipient != "Anna" {
		t.Fatalf("unexpected A: %+v", a)
	}
	if m.Get(chatB).PendingRecipient != "" {
		t.Fatalf("fields leaked across chats")
	}

	// Returned value is a copy
	a.PendingRecipient = "mutated"
	if m.Get(chatA).PendingRecipient != "Anna" {
		t.Fatalf("internal state mutated via returned value")
	}

	m.Reset(chatA)
	if got := m.Get(chatA); got.State != Idle || got.PendingRecipient != "" {
		t.Fatalf("reset did not clear A: %+v", got)
	}
	if m.Get(chatB).State != AwaitingRecipient {
		t.Fatalf("reset should not affect other chats")
	}
}

func TestManagerPutIdleRemoves(t *testing.T) {
	m := NewManager()
	m.Put(7, Session{State: AwaitingExportRange})
	m.Put(7, Session{State: Idle, PendingRecipient: "x"})
	if m.Len() != 0 {
		t.Fatalf("idle session must not be kept, len=%d", m.Len())
	}
}

func TestManagerEvictStale(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	m := NewManager()
	m.now = func() time.Time { return now }

	m.Put(1, Session{State: AwaitingBody, PendingRecipient: "old"})
	now = now.Add(2 * time.Hour)
	m.Put(2, Session{State: AwaitingRecipient})

	if n := m.EvictStale(time.Hour); n != 1 {
		t.Fatalf("want 1 evicted, got %d", n)
	}
	if m.Get(1).State != Idle {
		t.Fatalf("stale session kept")
	}
	if m.Get(2).State != AwaitingRecipient {
		t.Fatalf("fresh session evicted")
	}
}
