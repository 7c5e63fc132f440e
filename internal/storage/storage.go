package storage

import (
	"context"
	"errors"
	"time"
)

// DateLayout is how note dates are stored and printed.
const DateLayout = "2006-01-02"

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("storage: store is closed")

// Note is a single gratitude note addressed to a recipient.
// CreatedDate carries only the calendar day (00:00 UTC).
type Note struct {
	ID          int64     `json:"id"`
	Recipient   string    `json:"recipient"`
	Body        string    `json:"body"`
	CreatedDate time.Time `json:"date"`
}

// Store abstracts persistence of notes.
// Query returns notes ordered by recipient, then date, then insertion order.
// Implementations must be safe for concurrent use and must not let a prune
// interleave with a query or insert.
type Store interface {
	Insert(ctx context.Context, recipient, body string, date time.Time) (int64, error)
	Query(ctx context.Context, since time.Time) ([]Note, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	Contains(ctx context.Context, recipient, body string, date time.Time) (bool, error)
	Close() error
}

// DateOf drops the time of day of t, keeping the calendar day as seen in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a note date the way it is stored.
func FormatDate(t time.Time) string {
	return DateOf(t).Format(DateLayout)
}

// ParseDate is the inverse of FormatDate.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
