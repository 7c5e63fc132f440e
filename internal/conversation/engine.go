// Package conversation drives the per-chat dialogue: capturing gratitude
// notes and exporting them for the administrator.
package conversation

import (
	"context"
	"fmt"
	"log"
	"time"

	"gratitude-bot/internal/export"
	"gratitude-bot/internal/session"
	"gratitude-bot/internal/storage"
	"gratitude-bot/internal/validate"
)

const (
	ShortWindowDays = 7
	LongWindowDays  = 14
	// RetentionDays bounds how long notes are kept, whatever window is exported.
	RetentionDays = 20
)

// Keyboard is a layout hint for the transport.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardMenu
	KeyboardRange
	KeyboardCancel
)

// Sender posts a message to a chat. Delivery failures are the sender's concern.
type Sender interface {
	Send(chatID int64, text string, kb Keyboard)
}

// Authorizer tells whether a user may run the administrator workflows.
type Authorizer interface {
	IsAdmin(userID int64) bool
}

// Inbound is one user message. Media marks a message without text
// (sticker, photo, voice); Text is empty then.
type Inbound struct {
	ChatID   int64
	UserID   int64
	Username string
	Text     string
	Media    bool
}

type Engine struct {
	store    storage.Store
	out      Sender
	auth     Authorizer
	sessions *session.Manager
	now      func() time.Time
}

// NewEngine wires the state machine. now supplies the current time in the
// location whose calendar day counts as "today"; nil means time.Now.
func NewEngine(store storage.Store, out Sender, auth Authorizer, sessions *session.Manager, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{store: store, out: out, auth: auth, sessions: sessions, now: now}
}

// Handle advances the chat's session by one message. Messages of one chat
// must not be handled concurrently. A non-nil error is a storage fault: the
// session has already been reset and the user told something went wrong.
func (e *Engine) Handle(ctx context.Context, in Inbound) error {
	if in.Media {
		e.out.Send(in.ChatID, msgTextOnly, KeyboardNone)
		return nil
	}
	intent := Classify(in.Text)
	s := e.sessions.Get(in.ChatID)
	log.Printf("Incoming message chat=%d user=%d (@%s) state=%s intent=%s", in.ChatID, in.UserID, in.Username, s.State, intent.Kind)

	switch intent.Kind {
	case IntentStart:
		e.sessions.Reset(in.ChatID)
		e.out.Send(in.ChatID, msgGreeting, KeyboardMenu)
		return nil
	case IntentClearAll:
		return e.clearAll(ctx, in)
	case IntentCancel:
		if s.State == session.Idle {
			e.out.Send(in.ChatID, msgNothingToStop, KeyboardMenu)
			return nil
		}
		e.sessions.Reset(in.ChatID)
		e.out.Send(in.ChatID, msgCancelled, KeyboardMenu)
		return nil
	case IntentUnknownCommand:
		e.out.Send(in.ChatID, msgUnknownCommand, KeyboardNone)
		return nil
	}

	if s.State == session.Idle {
		return e.handleIdle(in, intent)
	}
	if intent.Kind != IntentText {
		e.out.Send(in.ChatID, msgBusy, KeyboardNone)
		return nil
	}

	switch s.State {
	case session.AwaitingRecipient:
		return e.handleRecipient(in, intent)
	case session.AwaitingBody:
		return e.handleBody(ctx, in, intent, s)
	case session.AwaitingExportRange:
		return e.handleRange(ctx, in, intent)
	}
	e.sessions.Reset(in.ChatID)
	return fmt.Errorf("chat %d in unknown state %d", in.ChatID, s.State)
}

func (e *Engine) handleIdle(in Inbound, intent Intent) error {
	switch intent.Kind {
	case IntentBeginCapture:
		e.sessions.Put(in.ChatID, session.Session{State: session.AwaitingRecipient})
		e.out.Send(in.ChatID, msgAskRecipient, KeyboardCancel)
	case IntentBeginExport:
		if !e.auth.IsAdmin(in.UserID) {
			log.Printf("Unauthorized export attempt by user ID: %d, username: @%s", in.UserID, in.Username)
			e.out.Send(in.ChatID, msgNotAdmin, KeyboardMenu)
			return nil
		}
		e.sessions.Put(in.ChatID, session.Session{State: session.AwaitingExportRange})
		e.out.Send(in.ChatID, msgAskRange, KeyboardRange)
	default:
		e.out.Send(in.ChatID, msgMenuHint, KeyboardMenu)
	}
	return nil
}

func (e *Engine) handleRecipient(in Inbound, intent Intent) error {
	if intent.Text == "" {
		e.out.Send(in.ChatID, msgAskRecipientRe, KeyboardCancel)
		return nil
	}
	e.sessions.Put(in.ChatID, session.Session{State: session.AwaitingBody, PendingRecipient: intent.Text})
	e.out.Send(in.ChatID, msgAskBody, KeyboardCancel)
	return nil
}

func (e *Engine) handleBody(ctx context.Context, in Inbound, intent Intent, s session.Session) error {
	if s.PendingRecipient == "" {
		e.sessions.Put(in.ChatID, session.Session{State: session.AwaitingRecipient})
		e.out.Send(in.ChatID, msgAskRecipient, KeyboardCancel)
		return nil
	}
	if !validate.IsAcceptable(intent.Text) {
		e.out.Send(in.ChatID, msgBodyRejected, KeyboardCancel)
		return nil
	}

	today := storage.DateOf(e.now())
	dup, err := e.store.Contains(ctx, s.PendingRecipient, intent.Text, today)
	if err != nil {
		return e.fail(in.ChatID, fmt.Errorf("check duplicate: %w", err))
	}
	if dup {
		e.sessions.Reset(in.ChatID)
		e.out.Send(in.ChatID, msgDuplicate, KeyboardMenu)
		return nil
	}
	id, err := e.store.Insert(ctx, s.PendingRecipient, intent.Text, today)
	if err != nil {
		return e.fail(in.ChatID, fmt.Errorf("save note: %w", err))
	}
	log.Printf("Saved note id=%d chat=%d", id, in.ChatID)
	e.sessions.Reset(in.ChatID)
	e.out.Send(in.ChatID, msgSaved, KeyboardMenu)
	return nil
}

func (e *Engine) handleRange(ctx context.Context, in Inbound, intent Intent) error {
	// The range can be answered by someone else in a group chat.
	if !e.auth.IsAdmin(in.UserID) {
		e.sessions.Reset(in.ChatID)
		e.out.Send(in.ChatID, msgNotAdmin, KeyboardMenu)
		return nil
	}
	days := WindowDays(intent.Text)
	chunks, err := e.Export(ctx, days)
	if err != nil {
		return e.fail(in.ChatID, err)
	}
	e.sessions.Reset(in.ChatID)
	if len(chunks) == 0 {
		e.out.Send(in.ChatID, msgNoResults, KeyboardMenu)
		return nil
	}
	e.out.Send(in.ChatID, fmt.Sprintf(msgExportTitle, days), KeyboardMenu)
	for _, c := range chunks {
		e.out.Send(in.ChatID, c, KeyboardNone)
	}
	return nil
}

// Export prunes notes past retention, then renders the last days of notes.
// The prune always runs first so the result matches what the store keeps.
func (e *Engine) Export(ctx context.Context, days int) ([]string, error) {
	notes, err := PruneAndQuery(ctx, e.store, storage.DateOf(e.now()), days)
	if err != nil {
		return nil, err
	}
	return export.Render(notes), nil
}

// Prune removes notes older than the retention cutoff.
func (e *Engine) Prune(ctx context.Context) (int64, error) {
	today := storage.DateOf(e.now())
	return e.store.PruneOlderThan(ctx, today.AddDate(0, 0, -RetentionDays))
}

// PruneAndQuery is the export read path shared by the bot and the CLI.
func PruneAndQuery(ctx context.Context, store storage.Store, today time.Time, days int) ([]storage.Note, error) {
	removed, err := store.PruneOlderThan(ctx, today.AddDate(0, 0, -RetentionDays))
	if err != nil {
		return nil, fmt.Errorf("prune notes: %w", err)
	}
	if removed > 0 {
		log.Printf("🧹 Pruned %d notes older than %d days", removed, RetentionDays)
	}
	notes, err := store.Query(ctx, today.AddDate(0, 0, -days))
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	return notes, nil
}

func (e *Engine) clearAll(ctx context.Context, in Inbound) error {
	if !e.auth.IsAdmin(in.UserID) {
		log.Printf("Unauthorized clean attempt by user ID: %d, username: @%s", in.UserID, in.Username)
		e.sessions.Reset(in.ChatID)
		e.out.Send(in.ChatID, msgNotAdmin, KeyboardMenu)
		return nil
	}
	n, err := e.store.DeleteAll(ctx)
	if err != nil {
		return e.fail(in.ChatID, fmt.Errorf("delete all notes: %w", err))
	}
	log.Printf("🗑️ Admin %d deleted all notes (%d)", in.UserID, n)
	e.out.Send(in.ChatID, fmt.Sprintf(msgCleaned, n), KeyboardNone)
	return nil
}

func (e *Engine) fail(chatID int64, err error) error {
	e.sessions.Reset(chatID)
	e.out.Send(chatID, msgFailure, KeyboardMenu)
	return err
}
