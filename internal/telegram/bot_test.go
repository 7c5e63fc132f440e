package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gratitude-bot/internal/conversation"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, f.err
}

type fakeSubmitter struct {
	got []conversation.Inbound
	err error
}

func (f *fakeSubmitter) Submit(_ context.Context, in conversation.Inbound) error {
	f.got = append(f.got, in)
	return f.err
}

func TestHandleUpdate_SubmitsTextMessages(t *testing.T) {
	b := &Bot{s: &fakeSender{}}
	sub := &fakeSubmitter{}
	upd := tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 42, UserName: "anna"},
		Chat: &tgbotapi.Chat{ID: 100},
		Text: "/thanks",
	}}
	b.handleUpdate(context.Background(), upd, sub)

	if len(sub.got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(sub.got))
	}
	want := conversation.Inbound{ChatID: 100, UserID: 42, Username: "anna", Text: "/thanks"}
	if sub.got[0] != want {
		t.Fatalf("unexpected event: %+v", sub.got[0])
	}
}

func TestHandleUpdate_MediaIsQueuedInOrder(t *testing.T) {
	fs := &fakeSender{}
	b := &Bot{s: fs}
	sub := &fakeSubmitter{}
	chat := &tgbotapi.Chat{ID: 100}
	from := &tgbotapi.User{ID: 42}
	b.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{From: from, Chat: chat, Text: "/thanks"}}, sub)
	b.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{From: from, Chat: chat, Sticker: &tgbotapi.Sticker{FileID: "x"}}}, sub)

	if len(fs.sent) != 0 {
		t.Fatalf("the polling loop must not reply directly: %+v", fs.sent)
	}
	if len(sub.got) != 2 || sub.got[0].Media || !sub.got[1].Media || sub.got[1].ChatID != 100 {
		t.Fatalf("unexpected events: %+v", sub.got)
	}
}

func TestHandleUpdate_CommandsForOtherBotsAreIgnored(t *testing.T) {
	b := &Bot{s: &fakeSender{}, username: "GratitudeBot"}
	sub := &fakeSubmitter{}
	for _, text := range []string{"/clean@SomeOtherBot", "/export@other_bot 7", "/clean@gratitudebot", "/thanks", "/start@GratitudeBot", "привіт @SomeOtherBot"} {
		b.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: 42},
			Chat: &tgbotapi.Chat{ID: -100},
			Text: text,
		}}, sub)
	}

	var got []string
	for _, in := range sub.got {
		got = append(got, in.Text)
	}
	want := []string{"/clean@gratitudebot", "/thanks", "/start@GratitudeBot", "привіт @SomeOtherBot"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}

func TestHandleUpdate_IgnoresUpdatesWithoutMessage(t *testing.T) {
	b := &Bot{s: &fakeSender{}}
	sub := &fakeSubmitter{err: errors.New("closed")}
	b.handleUpdate(context.Background(), tgbotapi.Update{}, sub)
	b.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{Text: "x"}}, sub)
	if len(sub.got) != 0 {
		t.Fatalf("unexpected submit: %+v", sub.got)
	}
}

func TestSend_AttachesKeyboards(t *testing.T) {
	fs := &fakeSender{}
	b := &Bot{s: fs}

	b.Send(1, "menu", conversation.KeyboardMenu)
	b.Send(1, "range", conversation.KeyboardRange)
	b.Send(1, "cancel", conversation.KeyboardCancel)
	b.Send(1, "plain", conversation.KeyboardNone)

	if len(fs.sent) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(fs.sent))
	}

	menu, ok := fs.sent[0].ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	if !ok || len(menu.Keyboard) != 1 || menu.Keyboard[0][0].Text != conversation.LabelThanks || menu.Keyboard[0][1].Text != conversation.LabelExport {
		t.Fatalf("unexpected menu keyboard: %+v", fs.sent[0].ReplyMarkup)
	}

	rng, ok := fs.sent[1].ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	if !ok || !rng.OneTimeKeyboard || rng.Keyboard[0][0].Text != conversation.LabelWeek || rng.Keyboard[0][1].Text != conversation.LabelTwoWeeks {
		t.Fatalf("unexpected range keyboard: %+v", fs.sent[1].ReplyMarkup)
	}

	cancel, ok := fs.sent[2].ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	if !ok || cancel.Keyboard[0][0].Text != conversation.LabelCancel {
		t.Fatalf("unexpected cancel keyboard: %+v", fs.sent[2].ReplyMarkup)
	}

	if fs.sent[3].ReplyMarkup != nil {
		t.Fatalf("plain message must not carry markup: %+v", fs.sent[3].ReplyMarkup)
	}
}

func TestSend_SwallowsTransportErrors(t *testing.T) {
	fs := &fakeSender{err: errors.New("network down")}
	b := &Bot{s: fs}
	b.Send(1, "hello", conversation.KeyboardNone)
	if len(fs.sent) != 1 || fs.sent[0].Text != "hello" {
		t.Fatalf("unexpected sent: %+v", fs.sent)
	}
}
