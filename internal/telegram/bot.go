package telegram

import (
	"context"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gratitude-bot/internal/conversation"
)

// Submitter accepts inbound events for processing.
type Submitter interface {
	Submit(ctx context.Context, in conversation.Inbound) error
}

// sender is the part of tgbotapi.BotAPI the bot uses, so tests can fake it.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

var _ conversation.Sender = (*Bot)(nil)

// Bot is the Telegram side of the conversation: it turns updates into
// conversation.Inbound events and implements conversation.Sender.
type Bot struct {
	api *tgbotapi.BotAPI
	s   sender
	// username of the bot itself, without "@"
	username string
}

func New(botToken string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	log.Printf("Authorized on account @%s", api.Self.UserName)
	return &Bot{api: api, s: api, username: api.Self.UserName}, nil
}

// Start long-polls Telegram until ctx is cancelled.
func (b *Bot) Start(ctx context.Context, sub Submitter) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update, sub)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update, sub Submitter) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return
	}
	if !b.addressedToMe(msg.Text) {
		return
	}
	in := conversation.Inbound{
		ChatID:   msg.Chat.ID,
		UserID:   msg.From.ID,
		Username: msg.From.UserName,
		Text:     msg.Text,
		Media:    msg.Text == "", // stickers, photos, voice
	}
	if err := sub.Submit(ctx, in); err != nil {
		log.Printf("failed to queue message from chat %d: %v", in.ChatID, err)
	}
}

// addressedToMe reports false for commands like "/clean@OtherBot" sent to
// another bot in a group chat.
func (b *Bot) addressedToMe(text string) bool {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return true
	}
	cmd := strings.Fields(text)[0]
	i := strings.IndexByte(cmd, '@')
	if i < 0 || b.username == "" {
		return true
	}
	return strings.EqualFold(cmd[i+1:], b.username)
}

// Send posts text with the requested keyboard. Failures are only logged.
func (b *Bot) Send(chatID int64, text string, kb conversation.Keyboard) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup := keyboardMarkup(kb); markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func keyboardMarkup(kb conversation.Keyboard) interface{} {
	switch kb {
	case conversation.KeyboardMenu:
		k := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(conversation.LabelThanks),
				tgbotapi.NewKeyboardButton(conversation.LabelExport),
			),
		)
		k.ResizeKeyboard = true
		return k
	case conversation.KeyboardRange:
		k := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(conversation.LabelWeek),
				tgbotapi.NewKeyboardButton(conversation.LabelTwoWeeks),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(conversation.LabelCancel),
			),
		)
		k.ResizeKeyboard = true
		k.OneTimeKeyboard = true
		return k
	case conversation.KeyboardCancel:
		k := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(conversation.LabelCancel),
			),
		)
		k.ResizeKeyboard = true
		return k
	default:
		return nil
	}
}
