package conversation

import "strings"

// Reply keyboard labels. Pressing a button sends its label as plain text.
const (
	LabelThanks   = "🙏 Подякувати"
	LabelExport   = "📤 Експорт"
	LabelCancel   = "❌ Скасувати"
	LabelWeek     = "7 днів"
	LabelTwoWeeks = "14 днів"
)

type IntentKind int

const (
	IntentText IntentKind = iota
	IntentStart
	IntentBeginCapture
	IntentBeginExport
	IntentCancel
	IntentClearAll
	IntentUnknownCommand
)

func (k IntentKind) String() string {
	switch k {
	case IntentText:
		return "text"
	case IntentStart:
		return "start"
	case IntentBeginCapture:
		return "begin_capture"
	case IntentBeginExport:
		return "begin_export"
	case IntentCancel:
		return "cancel"
	case IntentClearAll:
		return "clear_all"
	case IntentUnknownCommand:
		return "unknown_command"
	default:
		return "invalid"
	}
}

// Intent is what one inbound message asks for. Text holds the trimmed message.
type Intent struct {
	Kind IntentKind
	Text string
}

// Classify maps raw message text to an Intent. Commands may carry a
// "@botname" suffix, button labels must match exactly. Commands for other
// bots are expected to be dropped by the transport.
func Classify(text string) Intent {
	t := strings.TrimSpace(text)
	in := Intent{Kind: IntentText, Text: t}

	if strings.HasPrefix(t, "/") {
		cmd := strings.Fields(t)[0]
		if i := strings.IndexByte(cmd, '@'); i >= 0 {
			cmd = cmd[:i]
		}
		switch strings.ToLower(cmd) {
		case "/start", "/help":
			in.Kind = IntentStart
		case "/thanks":
			in.Kind = IntentBeginCapture
		case "/export":
			in.Kind = IntentBeginExport
		case "/cancel":
			in.Kind = IntentCancel
		case "/clean", "/clear":
			in.Kind = IntentClearAll
		default:
			in.Kind = IntentUnknownCommand
		}
		return in
	}

	switch t {
	case LabelThanks:
		in.Kind = IntentBeginCapture
	case LabelExport:
		in.Kind = IntentBeginExport
	case LabelCancel:
		in.Kind = IntentCancel
	}
	return in
}

// WindowDays picks the export window from the user's answer: anything
// containing a 7 is the short window, everything else the long one.
func WindowDays(text string) int {
	if strings.Contains(text, "7") {
		return ShortWindowDays
	}
	return LongWindowDays
}
