// Package validate decides whether a message is a genuine gratitude note.
package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// MinLength is the shortest acceptable note, in characters.
const MinLength = 5

// Menu labels, command names and placeholders people send instead of a note.
var bannedPhrases = []string{
	"🙏 подякувати", "подякувати",
	"📤 експорт", "експорт",
	"❌ скасувати", "скасувати",
	"7 днів", "14 днів",
	"/start", "/thanks", "/export", "/cancel", "/clean",
	"start", "thanks", "export", "cancel", "clean",
	"дякую", "спасибі", "thank you",
	"test", "тест", "текст", "text", "...", "…",
}

var banned = func() map[string]struct{} {
	fold := cases.Fold()
	m := make(map[string]struct{}, len(bannedPhrases))
	for _, p := range bannedPhrases {
		m[fold.String(p)] = struct{}{}
	}
	return m
}()

// Decorative runes. A message built only from these (and spaces) is not a note.
const decorative = "❤♥💖💕💗💓💞💘💝💟🧡💛💚💙💜🤎🖤🤍" +
	"🙏👍👏🙌🤝👌✌🤗" +
	"😊😀😃😄😁😍🥰😘☺🙂😉" +
	"⭐🌟✨💫🔥🎉🎊🌸🌹🌺🌷💐" +
	"!?.,*~-_+=" +
	"\ufe0f\u200d"

// IsAcceptable reports whether text is worth persisting as a note body.
func IsAcceptable(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	if utf8.RuneCountInString(t) < MinLength {
		return false
	}
	// A Caser keeps state, so each call gets its own.
	if _, ok := banned[cases.Fold().String(t)]; ok {
		return false
	}
	return !onlyDecorative(t)
}

// onlyDecorative is case-sensitive membership over the fixed symbol set.
func onlyDecorative(t string) bool {
	for _, r := range t {
		if unicode.IsSpace(r) {
			continue
		}
		if !strings.ContainsRune(decorative, r) {
			return false
		}
	}
	return true
}
