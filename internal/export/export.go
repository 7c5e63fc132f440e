// Package export turns stored notes into transport-sized text messages.
package export

import (
	"strings"
	"unicode/utf16"

	"gratitude-bot/internal/storage"
)

// MaxChunk is the largest message sent, in UTF-16 code units. Telegram
// measures message length that way, so an emoji outside the BMP counts twice.
const MaxChunk = 4000

// Render groups notes by recipient and splits the result into chunks of at
// most MaxChunk UTF-16 units. It returns nil for no notes.
func Render(notes []storage.Note) []string {
	if len(notes) == 0 {
		return nil
	}
	return Split(Document(notes), MaxChunk)
}

// Document formats notes as one text. Recipient blocks appear in first-seen
// order and notes keep their relative order inside a block.
func Document(notes []storage.Note) string {
	var order []string
	groups := make(map[string][]storage.Note)
	for _, n := range notes {
		if _, ok := groups[n.Recipient]; !ok {
			order = append(order, n.Recipient)
		}
		groups[n.Recipient] = append(groups[n.Recipient], n)
	}

	blocks := make([]string, 0, len(order))
	for _, r := range order {
		var b strings.Builder
		b.WriteString("👤 Для: ")
		b.WriteString(r)
		for _, n := range groups[r] {
			b.WriteString("\n📅 ")
			b.WriteString(storage.FormatDate(n.CreatedDate))
			b.WriteString(": ")
			b.WriteString(n.Body)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// Split cuts doc into pieces of at most size UTF-16 code units without
// regard to line or block boundaries. Cuts fall on rune boundaries, so a
// surrogate pair is never broken, and joining the pieces gives back doc.
func Split(doc string, size int) []string {
	if size <= 0 || UnitLen(doc) <= size {
		return []string{doc}
	}
	var chunks []string
	start, units := 0, 0
	for i, r := range doc {
		n := utf16.RuneLen(r)
		if units+n > size && i > start {
			chunks = append(chunks, doc[start:i])
			start, units = i, 0
		}
		units += n
	}
	return append(chunks, doc[start:])
}

// UnitLen is the length of s in UTF-16 code units. Invalid bytes count as
// U+FFFD.
func UnitLen(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
