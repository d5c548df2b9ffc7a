// Package textutil prepares server-supplied text for terminal cells.
package textutil

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

var cleaner = runes.Map(func(r rune) rune {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return ' '
	case r < 0x20, r == 0x7f, r >= 0x80 && r < 0xa0:
		return '?'
	case unicode.Is(unicode.Cf, r):
		// bidi overrides, zero-width joiners, BOM
		return unicode.ReplacementChar
	}
	return r
})

// Clean replaces characters that would move the cursor or reorder the line
// when written to the terminal. Names in a TOC are arbitrary, so every label
// goes through here before drawing.
func Clean(text string) string {
	if !needsCleaning(text) {
		return text
	}
	out, _, err := transform.String(cleaner, text)
	if err != nil {
		return strings.ToValidUTF8(text, "?")
	}
	return out
}

func needsCleaning(text string) bool {
	for _, r := range text {
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) || unicode.Is(unicode.Cf, r) {
			return true
		}
	}
	return false
}

// Width reports the number of cells text occupies.
func Width(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate cuts text to at most width cells, ending with an ellipsis when
// anything was removed.
func Truncate(text string, width int) string {
	if width <= 0 || text == "" {
		return ""
	}
	if Width(text) <= width {
		return text
	}
	if width <= Width(Ellipsis) {
		return Ellipsis
	}
	return runewidth.Truncate(text, width, Ellipsis)
}

// TruncateLeft keeps the end of text, which for paths is the useful part.
func TruncateLeft(text string, width int) string {
	if width <= 0 || text == "" {
		return ""
	}
	if Width(text) <= width {
		return text
	}
	avail := width - Width(Ellipsis)
	if avail <= 0 {
		return Ellipsis
	}
	rs := []rune(text)
	cells := 0
	start := len(rs)
	for i := len(rs) - 1; i >= 0; i-- {
		w := runewidth.RuneWidth(rs[i])
		if cells+w > avail {
			break
		}
		cells += w
		start = i
	}
	return Ellipsis + string(rs[start:])
}

// PadRight fills text with spaces up to width cells.
func PadRight(text string, width int) string {
	if pad := width - Width(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}
