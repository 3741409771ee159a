package editor

import (
	"strings"

	"rconsh/internal/grammar"
)

// Styler wraps text in terminal styling.
type Styler interface {
	// Recognized styles a known command already on the input line.
	Recognized(s string) string
	// Suggested styles a known command in a pending suggestion.
	Suggested(s string) string
	// Hint styles inline ghost text.
	Hint(s string) string
}

// Highlight styles the leading token of text when it names a registered
// command. Only that token is styled; the rest is returned as is.
func Highlight(reg *grammar.Registry, styler Styler, text string, isSuggestion bool) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	first := words[0]
	if !reg.Contains(first) {
		return text
	}

	at := strings.Index(text, first)
	styled := styler.Recognized(first)
	if isSuggestion {
		styled = styler.Suggested(first)
	}
	return text[:at] + styled + text[at+len(first):]
}
