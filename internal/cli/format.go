package cli

import (
	"strings"
	"unicode"

	"rconsh/internal/grammar"
	"rconsh/internal/ui"
)

// errorPrefixes start server responses that report a rejected command.
var errorPrefixes = []string{
	"Unknown or incomplete command, see below for error",
	"Incorrect argument for command",
}

// FormatResponse prepares a server response to command for display. Help
// output is split into one command per line; known error messages are
// split after their prefix so the offending input stands on its own line.
func FormatResponse(theme *ui.Theme, command, body string) string {
	if isHelpCommand(command) {
		return grammar.Normalize(body)
	}
	for _, prefix := range errorPrefixes {
		if strings.HasPrefix(body, prefix) {
			rest := strings.TrimLeftFunc(body[len(prefix):], unicode.IsSpace)
			return theme.Error(prefix) + "\n" + rest
		}
	}
	return body
}

func isHelpCommand(command string) bool {
	return strings.HasPrefix(command, "help") || strings.HasPrefix(command, "/help")
}
