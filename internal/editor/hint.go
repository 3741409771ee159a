package editor

import (
	"strings"

	"rconsh/internal/grammar"
)

// Hint returns the rest of the first command name (in registry order) that
// starts with line, while the operator is still typing the command name.
// No hint is given for an exact match, for the bare prefix, or once the line
// contains a space.
func Hint(reg *grammar.Registry, line string) (string, bool) {
	if line == "" || line == grammar.Prefix || !strings.HasPrefix(line, grammar.Prefix) || strings.Contains(line, " ") {
		return "", false
	}
	for _, name := range reg.Names() {
		if strings.HasPrefix(name, line) {
			if suffix := name[len(line):]; suffix != "" {
				return suffix, true
			}
			return "", false
		}
	}
	return "", false
}
