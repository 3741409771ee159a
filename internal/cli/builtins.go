package cli

import (
	"context"
	"fmt"
	"strings"

	"rconsh/internal/editor"
	"rconsh/internal/grammar"
)

// builtinPrefix marks shell commands that are not sent to the server.
const builtinPrefix = "."

var builtinHelp = []struct {
	usage string
	desc  string
}{
	{".reload", "fetch the command listing again and rebuild completion"},
	{".commands [prefix]", "list known commands and their arguments"},
	{".help", "show this help"},
	{"exit, quit", "leave the shell"},
}

// runBuiltin executes a shell builtin.
func (s *Shell) runBuiltin(ctx context.Context, line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ".reload":
		reg := s.reload(ctx)
		s.ui.Success(fmt.Sprintf("Loaded %d commands", reg.Len()))
	case ".commands":
		prefix := ""
		if len(fields) > 1 {
			prefix = fields[1]
			if !strings.HasPrefix(prefix, grammar.Prefix) {
				prefix = grammar.Prefix + prefix
			}
		}
		s.listCommands(prefix)
	case ".help":
		for _, h := range builtinHelp {
			s.ui.Printf("  %-20s %s\n", h.usage, s.ui.Theme().Info(h.desc))
		}
	default:
		s.ui.Error(fmt.Sprintf("Unknown shell command: %s (try .help)", fields[0]))
	}
}

// listCommands prints the usage of every command starting with prefix.
func (s *Shell) listCommands(prefix string) {
	reg := s.assist.Registry()
	count := 0
	for _, cmd := range reg.Commands() {
		if !strings.HasPrefix(cmd.Name, prefix) {
			continue
		}
		s.ui.Println(editor.Highlight(reg, s.ui.Theme(), cmd.Usage(), true))
		count++
	}
	if count == 0 {
		s.ui.Info("No matching commands")
	}
}
