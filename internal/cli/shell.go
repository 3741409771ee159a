package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"rconsh/internal/config"
	"rconsh/internal/editor"
	"rconsh/internal/grammar"
	"rconsh/internal/log"
	"rconsh/internal/model"
	"rconsh/internal/storage"
	"rconsh/internal/ui"
)

// Shell is the interactive command loop for one server connection.
type Shell struct {
	cfg     *model.Config
	logger  *log.Logger
	ui      *ui.UI
	history storage.HistoryStore
	remote  Remote
	address string
	assist  *editor.Assist
}

// NewShell creates a shell sending commands to remote. The command
// registry starts empty until reload is called.
func NewShell(app *App, remote Remote, address string) *Shell {
	var history storage.HistoryStore
	if app.store != nil {
		history = app.store.HistoryStore
	}
	return &Shell{
		cfg:     app.cfg,
		logger:  app.logger,
		ui:      app.ui,
		history: history,
		remote:  remote,
		address: address,
		assist:  editor.NewAssist(grammar.NewRegistry(nil), app.ui.Theme(), true),
	}
}

// Run reads and executes lines until exit, quit or end of input.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            s.ui.GetPromptString(s.address),
		HistoryFile:       config.DataPath(s.cfg, s.cfg.HistoryFile),
		HistoryLimit:      s.cfg.HistoryLimit,
		HistorySearchFold: true,
		AutoComplete:      s.assist,
		Painter:           s.assist,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			s.ui.Info("Use 'exit' or 'quit' to exit the shell.")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if s.executeLine(ctx, line) {
			return nil
		}
	}
}

// executeLine handles one input line and reports whether the shell
// should exit.
func (s *Shell) executeLine(ctx context.Context, line string) bool {
	cmd := strings.TrimSpace(line)
	switch {
	case cmd == "":
		return false
	case strings.EqualFold(cmd, "exit"), strings.EqualFold(cmd, "quit"):
		return true
	case strings.HasPrefix(cmd, builtinPrefix):
		s.runBuiltin(ctx, cmd)
		return false
	}

	if err := s.send(ctx, cmd); err != nil {
		s.ui.Error(fmt.Sprintf("Error: %v", err))
	}
	return false
}

// send runs cmd on the server and prints the formatted response.
func (s *Shell) send(ctx context.Context, cmd string) error {
	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout())
	defer cancel()

	body, err := s.remote.Command(reqCtx, cmd)
	s.logger.Command(ctx, cmd, log.Fields{"address": s.address, "success": err == nil})
	s.record(ctx, cmd, err == nil)
	if err != nil {
		s.logger.Error(ctx, "Command failed", log.Fields{"command": cmd, "error": err})
		return err
	}

	if body != "" {
		s.ui.Println(FormatResponse(s.ui.Theme(), cmd, body))
	}
	return nil
}

// record appends cmd to the stored history.
func (s *Shell) record(ctx context.Context, cmd string, success bool) {
	if s.history == nil {
		return
	}
	entry := model.HistoryEntry{Address: s.address, Command: cmd, Success: success}
	if err := s.history.HistoryAdd(entry, s.cfg.HistoryLimit); err != nil {
		s.logger.Warn(ctx, "Failed to record history", log.Fields{"error": err})
	}
}

// fetchRegistry issues the help command and builds a registry from the
// listing.
func (s *Shell) fetchRegistry(ctx context.Context) (*grammar.Registry, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout())
	defer cancel()

	listing, err := s.remote.Command(reqCtx, s.cfg.HelpCommand)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch command listing: %w", err)
	}
	return grammar.Build(listing)
}

// reload rebuilds the command registry and swaps it into the editor. On
// failure, or when the server lists no commands, the fallback command
// names are used if enabled, otherwise an empty registry.
func (s *Shell) reload(ctx context.Context) *grammar.Registry {
	reg, err := s.fetchRegistry(ctx)
	if err != nil {
		s.logger.Error(ctx, "Failed to load command grammar", log.Fields{"address": s.address, "error": err})
		s.ui.Warning(fmt.Sprintf("Command completion unavailable: %v", err))
		reg = nil
	}
	if reg.Len() == 0 {
		if s.cfg.FallbackCommands {
			reg = grammar.Fallback()
		} else if reg == nil {
			reg = grammar.NewRegistry(nil)
		}
	}

	s.assist.Swap(reg)
	s.logger.Info(ctx, "Command grammar loaded", log.Fields{"address": s.address, "commands": reg.Len()})
	return reg
}
