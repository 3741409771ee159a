package editor

import (
	"fmt"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/mattn/go-runewidth"

	"rconsh/internal/grammar"
)

var (
	_ readline.AutoCompleter = (*Assist)(nil)
	_ readline.Painter       = (*Assist)(nil)
)

// Assist plugs Complete, Hint and Highlight into a readline instance. The
// registry can be replaced with Swap; calls already running keep the
// registry they started with.
type Assist struct {
	registry atomic.Pointer[grammar.Registry]
	styler   Styler
	hints    bool
}

// NewAssist creates an Assist over reg. When hints is false no ghost text is
// painted.
func NewAssist(reg *grammar.Registry, styler Styler, hints bool) *Assist {
	a := &Assist{styler: styler, hints: hints}
	a.registry.Store(reg)
	return a
}

// Registry returns the registry currently in use.
func (a *Assist) Registry() *grammar.Registry {
	return a.registry.Load()
}

// Swap installs reg and returns the previous registry.
func (a *Assist) Swap(reg *grammar.Registry) *grammar.Registry {
	return a.registry.Swap(reg)
}

// Do implements readline.AutoCompleter. Readline expects the text to insert
// after the cursor and the number of runes before the cursor the candidates
// share, so each replacement is trimmed by the already typed part.
func (a *Assist) Do(line []rune, pos int) ([][]rune, int) {
	pos = clamp(pos, len(line))
	text := string(line)
	cursor := len(string(line[:pos]))

	start, candidates := Complete(a.Registry(), text, cursor)
	if len(candidates) == 0 {
		return nil, 0
	}

	typed := text[start:cursor]
	suffixes := make([][]rune, 0, len(candidates))
	for _, c := range candidates {
		suffixes = append(suffixes, []rune(strings.TrimPrefix(c.Replacement, typed)))
	}
	return suffixes, utf8.RuneCountInString(typed)
}

// Paint implements readline.Painter. The hint is drawn after the line and
// the terminal cursor is moved back over it.
func (a *Assist) Paint(line []rune, pos int) []rune {
	reg := a.Registry()
	text := string(line)
	painted := Highlight(reg, a.styler, text, false)

	if a.hints && pos == len(line) {
		if hint, ok := Hint(reg, text); ok {
			painted += a.styler.Hint(hint) + fmt.Sprintf("\x1b[%dD", runewidth.StringWidth(hint))
		}
	}
	return []rune(painted)
}

func clamp(pos, n int) int {
	if pos < 0 {
		return 0
	}
	if pos > n {
		return n
	}
	return pos
}
