package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"rconsh/internal/model"
)

// Terminal colors used by the theme.
const (
	ColorRed    = lipgloss.Color("1")
	ColorGreen  = lipgloss.Color("2")
	ColorYellow = lipgloss.Color("3")
	ColorBlue   = lipgloss.Color("4")
	ColorGray   = lipgloss.Color("8")
)

// ColorEnabled decides whether output to f is colored for the given mode
// (auto, always or never). Auto colors terminals unless NO_COLOR is set.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case model.ColorAlways:
		return true
	case model.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Theme holds the styles of the shell.
type Theme struct {
	renderer   *lipgloss.Renderer
	recognized lipgloss.Style
	suggested  lipgloss.Style
	hint       lipgloss.Style
	errorStyle lipgloss.Style
	warning    lipgloss.Style
	success    lipgloss.Style
	info       lipgloss.Style
	prompt     lipgloss.Style
	bold       lipgloss.Style
}

// NewTheme creates a Theme rendering for w. Without color every style
// returns its input unchanged.
func NewTheme(w io.Writer, color bool) *Theme {
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI
	}
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)

	return &Theme{
		renderer:   r,
		recognized: r.NewStyle().Foreground(ColorGreen),
		suggested:  r.NewStyle().Foreground(ColorYellow),
		hint:       r.NewStyle().Foreground(ColorGray),
		errorStyle: r.NewStyle().Foreground(ColorRed),
		warning:    r.NewStyle().Foreground(ColorYellow),
		success:    r.NewStyle().Foreground(ColorGreen),
		info:       r.NewStyle().Foreground(ColorGray),
		prompt:     r.NewStyle().Foreground(ColorBlue).Bold(true),
		bold:       r.NewStyle().Bold(true),
	}
}

// Enabled reports whether the theme emits colors.
func (t *Theme) Enabled() bool {
	return t.renderer.ColorProfile() != termenv.Ascii
}

// Recognized styles a known command name on the input line.
func (t *Theme) Recognized(s string) string { return t.recognized.Render(s) }

// Suggested styles a known command name inside a completion candidate.
func (t *Theme) Suggested(s string) string { return t.suggested.Render(s) }

// Hint styles inline ghost text.
func (t *Theme) Hint(s string) string { return t.hint.Render(s) }

// Error styles an error message.
func (t *Theme) Error(s string) string { return t.errorStyle.Render(s) }

// Warning styles a warning message.
func (t *Theme) Warning(s string) string { return t.warning.Render(s) }

// Success styles a success message.
func (t *Theme) Success(s string) string { return t.success.Render(s) }

// Info styles secondary information.
func (t *Theme) Info(s string) string { return t.info.Render(s) }

// Prompt styles the prompt.
func (t *Theme) Prompt(s string) string { return t.prompt.Render(s) }

// Bold styles headings.
func (t *Theme) Bold(s string) string { return t.bold.Render(s) }
