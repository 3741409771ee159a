// Package ui renders shell output and reads terminal input.
package ui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when a password is requested without a terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// UI writes themed messages to a writer.
type UI struct {
	writer io.Writer
	theme  *Theme
}

// NewUI creates a UI writing to w.
func NewUI(w io.Writer, useColor bool) *UI {
	return &UI{writer: w, theme: NewTheme(w, useColor)}
}

// Theme returns the styles used by the UI.
func (u *UI) Theme() *Theme {
	return u.theme
}

// Writer returns the output writer.
func (u *UI) Writer() io.Writer {
	return u.writer
}

func (u *UI) Print(message string) {
	fmt.Fprint(u.writer, message)
}

func (u *UI) Printf(format string, args ...interface{}) {
	fmt.Fprintf(u.writer, format, args...)
}

func (u *UI) Println(message string) {
	fmt.Fprintln(u.writer, message)
}

// Error prints an error message.
func (u *UI) Error(message string) {
	fmt.Fprintf(u.writer, "%s %s\n", u.theme.Error("!"), u.theme.Error(message))
}

// Warning prints a warning.
func (u *UI) Warning(message string) {
	fmt.Fprintf(u.writer, "%s %s\n", u.theme.Warning("?"), message)
}

// Success prints a success message.
func (u *UI) Success(message string) {
	u.Println(u.theme.Success(message))
}

// Info prints secondary information.
func (u *UI) Info(message string) {
	u.Println(u.theme.Info(message))
}

// GetPromptString returns the shell prompt for the connected server.
func (u *UI) GetPromptString(server string) string {
	if server == "" {
		return u.theme.Prompt("> ")
	}
	return u.theme.Info(server) + u.theme.Prompt(" > ")
}

// ReadPassword prompts for a password without echo.
func (u *UI) ReadPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNotTerminal
	}

	u.Print(prompt)
	password, err := term.ReadPassword(fd)
	u.Println("")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(password), nil
}
