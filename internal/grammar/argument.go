// Package grammar turns the free-text command listing returned by a remote
// server into a registry of commands and their argument grammars.
package grammar

import (
	"fmt"
	"strings"
)

// Prefix is the character that starts every remote command token.
const Prefix = "/"

// ArgKind identifies which of the four argument forms an Argument holds.
type ArgKind int

const (
	KindRequired ArgKind = iota
	KindOptional
	KindRequiredChoice
	KindOptionalChoice
)

// String returns the string representation of the ArgKind
func (k ArgKind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindOptional:
		return "optional"
	case KindRequiredChoice:
		return "required_choice"
	case KindOptionalChoice:
		return "optional_choice"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name for YAML and JSON output.
func (k ArgKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *ArgKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "required":
		*k = KindRequired
	case "optional":
		*k = KindOptional
	case "required_choice":
		*k = KindRequiredChoice
	case "optional_choice":
		*k = KindOptionalChoice
	default:
		return fmt.Errorf("unknown argument kind: %q", text)
	}
	return nil
}

// Argument is one positional slot of a command. Placeholder kinds carry a
// Name; choice kinds carry a non-empty list of literal Options.
type Argument struct {
	Kind    ArgKind  `json:"kind" yaml:"kind"`
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Options []string `json:"options,omitempty" yaml:"options,omitempty,flow"`
}

// Required returns a mandatory free-text placeholder.
func Required(name string) Argument {
	return Argument{Kind: KindRequired, Name: name}
}

// Optional returns an optional free-text placeholder.
func Optional(name string) Argument {
	return Argument{Kind: KindOptional, Name: name}
}

// RequiredChoice returns a mandatory argument restricted to options.
// Options are trimmed and empty ones dropped.
func RequiredChoice(options ...string) Argument {
	return Argument{Kind: KindRequiredChoice, Options: cleanOptions(options)}
}

// OptionalChoice returns an optional argument restricted to options.
func OptionalChoice(options ...string) Argument {
	return Argument{Kind: KindOptionalChoice, Options: cleanOptions(options)}
}

// IsChoice reports whether the argument completes from a literal set.
func (a Argument) IsChoice() bool {
	return a.Kind == KindRequiredChoice || a.Kind == KindOptionalChoice
}

// Usage renders the argument back into listing notation.
func (a Argument) Usage() string {
	switch a.Kind {
	case KindRequired:
		return "<" + a.Name + ">"
	case KindOptional:
		return "[<" + a.Name + ">]"
	case KindRequiredChoice:
		return "(" + strings.Join(a.Options, "|") + ")"
	case KindOptionalChoice:
		return "[" + strings.Join(a.Options, "|") + "]"
	default:
		return "?"
	}
}

func (a Argument) clone() Argument {
	if a.Options != nil {
		a.Options = append([]string(nil), a.Options...)
	}
	return a
}

func cleanOptions(options []string) []string {
	cleaned := make([]string, 0, len(options))
	for _, opt := range options {
		if opt = strings.TrimSpace(opt); opt != "" {
			cleaned = append(cleaned, opt)
		}
	}
	return cleaned
}

// Command is a command name (including Prefix) and its arguments in parse order.
type Command struct {
	Name string     `json:"name" yaml:"name"`
	Args []Argument `json:"args,omitempty" yaml:"args,omitempty"`
}

// Usage renders the command and its arguments in stored order.
func (c Command) Usage() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, arg := range c.Args {
		parts = append(parts, arg.Usage())
	}
	return strings.Join(parts, " ")
}

func (c Command) clone() Command {
	args := make([]Argument, len(c.Args))
	for i, arg := range c.Args {
		args[i] = arg.clone()
	}
	return Command{Name: c.Name, Args: args}
}
