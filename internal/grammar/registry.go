package grammar

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrUnknownAliasTarget is returned when an alias points at a command the
// listing never defines.
var ErrUnknownAliasTarget = errors.New("unknown alias target")

// AliasError reports which alias could not be resolved.
type AliasError struct {
	Alias  string
	Target string
}

func (e *AliasError) Error() string {
	return fmt.Sprintf("alias %s -> %s: %v", e.Alias, e.Target, ErrUnknownAliasTarget)
}

func (e *AliasError) Unwrap() error {
	return ErrUnknownAliasTarget
}

// Registry maps command names to their grammar. It is built once and never
// modified, so it is safe to share between goroutines. A nil *Registry
// behaves as an empty one.
type Registry struct {
	names    []string
	commands map[string]Command
}

// NewRegistry indexes commands by name. Later duplicates replace earlier ones.
func NewRegistry(commands []Command) *Registry {
	byName := make(map[string]Command, len(commands))
	for _, cmd := range commands {
		byName[cmd.Name] = cmd.clone()
	}
	return newRegistry(byName)
}

func newRegistry(byName map[string]Command) *Registry {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return &Registry{names: names, commands: byName}
}

// Resolve builds the registry from parsed commands and alias edges. Each
// alias receives a copy of its target's arguments, regardless of where the
// alias line appeared. Chains such as /x -> tp -> teleport are followed to
// the defining command. A missing target aborts construction with an
// *AliasError.
func Resolve(commands []Command, aliases []AliasEdge) (*Registry, error) {
	byName := make(map[string]Command, len(commands)+len(aliases))
	for _, cmd := range commands {
		byName[cmd.Name] = cmd.clone()
	}
	for _, edge := range aliases {
		if _, ok := byName[edge.Target]; !ok {
			return nil, &AliasError{Alias: edge.Alias, Target: edge.Target}
		}
	}

	// One pass per edge is enough for the longest possible chain; cycles
	// stop there too.
	for i := 0; i < len(aliases); i++ {
		changed := false
		for _, edge := range aliases {
			target := byName[edge.Target]
			if argsEqual(byName[edge.Alias].Args, target.Args) {
				continue
			}
			aliased := target.clone()
			aliased.Name = edge.Alias
			byName[edge.Alias] = aliased
			changed = true
		}
		if !changed {
			break
		}
	}
	return newRegistry(byName), nil
}

func argsEqual(a, b []Argument) bool {
	return slices.EqualFunc(a, b, func(x, y Argument) bool {
		return x.Kind == y.Kind && x.Name == y.Name && slices.Equal(x.Options, y.Options)
	})
}

// Build runs the full pipeline over a raw listing response body.
func Build(listing string) (*Registry, error) {
	commands, aliases := Parse(Normalize(listing))
	reg, err := Resolve(commands, aliases)
	if err != nil {
		return nil, fmt.Errorf("failed to build command registry: %w", err)
	}
	return reg, nil
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	if r == nil {
		return Command{}, false
	}
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Contains reports whether name is a registered command.
func (r *Registry) Contains(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the registered names in lexicographic order. Callers must
// not modify the returned slice.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return r.names
}

// Commands returns every command in lexicographic name order.
func (r *Registry) Commands() []Command {
	if r == nil {
		return nil
	}
	cmds := make([]Command, 0, len(r.names))
	for _, name := range r.names {
		cmds = append(cmds, r.commands[name])
	}
	return cmds
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}
