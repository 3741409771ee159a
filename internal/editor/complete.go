// Package editor provides the completion, hint and highlight callbacks that
// the interactive line editor invokes on every keystroke. All functions are
// pure with respect to the registry they are given.
package editor

import (
	"strings"

	"rconsh/internal/grammar"
)

// Candidate is a single completion suggestion.
type Candidate struct {
	Display     string
	Replacement string
}

// Complete returns completion candidates for line with the cursor at byte
// offset cursor. The returned offset is where the candidates' replacement
// text starts; everything from there to the cursor is replaced.
//
// The first token completes against command names. Later tokens complete
// only when the matching argument slot is a choice; free-text arguments are
// never completed.
func Complete(reg *grammar.Registry, line string, cursor int) (int, []Candidate) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(line) {
		cursor = len(line)
	}
	input := line[:cursor]
	if input == "" {
		return 0, nil
	}

	words := strings.Split(input, " ")
	if len(words) == 1 {
		return 0, completeName(reg, words[0])
	}

	cmd, ok := reg.Lookup(words[0])
	if !ok {
		return 0, nil
	}

	typed := len(words) - 1
	if len(cmd.Args) < typed {
		return 0, nil
	}

	partial := words[len(words)-1]
	start := cursor - len(partial)
	arg := cmd.Args[typed-1]
	if !arg.IsChoice() {
		return start, nil
	}

	var candidates []Candidate
	for _, opt := range arg.Options {
		if strings.HasPrefix(opt, partial) {
			candidates = append(candidates, Candidate{Display: opt, Replacement: opt + " "})
		}
	}
	return start, candidates
}

func completeName(reg *grammar.Registry, word string) []Candidate {
	var candidates []Candidate
	for _, name := range reg.Names() {
		if strings.HasPrefix(name, word) {
			candidates = append(candidates, Candidate{Display: name, Replacement: name + " "})
		}
	}
	return candidates
}
