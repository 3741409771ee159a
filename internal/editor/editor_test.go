package editor

import (
	"testing"

	"rconsh/internal/grammar"
)

const testListing = `/gamemode <mode> [<target>]
/gamerule <rule> [<value>]
/time (add|query|set)
/schedule (function|clear) <time>
/difficulty [peaceful|easy|normal|hard]
/say <message>
/teleport <target>
/tp -> teleport`

func testRegistry(t *testing.T) *grammar.Registry {
	t.Helper()
	reg, err := grammar.Build(testListing)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return reg
}

// tagStyler marks styled regions with readable tags.
type tagStyler struct{}

func (tagStyler) Recognized(s string) string { return "<ok>" + s + "</ok>" }
func (tagStyler) Suggested(s string) string  { return "<sg>" + s + "</sg>" }
func (tagStyler) Hint(s string) string       { return "<h>" + s + "</h>" }

func replacements(cands []Candidate) []string {
	var out []string
	for _, c := range cands {
		out = append(out, c.Replacement)
	}
	return out
}
