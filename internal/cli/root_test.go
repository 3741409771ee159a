package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"rconsh/internal/grammar"
)

func TestRootCommand_Tree(t *testing.T) {
	root := NewRootCommand()
	for _, name := range []string{"exec", "grammar", "profile", "history"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not found: %v", name, err)
		}
	}
	for _, flag := range []string{"address", "password", "profile", "config", "no-color"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing flag --%s", flag)
		}
	}
}

func writeListing(t *testing.T, listing string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "help.txt")
	if err := os.WriteFile(path, []byte(listing), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGrammarCommand_JSON(t *testing.T) {
	path := writeListing(t, testListing)

	out, err := runRoot(t, "grammar", "--from-file", path, "--format", "json")
	if err != nil {
		t.Fatalf("grammar: %v", err)
	}

	var dump struct {
		Commands []grammar.Command `json:"commands"`
	}
	if err := json.Unmarshal([]byte(out), &dump); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(dump.Commands) != 6 || dump.Commands[0].Name != "/gamemode" {
		t.Fatalf("commands = %+v", dump.Commands)
	}
	gm := dump.Commands[0]
	if len(gm.Args) != 2 || gm.Args[0].Kind != grammar.KindRequired || gm.Args[1].Kind != grammar.KindOptional {
		t.Errorf("/gamemode args = %+v", gm.Args)
	}
}

func TestGrammarCommand_YAML(t *testing.T) {
	path := writeListing(t, "/time (add|query|set)")

	out, err := runRoot(t, "grammar", "--from-file", path)
	if err != nil {
		t.Fatalf("grammar: %v", err)
	}

	var dump struct {
		Commands []grammar.Command `yaml:"commands"`
	}
	if err := yaml.Unmarshal([]byte(out), &dump); err != nil {
		t.Fatalf("invalid YAML %q: %v", out, err)
	}
	if len(dump.Commands) != 1 {
		t.Fatalf("commands = %+v", dump.Commands)
	}
	arg := dump.Commands[0].Args[0]
	if arg.Kind != grammar.KindRequiredChoice || strings.Join(arg.Options, ",") != "add,query,set" {
		t.Errorf("arg = %+v", arg)
	}
}

func TestGrammarCommand_Text(t *testing.T) {
	path := writeListing(t, testListing)

	out, err := runRoot(t, "grammar", "--from-file", path, "-f", "text")
	if err != nil {
		t.Fatalf("grammar: %v", err)
	}
	if !strings.Contains(out, "/tp <destination>\n") {
		t.Errorf("output = %q", out)
	}
}

func TestGrammarCommand_AliasError(t *testing.T) {
	path := writeListing(t, "/tp -> teleport")

	_, err := runRoot(t, "grammar", "--from-file", path)
	var aliasErr *grammar.AliasError
	if !errors.As(err, &aliasErr) || aliasErr.Target != "/teleport" {
		t.Errorf("err = %v, want AliasError for /teleport", err)
	}
}

func TestGrammarCommand_UnknownFormat(t *testing.T) {
	path := writeListing(t, "/seed")
	if _, err := runRoot(t, "grammar", "--from-file", path, "--format", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
