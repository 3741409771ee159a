package editor

import (
	"testing"

	"rconsh/internal/grammar"
)

func runeStrings(rs [][]rune) []string {
	var out []string
	for _, r := range rs {
		out = append(out, string(r))
	}
	return out
}

func TestAssist_Do(t *testing.T) {
	a := NewAssist(testRegistry(t), tagStyler{}, true)

	tests := []struct {
		name       string
		line       string
		pos        int
		want       []string
		wantLength int
	}{
		{"command names", "/gam", 4, []string{"emode ", "erule "}, 4},
		{"choice option", "/time s", 7, []string{"et "}, 1},
		{"all options", "/time ", 6, []string{"add ", "query ", "set "}, 0},
		{"nothing", "/xyz", 4, nil, 0},
		{"multibyte free text", "/say ü", 6, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, length := a.Do([]rune(tt.line), tt.pos)
			gotStrings := runeStrings(got)
			if len(gotStrings) != len(tt.want) {
				t.Fatalf("Do(%q) = %q, want %q", tt.line, gotStrings, tt.want)
			}
			for i := range tt.want {
				if gotStrings[i] != tt.want[i] {
					t.Errorf("Do(%q)[%d] = %q, want %q", tt.line, i, gotStrings[i], tt.want[i])
				}
			}
			if length != tt.wantLength {
				t.Errorf("Do(%q) length = %d, want %d", tt.line, length, tt.wantLength)
			}
		})
	}
}

func TestAssist_DoCountsRunes(t *testing.T) {
	reg := grammar.NewRegistry([]grammar.Command{
		{Name: "/mode", Args: []grammar.Argument{grammar.RequiredChoice("éclair", "écho")}},
	})
	a := NewAssist(reg, tagStyler{}, false)

	got, length := a.Do([]rune("/mode éc"), 8)
	if length != 2 {
		t.Errorf("length = %d, want 2 runes", length)
	}
	want := []string{"lair ", "ho "}
	if gs := runeStrings(got); len(gs) != 2 || gs[0] != want[0] || gs[1] != want[1] {
		t.Errorf("Do = %q, want %q", gs, want)
	}
}

func TestAssist_Paint(t *testing.T) {
	a := NewAssist(testRegistry(t), tagStyler{}, true)

	tests := []struct {
		name string
		line string
		pos  int
		want string
	}{
		{"hint at end of line", "/gamem", 6, "/gamem<h>ode</h>\x1b[3D"},
		{"no hint mid line", "/gamem", 3, "/gamem"},
		{"highlight and no hint after space", "/say hi", 7, "<ok>/say</ok> hi"},
		{"exact command has no hint", "/say", 4, "<ok>/say</ok>"},
		{"empty", "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(a.Paint([]rune(tt.line), tt.pos)); got != tt.want {
				t.Errorf("Paint(%q, %d) = %q, want %q", tt.line, tt.pos, got, tt.want)
			}
		})
	}
}

func TestAssist_PaintWithoutHints(t *testing.T) {
	a := NewAssist(testRegistry(t), tagStyler{}, false)
	if got := string(a.Paint([]rune("/gamem"), 6)); got != "/gamem" {
		t.Errorf("Paint = %q, want no ghost text", got)
	}
}

func TestAssist_Swap(t *testing.T) {
	first := testRegistry(t)
	a := NewAssist(first, tagStyler{}, true)

	second := grammar.NewRegistry([]grammar.Command{{Name: "/only"}})
	if prev := a.Swap(second); prev != first {
		t.Error("Swap did not return the previous registry")
	}
	if a.Registry() != second {
		t.Error("Registry() did not return the swapped registry")
	}

	got, _ := a.Do([]rune("/"), 1)
	if gs := runeStrings(got); len(gs) != 1 || gs[0] != "only " {
		t.Errorf("completion after swap = %q", gs)
	}
}
