package editor

import "testing"

func TestHint(t *testing.T) {
	reg := testRegistry(t)

	tests := []struct {
		line   string
		want   string
		wantOK bool
	}{
		{"/gamem", "ode", true},
		{"/gam", "emode", true},
		{"/t", "eleport", true},
		{"/sc", "hedule", true},
		{"", "", false},
		{"/", "", false},
		{"/say", "", false},
		{"/say ", "", false},
		{"/gamemode c", "", false},
		{"say", "", false},
		{"/zz", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := Hint(reg, tt.line)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Hint(%q) = (%q, %v), want (%q, %v)", tt.line, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestHint_NilRegistry(t *testing.T) {
	if hint, ok := Hint(nil, "/ti"); ok {
		t.Errorf("expected no hint, got %q", hint)
	}
}
