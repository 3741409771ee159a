package grammar

import "strings"

// Normalize splits listing text in which several command entries share a
// line. A newline is inserted before every Prefix that is neither the first
// character of raw nor already at the start of a line. The result is trimmed.
// Bytes are copied as is, so bodies that are not valid UTF-8 survive.
// Normalize is idempotent.
func Normalize(raw string) string {
	var fixed strings.Builder
	fixed.Grow(len(raw) + len(raw)/16)

	prefix := Prefix[0]
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == prefix && i > 0 && raw[i-1] != '\n' {
			fixed.WriteByte('\n')
		}
		fixed.WriteByte(c)
	}
	return strings.TrimSpace(fixed.String())
}
