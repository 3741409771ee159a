package grammar

import (
	"regexp"
	"strings"
)

var (
	commandPattern        = regexp.MustCompile(`^(` + regexp.QuoteMeta(Prefix) + `\w+)(.*)$`)
	aliasPattern          = regexp.MustCompile(`^(` + regexp.QuoteMeta(Prefix) + `\w+)\s*->\s*(\w+)`)
	requiredPattern       = regexp.MustCompile(`<([^>]+)>`)
	optionalPattern       = regexp.MustCompile(`\[<([^>]+)>\]`)
	requiredChoicePattern = regexp.MustCompile(`\(([^)]+)\)`)
	optionalChoicePattern = regexp.MustCompile(`\[([^\]]+\|[^\]]+)\]`)
)

// AliasEdge records that Alias takes its argument grammar from Target.
type AliasEdge struct {
	Alias  string
	Target string
}

// Parse reads normalized listing text line by line. It returns the commands
// in order of appearance (names may repeat) and every alias line found.
// Lines matching neither form are skipped.
func Parse(normalized string) ([]Command, []AliasEdge) {
	var commands []Command
	var aliases []AliasEdge

	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := commandPattern.FindStringSubmatch(line); m != nil {
			commands = append(commands, Command{Name: m[1], Args: parseArgs(m[2])})
		}
		if m := aliasPattern.FindStringSubmatch(line); m != nil {
			aliases = append(aliases, AliasEdge{Alias: m[1], Target: Prefix + m[2]})
		}
	}
	return commands, aliases
}

// parseArgs extracts arguments grouped by category: all required
// placeholders, then optional placeholders, then required choices, then
// optional choices. Within a category textual order is kept. Each matched
// span is masked before the next pattern runs so that "[<x>]" is not also
// read as "<x>" and "[(a|b)]" is not also read as "(a|b)".
func parseArgs(desc string) []Argument {
	var optionalChoices, requiredChoices, optionals, requireds []Argument

	for _, group := range submatches(optionalChoicePattern, desc) {
		inner := strings.TrimSpace(group)
		if strings.HasPrefix(inner, "(") && strings.HasSuffix(inner, ")") {
			inner = inner[1 : len(inner)-1]
		}
		if arg := OptionalChoice(strings.Split(inner, "|")...); len(arg.Options) > 0 {
			optionalChoices = append(optionalChoices, arg)
		}
	}
	desc = mask(optionalChoicePattern, desc)

	for _, group := range submatches(requiredChoicePattern, desc) {
		if arg := RequiredChoice(strings.Split(group, "|")...); len(arg.Options) > 0 {
			requiredChoices = append(requiredChoices, arg)
		}
	}
	desc = mask(requiredChoicePattern, desc)

	for _, name := range submatches(optionalPattern, desc) {
		optionals = append(optionals, Optional(name))
	}
	desc = mask(optionalPattern, desc)

	for _, name := range submatches(requiredPattern, desc) {
		requireds = append(requireds, Required(name))
	}

	args := make([]Argument, 0, len(requireds)+len(optionals)+len(requiredChoices)+len(optionalChoices))
	args = append(args, requireds...)
	args = append(args, optionals...)
	args = append(args, requiredChoices...)
	args = append(args, optionalChoices...)
	return args
}

func submatches(re *regexp.Regexp, s string) []string {
	var groups []string
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		groups = append(groups, m[1])
	}
	return groups
}

// mask blanks every match of re with spaces, keeping offsets stable.
func mask(re *regexp.Regexp, s string) string {
	locs := re.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return s
	}
	b := []byte(s)
	for _, loc := range locs {
		for i := loc[0]; i < loc[1]; i++ {
			b[i] = ' '
		}
	}
	return string(b)
}
