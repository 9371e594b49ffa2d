package session

import "strings"

// Command is one input line split into its parts.
type Command struct {
	// Name is the first word of the line; empty for a blank line.
	Name string
	// Target is the second word; empty when absent.
	Target string
	// Rest is everything after Target with one separating whitespace
	// character removed and nothing else trimmed.
	Rest string
	// HasRest reports whether any text, whitespace included, followed Target.
	HasRest bool
	// Extra reports whether another word follows Target.
	Extra bool
}

func Parse(line string) Command {
	var c Command
	var after string

	c.Name, after = nextWord(line)
	c.Target, after = nextWord(after)
	if c.Target == "" {
		return c
	}

	c.HasRest = after != ""
	if c.HasRest {
		c.Rest = after[1:]
		c.Extra = strings.TrimLeftFunc(after, isSpace) != ""
	}
	return c
}

// nextWord skips leading whitespace and returns the following word and the
// untouched text behind it.
func nextWord(s string) (word, after string) {
	s = strings.TrimLeftFunc(s, isSpace)
	end := strings.IndexFunc(s, isSpace)
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}

// isSpace matches the C locale's whitespace set only. Non-ASCII spaces such
// as U+00A0 are part of a word.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
